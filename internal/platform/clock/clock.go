package clock

import "time"

// Clock abstracts time so services stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Since measures elapsed time against c rather than the wall clock. A clock
// that moves backwards yields zero.
func Since(c Clock, start time.Time) time.Duration {
	d := c.Now().Sub(start)
	if d < 0 {
		return 0
	}
	return d
}
