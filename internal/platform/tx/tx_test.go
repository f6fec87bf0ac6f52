package tx_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"lernova/internal/platform/tx"
)

func TestKeyedManagerSerializesSameKey(t *testing.T) {
	t.Parallel()
	m := tx.NewKeyedManager()
	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Within(context.Background(), "user-1", func(context.Context) error {
				n := atomic.AddInt32(&inside, 1)
				for {
					cur := atomic.LoadInt32(&maxInside)
					if n <= cur || atomic.CompareAndSwapInt32(&maxInside, cur, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
		}()
	}
	wg.Wait()
	if maxInside != 1 {
		t.Fatalf("expected one holder at a time, saw %d", maxInside)
	}
}

func TestKeyedManagerHonoursContextWhileWaiting(t *testing.T) {
	t.Parallel()
	m := tx.NewKeyedManager()
	release := make(chan struct{})
	held := make(chan struct{})
	go func() {
		_ = m.Within(context.Background(), "k", func(context.Context) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := m.Within(ctx, "k", func(context.Context) error { return nil })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	close(release)

	if err := m.Within(context.Background(), "other", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("independent key should not block: %v", err)
	}
}
