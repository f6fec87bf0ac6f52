package logging

import (
	"io"
	"os"

	hclog "github.com/hashicorp/go-hclog"

	"lernova/internal/platform/config"
)

// New builds the root logger. Output defaults to stderr.
func New(cfg config.LogConfig, out io.Writer) hclog.Logger {
	if out == nil {
		out = os.Stderr
	}
	level := hclog.LevelFromString(cfg.Level)
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       "lernova",
		Level:      level,
		Output:     out,
		JSONFormat: cfg.JSON,
	})
}

func Discard() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel})
}
