// SPDX-License-Identifier: EPL-2.0

package rtsynth

import (
	"log/slog"
	"time"
)

const (
	DefaultCommandCapacity = 1024
	DefaultErrorCapacity   = 256
)

type config struct {
	logger          *slog.Logger
	commandCapacity int
	errorCapacity   int
	clock           func() time.Time
}

// Option configures a Backend at construction.
type Option func(*config)

func defaultConfig() config {
	return config{
		logger:          slog.New(slog.DiscardHandler),
		commandCapacity: DefaultCommandCapacity,
		errorCapacity:   DefaultErrorCapacity,
		clock:           time.Now,
	}
}

// WithLogger sets the logger used on the control path. The real-time path
// never logs.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithCommandCapacity sets how many graph edits may be queued between two
// Update calls. It is rounded up to a power of two.
func WithCommandCapacity(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.commandCapacity = n
		}
	}
}

// WithErrorCapacity sets how many failed edits are kept for NextError.
func WithErrorCapacity(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.errorCapacity = n
		}
	}
}

// WithClock replaces the clock used to time ProcessBlock.
func WithClock(now func() time.Time) Option {
	return func(cfg *config) {
		if now != nil {
			cfg.clock = now
		}
	}
}
