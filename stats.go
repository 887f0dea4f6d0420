// SPDX-License-Identifier: EPL-2.0

package rtsynth

import (
	"log/slog"
	"time"
)

// Stats is a point-in-time snapshot of backend counters. Fields are read
// independently, so a snapshot taken while ProcessBlock runs may mix values
// from two adjacent blocks.
type Stats struct {
	Generation      uint64
	Nodes           int
	PendingCommands int
	LastProcess     time.Duration
	MaxProcess      time.Duration
	BlockPeriod     time.Duration
	Overruns        uint64
	DroppedCommands uint64
	DroppedErrors   uint64
}

// Stats returns the backend counters.
func (b *Backend) Stats() Stats {
	b.mustBeAlive()

	b.updateMu.Lock()
	if b.graph == nil {
		b.updateMu.Unlock()
		panic(ErrDestroyed)
	}
	nodes := b.graph.Len()
	b.updateMu.Unlock()

	return Stats{
		Generation:      b.generation.Load(),
		Nodes:           nodes,
		PendingCommands: b.commands.Len(),
		LastProcess:     time.Duration(b.lastProcess.Load()),
		MaxProcess:      time.Duration(b.maxProcess.Load()),
		BlockPeriod:     b.period,
		Overruns:        b.overruns.Load(),
		DroppedCommands: b.commands.Dropped(),
		DroppedErrors:   b.errs.Dropped(),
	}
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("generation", s.Generation),
		slog.Int("nodes", s.Nodes),
		slog.Int("pending", s.PendingCommands),
		slog.Duration("last_process", s.LastProcess),
		slog.Duration("max_process", s.MaxProcess),
		slog.Duration("block_period", s.BlockPeriod),
		slog.Uint64("overruns", s.Overruns),
		slog.Uint64("dropped_commands", s.DroppedCommands),
		slog.Uint64("dropped_errors", s.DroppedErrors),
	)
}
