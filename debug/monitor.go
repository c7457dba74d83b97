// Package debug provides runtime monitoring and diagnostics.
package debug

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/drake/typewriter/session"
)

// Enabled returns true if debug mode is active (TYPEWRITER_DEBUG=1).
func Enabled() bool {
	return os.Getenv("TYPEWRITER_DEBUG") == "1"
}

// StatsSource is what the monitor samples. *session.Session implements it.
type StatsSource interface {
	Stats() session.Stats
}

// Monitor periodically logs session statistics when debug mode is enabled.
type Monitor struct {
	source   StatsSource
	interval time.Duration
	ctx      context.Context
	log      zerolog.Logger
}

// NewMonitor creates a new monitor for the given session.
// If debug mode is not enabled, returns nil.
func NewMonitor(ctx context.Context, src StatsSource, log zerolog.Logger) *Monitor {
	if !Enabled() {
		return nil
	}
	return newMonitor(ctx, src, log, 5*time.Second)
}

func newMonitor(ctx context.Context, src StatsSource, log zerolog.Logger, interval time.Duration) *Monitor {
	return &Monitor{
		source:   src,
		interval: interval,
		ctx:      ctx,
		log:      log.With().Str("component", "monitor").Logger(),
	}
}

// Start begins the monitoring loop in a goroutine.
func (m *Monitor) Start() {
	if m == nil {
		return
	}
	go m.run()
}

func (m *Monitor) run() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.log.Debug().Dur("interval", m.interval).Msg("monitor started")

	for {
		select {
		case <-m.ctx.Done():
			m.log.Debug().Msg("monitor stopped")
			return
		case <-ticker.C:
			m.logStats()
		}
	}
}

func (m *Monitor) logStats() {
	s := m.source.Stats()
	tw := s.Typewriter

	m.log.Info().
		Uint64("jobs", s.JobsRun).
		Uint64("dropped", s.JobsDropped).
		Uint64("reloads", s.Reloads).
		Int("timers", s.Timers).
		Int("goroutines", s.Goroutines).
		Uint64("ticks", tw.Ticks).
		Uint64("processed", tw.Processed).
		Uint64("wraps", tw.Wraps).
		Int("queued", tw.Queued).
		Int("replay", tw.Replay).
		Int("visible", tw.Visible).
		Bool("paused", tw.Paused).
		Bool("running", tw.Running).
		Msg("stats")
}
