package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/quantatel/quantatel-go/internal/domain/model"
	"github.com/quantatel/quantatel-go/internal/domain/progress"
)

// DefaultProgressTick is the re-projection cadence used when none is
// configured. The elapsed-seconds estimate only changes at second
// granularity, so ticking faster buys nothing.
const DefaultProgressTick = time.Second

// ProgressTickerOptions groups dependencies for ProgressTicker.
type ProgressTickerOptions struct {
	Tick   time.Duration // Optional: re-projection cadence, default 1s
	Clock  Clock         // Optional: wall clock by default
	Logger *slog.Logger  // Optional: structured logger
}

// ProgressTicker periodically re-projects a job snapshot into its three-step
// progress view. Projection itself is pure; the ticker supplies the timer
// that keeps the "running (N seconds)" estimate moving between polls.
type ProgressTicker struct {
	tick   time.Duration
	clock  Clock
	logger *slog.Logger
}

// NewProgressTicker constructs a new ProgressTicker.
func NewProgressTicker(opts ProgressTickerOptions) *ProgressTicker {
	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultProgressTick
	}

	clock := opts.Clock
	if clock == nil {
		clock = NewRealClock()
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "progress_ticker")
	}

	return &ProgressTicker{tick: tick, clock: clock, logger: logger}
}

// Run renders the current snapshot immediately, then re-renders every tick
// until the context ends or the snapshot reaches a terminal status. The final
// terminal view is always rendered before Run returns. A nil snapshot is
// skipped: nothing has been fetched yet.
func (t *ProgressTicker) Run(
	ctx context.Context,
	snapshot func() *model.QuantumJob,
	render func(progress.View),
) error {
	if snapshot == nil || render == nil {
		return errors.New("snapshot and render functions are required")
	}

	for {
		if job := snapshot(); job != nil {
			render(progress.Project(job, t.clock.Now()))
			if job.Status.Terminal() {
				if t.logger != nil {
					t.logger.DebugContext(ctx, "progress ticking finished", "job_id", job.ID, "status", job.Status)
				}
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.clock.After(t.tick):
		}
	}
}
