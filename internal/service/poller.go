// Package service provides the job lifecycle client services: polling,
// submission, progress ticking, and completion notification.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/quantatel/quantatel-go/internal/core"
	"github.com/quantatel/quantatel-go/internal/domain/model"
	apperrors "github.com/quantatel/quantatel-go/internal/errors"
)

// DefaultPollInterval is the fetch cadence used when none is configured.
const DefaultPollInterval = 5 * time.Second

// defaultUpdateBuffer is the updates channel capacity. Slow consumers drop
// intermediate snapshots rather than blocking the poll loop; the final
// terminal update is always delivered before the channel closes.
const defaultUpdateBuffer = 16

// PollerState is the lifecycle state of one Poller instance.
type PollerState string

const (
	// PollerIdle means Start has not been called.
	PollerIdle PollerState = "idle"
	// PollerPolling means the fetch loop is active.
	PollerPolling PollerState = "polling"
	// PollerStopped means the job reached a terminal status and polling ended.
	PollerStopped PollerState = "stopped"
	// PollerCancelled means the consumer cancelled polling.
	PollerCancelled PollerState = "cancelled"
)

// Update is one observer notification: either a fresh job snapshot or a
// transport error. Transport errors do not end polling; the last good record
// is retained and the schedule continues.
type Update struct {
	Job *model.QuantumJob
	Err error
}

// PollerOptions groups dependencies for Poller.
type PollerOptions struct {
	Fetcher  core.JobFetcher // Required: job fetch collaborator
	Interval time.Duration   // Optional: poll cadence, default 5s
	Clock    Clock           // Optional: wall clock by default
	Logger   *slog.Logger    // Optional: structured logger
	Buffer   int             // Optional: updates channel capacity
}

// Poller tracks a single job through its lifecycle by repeated fetches until
// the job reaches a terminal status or the consumer cancels. Each instance
// owns its job record exclusively; observers receive read-only clones on the
// Updates channel, which is closed when polling ends for any reason.
type Poller struct {
	fetcher  core.JobFetcher
	interval time.Duration
	clock    Clock
	logger   *slog.Logger

	mu      sync.Mutex
	state   PollerState
	jobID   string
	last    *model.QuantumJob
	stop    context.CancelFunc
	updates chan Update
	closeUp sync.Once
}

// NewPoller constructs a new Poller.
func NewPoller(opts PollerOptions) (*Poller, error) {
	if opts.Fetcher == nil {
		return nil, errors.New("JobFetcher is required")
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	clock := opts.Clock
	if clock == nil {
		clock = NewRealClock()
	}

	buffer := opts.Buffer
	if buffer <= 0 {
		buffer = defaultUpdateBuffer
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "job_poller")
	}

	return &Poller{
		fetcher:  opts.Fetcher,
		interval: interval,
		clock:    clock,
		logger:   logger,
		state:    PollerIdle,
		updates:  make(chan Update, buffer),
	}, nil
}

// Updates returns the observer channel. It is closed once polling stops,
// whether by terminal status or cancellation.
func (p *Poller) Updates() <-chan Update {
	return p.updates
}

// State returns the current poller state.
func (p *Poller) State() PollerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Snapshot returns a clone of the last observed job record, or nil when no
// successful fetch has happened yet.
func (p *Poller) Snapshot() *model.QuantumJob {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last.Clone()
}

// Start begins polling the given job. The first fetch is issued immediately;
// subsequent fetches run every interval while the last observed status is
// pending or running. Calling Start on an instance that is already polling,
// stopped, or cancelled is a no-op.
func (p *Poller) Start(ctx context.Context, jobID string) error {
	if jobID == "" {
		return apperrors.ValidationField("job_id", "job id is required")
	}

	p.mu.Lock()
	if p.state != PollerIdle {
		p.mu.Unlock()
		if p.logger != nil {
			p.logger.Debug("start ignored, poller not idle", "state", p.state, "job_id", jobID)
		}
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.state = PollerPolling
	p.jobID = jobID
	p.stop = cancel
	p.mu.Unlock()

	go p.run(runCtx)
	return nil
}

// Cancel stops all future fetches immediately. The result of any in-flight
// fetch is discarded on arrival: no state update, no observer notification.
// Cancel is idempotent and safe to call before Start.
func (p *Poller) Cancel() {
	p.mu.Lock()
	prev := p.state
	p.state = PollerCancelled
	stop := p.stop
	p.mu.Unlock()

	if stop != nil {
		stop()
	}
	if prev != PollerPolling {
		// Not started, or loop already finished: the run goroutine won't close
		// the channel for us.
		p.closeUpdates()
	}
	if p.logger != nil && prev == PollerPolling {
		p.logger.Debug("polling cancelled", "job_id", p.jobID)
	}
}

// run is the fetch loop. It applies each result under the state lock so a
// response arriving after cancellation, or after a terminal status is
// already known, is discarded.
func (p *Poller) run(ctx context.Context) {
	defer func() {
		// A parent-context cancellation ends the loop without going through
		// Cancel; the state must not keep reading as polling.
		p.mu.Lock()
		if p.state == PollerPolling {
			p.state = PollerCancelled
		}
		p.mu.Unlock()
		p.closeUpdates()
	}()

	for {
		job, err := p.fetcher.GetJob(ctx, p.jobID)
		if !p.apply(ctx, job, err) {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-p.clock.After(p.interval):
		}
	}
}

// apply folds one fetch outcome into the poller state. It returns false when
// polling should end.
func (p *Poller) apply(ctx context.Context, job *model.QuantumJob, err error) bool {
	p.mu.Lock()

	if p.state != PollerPolling {
		// Cancelled while the fetch was in flight: discard the response.
		p.mu.Unlock()
		return false
	}

	if err != nil {
		p.mu.Unlock()
		if ctx.Err() != nil {
			return false
		}
		if p.logger != nil {
			p.logger.WarnContext(ctx, "job fetch failed, keeping schedule",
				"job_id", p.jobID, "error", err)
		}
		p.notify(Update{Err: apperrors.Wrapf(err, apperrors.ErrCodeTransport, "fetch job %s", p.jobID)})
		return true
	}

	if p.last != nil && p.last.Status.Terminal() {
		// A terminal status never reverts; ignore late or reordered responses.
		p.mu.Unlock()
		return false
	}

	p.last = job
	terminal := job.Status.Terminal()
	if terminal {
		p.state = PollerStopped
	}
	snapshot := job.Clone()
	p.mu.Unlock()

	if p.logger != nil {
		p.logger.DebugContext(ctx, "job state observed", "job_id", job.ID, "status", job.Status)
	}
	p.notify(Update{Job: snapshot}, terminal)

	return !terminal
}

// notify delivers an update without ever blocking the poll loop. When the
// buffer is full, intermediate updates are dropped; a final update (terminal
// snapshot) evicts the oldest entry instead so it is never lost.
func (p *Poller) notify(u Update, final ...bool) {
	mustDeliver := len(final) > 0 && final[0]
	for {
		select {
		case p.updates <- u:
			return
		default:
		}
		if !mustDeliver {
			if p.logger != nil {
				p.logger.Debug("observer lagging, dropping update", "job_id", p.jobID)
			}
			return
		}
		select {
		case <-p.updates:
		default:
		}
	}
}

func (p *Poller) closeUpdates() {
	p.closeUp.Do(func() {
		close(p.updates)
	})
}

// Err returns the job's own failure as a JobFailure error when the last
// observed status is failed, or nil otherwise. This is the terminal, expected
// outcome surfaced for display; it is distinct from transport errors.
func (p *Poller) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.last == nil || p.last.Status != model.JobStatusFailed {
		return nil
	}
	msg := "job failed"
	if p.last.ErrorMessage != nil && *p.last.ErrorMessage != "" {
		msg = *p.last.ErrorMessage
	}
	return apperrors.JobFailure(fmt.Sprintf("job %s: %s", p.last.ID, msg))
}
