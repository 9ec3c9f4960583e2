package config

import "time"

// PollerConfig contains job polling and progress rendering configuration.
type PollerConfig struct {
	// Interval is the cadence of job re-fetches while a job is pending or
	// running.
	Interval time.Duration `env:"POLL_INTERVAL" envDefault:"5s"`

	// ProgressTick is the cadence of progress view re-projection between
	// polls.
	ProgressTick time.Duration `env:"PROGRESS_TICK" envDefault:"1s"`

	// UpdateBuffer is the capacity of the poller's observer channel.
	UpdateBuffer int `env:"POLL_UPDATE_BUFFER" envDefault:"16"`
}

// Sanitize applies guardrails to poller configuration values.
func (p *PollerConfig) Sanitize() {
	if p.Interval <= 0 {
		p.Interval = 5 * time.Second
	}
	if p.ProgressTick <= 0 {
		p.ProgressTick = time.Second
	}
	if p.UpdateBuffer < 1 {
		p.UpdateBuffer = 16
	}
}
