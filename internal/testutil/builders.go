package testutil

import (
	"time"

	"github.com/quantatel/quantatel-go/internal/domain/model"
)

// JobBuilder provides a fluent interface for building QuantumJob records for
// testing. Defaults describe a freshly created pending job; the With* helpers
// move it through the lifecycle while keeping the record invariants intact.
type JobBuilder struct {
	job *model.QuantumJob
}

// NewJob creates a new JobBuilder with sensible defaults.
func NewJob(id string) *JobBuilder {
	return &JobBuilder{
		job: &model.QuantumJob{
			ID:           id,
			Title:        "skimmer sweep " + id,
			Status:       model.JobStatusPending,
			Priority:     5,
			CreatedAt:    TestTime,
			UpdatedAt:    TestTime,
			Backend:      "aer_simulator",
			IsSimulation: true,
		},
	}
}

// WithTitle sets the job title.
func (b *JobBuilder) WithTitle(title string) *JobBuilder {
	b.job.Title = title
	return b
}

// WithPriority sets the job priority.
func (b *JobBuilder) WithPriority(priority int) *JobBuilder {
	b.job.Priority = priority
	return b
}

// WithCreatedAt sets the creation timestamp.
func (b *JobBuilder) WithCreatedAt(t time.Time) *JobBuilder {
	b.job.CreatedAt = t
	return b
}

// WithTags sets the job tags.
func (b *JobBuilder) WithTags(tags ...string) *JobBuilder {
	b.job.Tags = tags
	return b
}

// Running moves the job into the running state, started at the given instant.
func (b *JobBuilder) Running(startedAt time.Time) *JobBuilder {
	b.job.Status = model.JobStatusRunning
	b.job.StartedAt = TimePtr(startedAt)
	b.job.Result = nil
	b.job.ErrorMessage = nil
	b.job.CompletedAt = nil
	return b
}

// Completed moves the job into the completed state with the given result.
func (b *JobBuilder) Completed(completedAt time.Time, result model.JobResult) *JobBuilder {
	b.job.Status = model.JobStatusCompleted
	b.job.CompletedAt = TimePtr(completedAt)
	b.job.Result = &result
	b.job.ErrorMessage = nil
	if b.job.StartedAt == nil {
		b.job.StartedAt = TimePtr(completedAt.Add(-10 * time.Second))
	}
	return b
}

// Failed moves the job into the failed state with the given error message.
func (b *JobBuilder) Failed(completedAt time.Time, message string) *JobBuilder {
	b.job.Status = model.JobStatusFailed
	b.job.CompletedAt = TimePtr(completedAt)
	b.job.ErrorMessage = StringPtr(message)
	b.job.Result = nil
	return b
}

// Build returns the constructed job record.
func (b *JobBuilder) Build() *model.QuantumJob {
	return b.job.Clone()
}

// MaliciousResult returns a completed-job result with the given confidence
// and a two-outcome count distribution.
func MaliciousResult(confidence float64, counts map[string]int) model.JobResult {
	return model.JobResult{
		Prediction:  1,
		Probability: 0.93,
		Confidence:  confidence,
		IsMalicious: true,
		Counts:      counts,
	}
}

// BenignResult returns a completed-job result flagged benign.
func BenignResult(confidence float64, counts map[string]int) model.JobResult {
	return model.JobResult{
		Prediction:  0,
		Probability: 0.12,
		Confidence:  confidence,
		IsMalicious: false,
		Counts:      counts,
	}
}
