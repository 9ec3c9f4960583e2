// Package progress derives a human-facing three-step progress view from a
// job record and the current wall-clock time. Projection is pure: callers
// re-evaluate on their own timer since the elapsed-time estimate changes
// continuously between polls.
package progress

import (
	"fmt"
	"time"

	"github.com/quantatel/quantatel-go/internal/domain/model"
)

// StepID identifies one of the three lifecycle steps.
type StepID string

const (
	// StepCreated is the job creation step.
	StepCreated StepID = "created"
	// StepStarted is the execution start step.
	StepStarted StepID = "started"
	// StepCompleted is the analysis completion step.
	StepCompleted StepID = "completed"
)

// StepState is the derived sub-state of a step.
type StepState string

const (
	// StateCompleted marks a step that has happened.
	StateCompleted StepState = "completed"
	// StateCurrent marks the step in progress.
	StateCurrent StepState = "current"
	// StateUpcoming marks a step that has not happened yet.
	StateUpcoming StepState = "upcoming"
	// StateFailed marks the completion step of a failed job.
	StateFailed StepState = "failed"
)

// Step is one rendered progress step.
type Step struct {
	ID    StepID
	Name  string
	State StepState
	// Timestamp is the step's recorded time, when known.
	Timestamp *time.Time
	// Detail is the display estimate used when no timestamp exists, such as
	// "running (12 seconds)" or "pending completion".
	Detail string
}

// View is the full three-step projection of a job record.
type View struct {
	Steps [3]Step
}

// Project maps a job record onto its progress view at the given instant.
func Project(job *model.QuantumJob, now time.Time) View {
	created := job.CreatedAt
	return View{
		Steps: [3]Step{
			{
				ID:        StepCreated,
				Name:      "job created",
				State:     StateCompleted,
				Timestamp: &created,
			},
			startedStep(job),
			completedStep(job, now),
		},
	}
}

func startedStep(job *model.QuantumJob) Step {
	step := Step{ID: StepStarted, Name: "execution started"}
	switch job.Status {
	case model.JobStatusRunning, model.JobStatusCompleted, model.JobStatusFailed:
		step.State = StateCompleted
		step.Timestamp = job.StartedAt
	default:
		step.State = StateUpcoming
		step.Detail = "waiting"
	}
	return step
}

func completedStep(job *model.QuantumJob, now time.Time) Step {
	step := Step{ID: StepCompleted, Name: "analysis complete"}
	if job.Status == model.JobStatusFailed {
		step.Name = "execution failed"
	}

	switch job.Status {
	case model.JobStatusCompleted:
		step.State = StateCompleted
	case model.JobStatusFailed:
		step.State = StateFailed
	case model.JobStatusRunning:
		step.State = StateCurrent
	default:
		step.State = StateUpcoming
	}

	if job.CompletedAt != nil {
		step.Timestamp = job.CompletedAt
		return step
	}

	step.Detail = estimate(job, now)
	return step
}

// estimate renders the completion step's display text when no completion
// timestamp exists. Elapsed time is floored to whole seconds.
func estimate(job *model.QuantumJob, now time.Time) string {
	if job.Status == model.JobStatusRunning && job.StartedAt != nil {
		elapsed := int(now.Sub(*job.StartedAt).Seconds())
		if elapsed < 0 {
			elapsed = 0
		}
		return fmt.Sprintf("running (%d seconds)", elapsed)
	}
	return "pending completion"
}
