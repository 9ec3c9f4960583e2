// Package model defines the core data types shared across the quantatel client.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// JobStatus represents the current lifecycle state of an analysis job.
type JobStatus string

const (
	// JobStatusPending indicates a job is waiting to be picked up by the backend.
	JobStatusPending JobStatus = "pending"
	// JobStatusRunning indicates a job is currently executing.
	JobStatusRunning JobStatus = "running"
	// JobStatusCompleted indicates a job finished successfully.
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed indicates a job finished with an error.
	JobStatusFailed JobStatus = "failed"
)

// Valid returns true if the JobStatus is one of the known lifecycle states.
func (s JobStatus) Valid() bool {
	return s == JobStatusPending || s == JobStatusRunning || s == JobStatusCompleted ||
		s == JobStatusFailed
}

// Terminal returns true if no further status transitions can occur.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// UnmarshalText implements encoding.TextUnmarshaler for JobStatus.
func (s *JobStatus) UnmarshalText(text []byte) error {
	v := JobStatus(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("invalid JobStatus: %q", string(text))
	}
	*s = v
	return nil
}

// JobResult is the analysis payload present once a job completes.
type JobResult struct {
	Prediction  int            `json:"prediction"`
	Probability float64        `json:"probability"`
	Confidence  float64        `json:"confidence"`
	IsMalicious bool           `json:"is_malicious"`
	Counts      map[string]int `json:"counts"`
}

// QuantumJob represents a submitted analysis job and its backend-owned state.
// The client never mutates a job locally; records are replaced wholesale by
// re-fetching from the job service.
type QuantumJob struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      JobStatus `json:"status"`
	Priority    int       `json:"priority"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	ExecutionTimeSeconds *int     `json:"execution_time_seconds,omitempty"`
	Backend              string   `json:"quantum_backend,omitempty"`
	IsSimulation         bool     `json:"is_simulation"`
	Shots                int      `json:"shots,omitempty"`
	Tags                 []string `json:"tags,omitempty"`

	Result       *JobResult `json:"results,omitempty"`
	ErrorMessage *string    `json:"error_message,omitempty"`

	// Display-only summaries; never interpreted by client logic.
	InputParamsSummary map[string]any `json:"input_params_summary,omitempty"`
	ResultsSummary     map[string]any `json:"results_summary,omitempty"`
}

// Validate checks the record invariants:
//   - result is present iff status is completed
//   - error message is present iff status is failed
//   - completed_at is set iff status is terminal
//   - started_at is set whenever status is running
//
// A terminal job without started_at is accepted: the backend may transition a
// job straight from pending to completed between polls.
func (j *QuantumJob) Validate() error {
	if j.ID == "" {
		return errors.New("job id is required")
	}
	if !j.Status.Valid() {
		return fmt.Errorf("invalid job status: %q", j.Status)
	}
	if j.CreatedAt.IsZero() {
		return errors.New("created_at is required")
	}

	if (j.Result != nil) != (j.Status == JobStatusCompleted) {
		return fmt.Errorf("result must be present iff status is completed, status=%s", j.Status)
	}
	if (j.ErrorMessage != nil) != (j.Status == JobStatusFailed) {
		return fmt.Errorf("error_message must be present iff status is failed, status=%s", j.Status)
	}
	if (j.CompletedAt != nil) != j.Status.Terminal() {
		return fmt.Errorf("completed_at must be present iff status is terminal, status=%s", j.Status)
	}
	if j.Status == JobStatusRunning && j.StartedAt == nil {
		return errors.New("started_at is required while status is running")
	}
	return nil
}

// Clone returns a deep copy of the record. Observers receive clones so that
// no mutable state is shared across consumers.
func (j *QuantumJob) Clone() *QuantumJob {
	if j == nil {
		return nil
	}
	out := *j
	out.StartedAt = cloneTime(j.StartedAt)
	out.CompletedAt = cloneTime(j.CompletedAt)
	if j.ExecutionTimeSeconds != nil {
		v := *j.ExecutionTimeSeconds
		out.ExecutionTimeSeconds = &v
	}
	if j.ErrorMessage != nil {
		v := *j.ErrorMessage
		out.ErrorMessage = &v
	}
	if j.Tags != nil {
		out.Tags = append([]string(nil), j.Tags...)
	}
	if j.Result != nil {
		r := *j.Result
		if j.Result.Counts != nil {
			r.Counts = make(map[string]int, len(j.Result.Counts))
			for k, v := range j.Result.Counts {
				r.Counts[k] = v
			}
		}
		out.Result = &r
	}
	out.InputParamsSummary = cloneAnyMap(j.InputParamsSummary)
	out.ResultsSummary = cloneAnyMap(j.ResultsSummary)
	return &out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// cloneAnyMap copies the top level only; summary values are opaque and read-only.
func cloneAnyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
