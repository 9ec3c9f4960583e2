package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string       { return &s }
func timePtr(t time.Time) *time.Time { return &t }

func TestJobStatus_Valid(t *testing.T) {
	for _, s := range []JobStatus{JobStatusPending, JobStatusRunning, JobStatusCompleted, JobStatusFailed} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, JobStatus("queued").Valid())
	assert.False(t, JobStatus("").Valid())
}

func TestJobStatus_Terminal(t *testing.T) {
	assert.False(t, JobStatusPending.Terminal())
	assert.False(t, JobStatusRunning.Terminal())
	assert.True(t, JobStatusCompleted.Terminal())
	assert.True(t, JobStatusFailed.Terminal())
}

func TestJobStatus_UnmarshalText(t *testing.T) {
	var s JobStatus
	require.NoError(t, s.UnmarshalText([]byte(" Running ")))
	assert.Equal(t, JobStatusRunning, s)

	require.Error(t, s.UnmarshalText([]byte("nope")))
}

func validPendingJob() *QuantumJob {
	return &QuantumJob{
		ID:        "job-1",
		Title:     "skimmer sweep",
		Status:    JobStatusPending,
		Priority:  5,
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
}

func TestQuantumJob_Validate(t *testing.T) {
	completedAt := testTime.Add(30 * time.Second)
	startedAt := testTime.Add(5 * time.Second)

	tests := []struct {
		name    string
		mutate  func(j *QuantumJob)
		wantErr string
	}{
		{
			name:   "valid pending",
			mutate: func(j *QuantumJob) {},
		},
		{
			name: "valid running",
			mutate: func(j *QuantumJob) {
				j.Status = JobStatusRunning
				j.StartedAt = timePtr(startedAt)
			},
		},
		{
			name: "valid completed",
			mutate: func(j *QuantumJob) {
				j.Status = JobStatusCompleted
				j.StartedAt = timePtr(startedAt)
				j.CompletedAt = timePtr(completedAt)
				j.Result = &JobResult{Counts: map[string]int{"00": 512}}
			},
		},
		{
			name: "valid completed without started_at",
			mutate: func(j *QuantumJob) {
				j.Status = JobStatusCompleted
				j.CompletedAt = timePtr(completedAt)
				j.Result = &JobResult{Counts: map[string]int{"00": 512}}
			},
		},
		{
			name: "valid failed",
			mutate: func(j *QuantumJob) {
				j.Status = JobStatusFailed
				j.CompletedAt = timePtr(completedAt)
				j.ErrorMessage = strPtr("backend unavailable")
			},
		},
		{
			name:    "missing id",
			mutate:  func(j *QuantumJob) { j.ID = "" },
			wantErr: "job id is required",
		},
		{
			name:    "invalid status",
			mutate:  func(j *QuantumJob) { j.Status = "queued" },
			wantErr: "invalid job status",
		},
		{
			name:    "missing created_at",
			mutate:  func(j *QuantumJob) { j.CreatedAt = time.Time{} },
			wantErr: "created_at is required",
		},
		{
			name: "pending with result",
			mutate: func(j *QuantumJob) {
				j.Result = &JobResult{}
			},
			wantErr: "result must be present iff status is completed",
		},
		{
			name: "completed without result",
			mutate: func(j *QuantumJob) {
				j.Status = JobStatusCompleted
				j.CompletedAt = timePtr(completedAt)
			},
			wantErr: "result must be present iff status is completed",
		},
		{
			name: "pending with error message",
			mutate: func(j *QuantumJob) {
				j.ErrorMessage = strPtr("oops")
			},
			wantErr: "error_message must be present iff status is failed",
		},
		{
			name: "failed without error message",
			mutate: func(j *QuantumJob) {
				j.Status = JobStatusFailed
				j.CompletedAt = timePtr(completedAt)
			},
			wantErr: "error_message must be present iff status is failed",
		},
		{
			name: "pending with completed_at",
			mutate: func(j *QuantumJob) {
				j.CompletedAt = timePtr(completedAt)
			},
			wantErr: "completed_at must be present iff status is terminal",
		},
		{
			name: "running without started_at",
			mutate: func(j *QuantumJob) {
				j.Status = JobStatusRunning
			},
			wantErr: "started_at is required while status is running",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := validPendingJob()
			tt.mutate(job)

			err := job.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestQuantumJob_Clone(t *testing.T) {
	startedAt := testTime.Add(5 * time.Second)
	original := validPendingJob()
	original.Status = JobStatusRunning
	original.StartedAt = timePtr(startedAt)
	original.Tags = []string{"skimmer", "prod"}
	original.InputParamsSummary = map[string]any{"sources": 3}

	clone := original.Clone()
	require.NotNil(t, clone)
	assert.Equal(t, original, clone)

	// Mutating the clone must not leak back into the original.
	*clone.StartedAt = clone.StartedAt.Add(time.Hour)
	clone.Tags[0] = "changed"
	clone.InputParamsSummary["sources"] = 99

	assert.Equal(t, startedAt, *original.StartedAt)
	assert.Equal(t, "skimmer", original.Tags[0])
	assert.Equal(t, 3, original.InputParamsSummary["sources"])
}

func TestQuantumJob_Clone_Nil(t *testing.T) {
	var job *QuantumJob
	assert.Nil(t, job.Clone())
}

func TestQuantumJob_Clone_Result(t *testing.T) {
	original := validPendingJob()
	original.Status = JobStatusCompleted
	original.CompletedAt = timePtr(testTime.Add(time.Minute))
	original.Result = &JobResult{
		IsMalicious: true,
		Confidence:  88.5,
		Counts:      map[string]int{"00": 800, "11": 200},
	}

	clone := original.Clone()
	clone.Result.Counts["00"] = 1

	assert.Equal(t, 800, original.Result.Counts["00"])
}

func TestQuantumJob_JSONRoundTrip(t *testing.T) {
	raw := `{
		"id": "job-7",
		"title": "card skimmer scan",
		"status": "completed",
		"priority": 8,
		"created_at": "2026-03-15T12:00:00Z",
		"updated_at": "2026-03-15T12:01:00Z",
		"started_at": "2026-03-15T12:00:05Z",
		"completed_at": "2026-03-15T12:00:17Z",
		"execution_time_seconds": 12,
		"quantum_backend": "aer_simulator",
		"is_simulation": true,
		"results": {
			"prediction": 1,
			"probability": 0.93,
			"confidence": 88.5,
			"is_malicious": true,
			"counts": {"00": 800, "11": 200}
		}
	}`

	var job QuantumJob
	require.NoError(t, json.Unmarshal([]byte(raw), &job))
	require.NoError(t, job.Validate())

	assert.Equal(t, "job-7", job.ID)
	assert.Equal(t, JobStatusCompleted, job.Status)
	assert.Equal(t, "aer_simulator", job.Backend)
	require.NotNil(t, job.ExecutionTimeSeconds)
	assert.Equal(t, 12, *job.ExecutionTimeSeconds)
	require.NotNil(t, job.Result)
	assert.True(t, job.Result.IsMalicious)
	assert.Equal(t, 800, job.Result.Counts["00"])
}
