package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantatel/quantatel-go/internal/domain/model"
	"github.com/quantatel/quantatel-go/internal/testutil"
)

func TestProject_Pending(t *testing.T) {
	job := testutil.NewJob("job-1").Build()
	view := Project(job, testutil.TestTime.Add(time.Minute))

	created := view.Steps[0]
	assert.Equal(t, StepCreated, created.ID)
	assert.Equal(t, StateCompleted, created.State)
	require.NotNil(t, created.Timestamp)
	assert.Equal(t, testutil.TestTime, *created.Timestamp)

	started := view.Steps[1]
	assert.Equal(t, StepStarted, started.ID)
	assert.Equal(t, StateUpcoming, started.State)
	assert.Nil(t, started.Timestamp)

	completed := view.Steps[2]
	assert.Equal(t, StepCompleted, completed.ID)
	assert.Equal(t, StateUpcoming, completed.State)
	assert.Equal(t, "pending completion", completed.Detail)
}

func TestProject_RunningEstimate(t *testing.T) {
	startedAt := testutil.TestTime.Add(5 * time.Second)
	job := testutil.NewJob("job-1").Running(startedAt).Build()

	// 12 seconds after start.
	view := Project(job, startedAt.Add(12*time.Second))

	started := view.Steps[1]
	assert.Equal(t, StateCompleted, started.State)
	require.NotNil(t, started.Timestamp)
	assert.Equal(t, startedAt, *started.Timestamp)

	completed := view.Steps[2]
	assert.Equal(t, StateCurrent, completed.State)
	assert.Nil(t, completed.Timestamp)
	assert.Equal(t, "running (12 seconds)", completed.Detail)
}

func TestProject_RunningEstimateFloors(t *testing.T) {
	startedAt := testutil.TestTime
	job := testutil.NewJob("job-1").Running(startedAt).Build()

	view := Project(job, startedAt.Add(12*time.Second+900*time.Millisecond))
	assert.Equal(t, "running (12 seconds)", view.Steps[2].Detail)
}

func TestProject_RunningClockSkew(t *testing.T) {
	// A start timestamp slightly in the future must not yield a negative
	// estimate.
	startedAt := testutil.TestTime.Add(10 * time.Second)
	job := testutil.NewJob("job-1").Running(startedAt).Build()

	view := Project(job, testutil.TestTime)
	assert.Equal(t, "running (0 seconds)", view.Steps[2].Detail)
}

func TestProject_Completed(t *testing.T) {
	completedAt := testutil.TestTime.Add(17 * time.Second)
	job := testutil.NewJob("job-1").
		Running(testutil.TestTime.Add(5 * time.Second)).
		Completed(completedAt, testutil.MaliciousResult(88.5, map[string]int{"00": 800, "11": 200})).
		Build()

	view := Project(job, completedAt.Add(time.Hour))

	completed := view.Steps[2]
	assert.Equal(t, "analysis complete", completed.Name)
	assert.Equal(t, StateCompleted, completed.State)
	require.NotNil(t, completed.Timestamp)
	assert.Equal(t, completedAt, *completed.Timestamp)
	assert.Empty(t, completed.Detail)
}

func TestProject_CompletedWithoutStart(t *testing.T) {
	// A job may jump straight from pending to completed between polls; the
	// started step still renders as done, just without a timestamp.
	completedAt := testutil.TestTime.Add(3 * time.Second)
	job := testutil.NewJob("job-1").Build()
	job.Status = model.JobStatusCompleted
	job.CompletedAt = &completedAt
	result := testutil.BenignResult(40, map[string]int{"00": 1})
	job.Result = &result

	view := Project(job, completedAt)

	started := view.Steps[1]
	assert.Equal(t, StateCompleted, started.State)
	assert.Nil(t, started.Timestamp)

	assert.Equal(t, StateCompleted, view.Steps[2].State)
}

func TestProject_Failed(t *testing.T) {
	completedAt := testutil.TestTime.Add(9 * time.Second)
	job := testutil.NewJob("job-1").
		Running(testutil.TestTime.Add(2 * time.Second)).
		Failed(completedAt, "quantum backend unavailable").
		Build()

	view := Project(job, completedAt.Add(time.Minute))

	failed := view.Steps[2]
	assert.Equal(t, "execution failed", failed.Name)
	assert.Equal(t, StateFailed, failed.State)
	require.NotNil(t, failed.Timestamp)
	assert.Equal(t, completedAt, *failed.Timestamp)
}
