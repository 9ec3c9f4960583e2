package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/quantatel/quantatel-go/internal/domain/model"
	apperrors "github.com/quantatel/quantatel-go/internal/errors"
	"github.com/quantatel/quantatel-go/internal/mocks"
	"github.com/quantatel/quantatel-go/internal/testutil"
)

const updateWait = 5 * time.Second

func newTestPoller(t *testing.T, fetcher *mocks.MockJobAPI, clock Clock) *Poller {
	t.Helper()

	poller, err := NewPoller(PollerOptions{
		Fetcher: fetcher,
		Clock:   clock,
	})
	require.NoError(t, err)
	return poller
}

func receiveUpdate(t *testing.T, poller *Poller) Update {
	t.Helper()

	select {
	case update, ok := <-poller.Updates():
		require.True(t, ok, "updates channel closed unexpectedly")
		return update
	case <-time.After(updateWait):
		t.Fatal("timed out waiting for update")
		return Update{}
	}
}

func requireClosed(t *testing.T, poller *Poller) {
	t.Helper()

	select {
	case update, ok := <-poller.Updates():
		require.False(t, ok, "expected closed channel, got update %+v", update)
	case <-time.After(updateWait):
		t.Fatal("timed out waiting for updates channel to close")
	}
}

func TestNewPoller_RequiresFetcher(t *testing.T) {
	_, err := NewPoller(PollerOptions{})
	require.Error(t, err)
}

func TestPoller_StartRequiresJobID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	poller := newTestPoller(t, mocks.NewMockJobAPI(ctrl), testutil.NewFakeClock(testutil.TestTime))
	err := poller.Start(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestPoller_ImmediateFirstFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := testutil.NewFakeClock(testutil.TestTime)
	fetcher := mocks.NewMockJobAPI(ctrl)
	fetcher.EXPECT().GetJob(gomock.Any(), "job-1").
		Return(testutil.NewJob("job-1").Build(), nil)

	poller := newTestPoller(t, fetcher, clock)
	require.NoError(t, poller.Start(context.Background(), "job-1"))

	// The first update arrives without any clock advance.
	update := receiveUpdate(t, poller)
	require.NoError(t, update.Err)
	assert.Equal(t, model.JobStatusPending, update.Job.Status)
	assert.Equal(t, PollerPolling, poller.State())

	poller.Cancel()
	requireClosed(t, poller)
}

func TestPoller_LifecycleToCompletion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := testutil.NewFakeClock(testutil.TestTime)
	startedAt := testutil.TestTime.Add(2 * time.Second)
	completedAt := testutil.TestTime.Add(14 * time.Second)

	pending := testutil.NewJob("job-1").Build()
	running := testutil.NewJob("job-1").Running(startedAt).Build()
	completed := testutil.NewJob("job-1").
		Running(startedAt).
		Completed(completedAt, testutil.MaliciousResult(88.5, map[string]int{"00": 900, "11": 100})).
		Build()

	fetcher := mocks.NewMockJobAPI(ctrl)
	gomock.InOrder(
		fetcher.EXPECT().GetJob(gomock.Any(), "job-1").Return(pending, nil),
		fetcher.EXPECT().GetJob(gomock.Any(), "job-1").Return(running, nil),
		fetcher.EXPECT().GetJob(gomock.Any(), "job-1").Return(completed, nil),
	)

	poller := newTestPoller(t, fetcher, clock)
	require.NoError(t, poller.Start(context.Background(), "job-1"))

	assert.Equal(t, model.JobStatusPending, receiveUpdate(t, poller).Job.Status)

	clock.WaitForWaiters(t, 1)
	clock.Advance(DefaultPollInterval)
	assert.Equal(t, model.JobStatusRunning, receiveUpdate(t, poller).Job.Status)

	clock.WaitForWaiters(t, 1)
	clock.Advance(DefaultPollInterval)
	final := receiveUpdate(t, poller)
	assert.Equal(t, model.JobStatusCompleted, final.Job.Status)
	require.NotNil(t, final.Job.Result)
	assert.True(t, final.Job.Result.IsMalicious)

	// Terminal status ends polling: channel closes, no further fetches.
	requireClosed(t, poller)
	assert.Equal(t, PollerStopped, poller.State())
	assert.NoError(t, poller.Err())

	// Restarting a stopped poller is a no-op.
	require.NoError(t, poller.Start(context.Background(), "job-1"))
	assert.Equal(t, PollerStopped, poller.State())
}

func TestPoller_TransportErrorKeepsPolling(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := testutil.NewFakeClock(testutil.TestTime)
	fetcher := mocks.NewMockJobAPI(ctrl)
	gomock.InOrder(
		fetcher.EXPECT().GetJob(gomock.Any(), "job-1").
			Return(nil, apperrors.Transport("connection refused")),
		fetcher.EXPECT().GetJob(gomock.Any(), "job-1").
			Return(testutil.NewJob("job-1").Build(), nil),
	)

	poller := newTestPoller(t, fetcher, clock)
	require.NoError(t, poller.Start(context.Background(), "job-1"))

	errUpdate := receiveUpdate(t, poller)
	require.Error(t, errUpdate.Err)
	assert.True(t, apperrors.IsTransport(errUpdate.Err))
	assert.Nil(t, errUpdate.Job)
	assert.Equal(t, PollerPolling, poller.State())

	// The failure did not break the schedule: the next tick fetches again.
	clock.WaitForWaiters(t, 1)
	clock.Advance(DefaultPollInterval)
	ok := receiveUpdate(t, poller)
	require.NoError(t, ok.Err)
	assert.Equal(t, model.JobStatusPending, ok.Job.Status)

	poller.Cancel()
	requireClosed(t, poller)
}

func TestPoller_StartIsIdempotentWhilePolling(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := testutil.NewFakeClock(testutil.TestTime)
	fetcher := mocks.NewMockJobAPI(ctrl)
	// Exactly one fetch: the second Start must not spawn a second loop.
	fetcher.EXPECT().GetJob(gomock.Any(), "job-1").
		Return(testutil.NewJob("job-1").Build(), nil)

	poller := newTestPoller(t, fetcher, clock)
	require.NoError(t, poller.Start(context.Background(), "job-1"))
	receiveUpdate(t, poller)

	require.NoError(t, poller.Start(context.Background(), "job-1"))
	assert.Equal(t, PollerPolling, poller.State())

	poller.Cancel()
	requireClosed(t, poller)
}

func TestPoller_CancelStopsSchedule(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := testutil.NewFakeClock(testutil.TestTime)
	fetcher := mocks.NewMockJobAPI(ctrl)
	fetcher.EXPECT().GetJob(gomock.Any(), "job-1").
		Return(testutil.NewJob("job-1").Build(), nil)

	poller := newTestPoller(t, fetcher, clock)
	require.NoError(t, poller.Start(context.Background(), "job-1"))
	receiveUpdate(t, poller)

	// The loop is now waiting on the interval timer. Cancel must end it
	// without another fetch even if the timer later fires.
	clock.WaitForWaiters(t, 1)
	poller.Cancel()
	requireClosed(t, poller)
	assert.Equal(t, PollerCancelled, poller.State())

	clock.Advance(DefaultPollInterval)
	// No new expectation was registered, so a stray fetch would fail the
	// controller check on Finish.
}

func TestPoller_ParentContextCancelStopsPolling(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := testutil.NewFakeClock(testutil.TestTime)
	fetcher := mocks.NewMockJobAPI(ctrl)
	fetcher.EXPECT().GetJob(gomock.Any(), "job-1").
		Return(testutil.NewJob("job-1").Build(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	poller := newTestPoller(t, fetcher, clock)
	require.NoError(t, poller.Start(ctx, "job-1"))
	receiveUpdate(t, poller)

	// Cancel through the parent context, not Cancel(): the loop must end and
	// the state must reflect that the poller is no longer live.
	clock.WaitForWaiters(t, 1)
	cancel()
	requireClosed(t, poller)
	assert.Equal(t, PollerCancelled, poller.State())
}

func TestPoller_CancelDiscardsInFlightResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := testutil.NewFakeClock(testutil.TestTime)
	fetchStarted := make(chan struct{})
	release := make(chan struct{})

	completed := testutil.NewJob("job-1").
		Running(testutil.TestTime).
		Completed(testutil.TestTime.Add(10*time.Second), testutil.MaliciousResult(90, map[string]int{"00": 1})).
		Build()

	fetcher := mocks.NewMockJobAPI(ctrl)
	fetcher.EXPECT().GetJob(gomock.Any(), "job-1").
		DoAndReturn(func(context.Context, string) (*model.QuantumJob, error) {
			close(fetchStarted)
			<-release
			return completed, nil
		})

	poller := newTestPoller(t, fetcher, clock)
	require.NoError(t, poller.Start(context.Background(), "job-1"))

	<-fetchStarted
	poller.Cancel()
	close(release)

	// The in-flight response arrives after cancellation: it must be
	// discarded, never delivered.
	requireClosed(t, poller)
	assert.Equal(t, PollerCancelled, poller.State())
	assert.Nil(t, poller.Snapshot())
}

func TestPoller_CancelBeforeStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	poller := newTestPoller(t, mocks.NewMockJobAPI(ctrl), testutil.NewFakeClock(testutil.TestTime))
	poller.Cancel()
	requireClosed(t, poller)

	// Start after cancel is a no-op; no fetch happens.
	require.NoError(t, poller.Start(context.Background(), "job-1"))
	assert.Equal(t, PollerCancelled, poller.State())
}

func TestPoller_ErrSurfacesJobFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := testutil.NewFakeClock(testutil.TestTime)
	failed := testutil.NewJob("job-1").
		Failed(testutil.TestTime.Add(8*time.Second), "quantum backend unavailable").
		Build()

	fetcher := mocks.NewMockJobAPI(ctrl)
	fetcher.EXPECT().GetJob(gomock.Any(), "job-1").Return(failed, nil)

	poller := newTestPoller(t, fetcher, clock)
	require.NoError(t, poller.Start(context.Background(), "job-1"))

	update := receiveUpdate(t, poller)
	assert.Equal(t, model.JobStatusFailed, update.Job.Status)
	requireClosed(t, poller)
	assert.Equal(t, PollerStopped, poller.State())

	err := poller.Err()
	require.Error(t, err)
	assert.True(t, apperrors.IsJobFailure(err))
	assert.Contains(t, err.Error(), "quantum backend unavailable")
}

func TestPoller_SnapshotIsIsolated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := testutil.NewFakeClock(testutil.TestTime)
	fetcher := mocks.NewMockJobAPI(ctrl)
	fetcher.EXPECT().GetJob(gomock.Any(), "job-1").
		Return(testutil.NewJob("job-1").WithTags("prod").Build(), nil)

	poller := newTestPoller(t, fetcher, clock)
	require.NoError(t, poller.Start(context.Background(), "job-1"))
	receiveUpdate(t, poller)

	snap1 := poller.Snapshot()
	require.NotNil(t, snap1)
	snap1.Tags[0] = "mutated"

	snap2 := poller.Snapshot()
	assert.Equal(t, "prod", snap2.Tags[0])

	poller.Cancel()
	requireClosed(t, poller)
}
