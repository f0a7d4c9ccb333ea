package poller_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infinite-flow-backend/internal/poller"
)

// fakeClock records requested waits and returns immediately, so a 30-attempt
// chain runs in microseconds.
type fakeClock struct {
	sleeps []time.Duration
	cancel context.CancelFunc
	// cancelAfter cancels the context after that many sleeps, simulating
	// shutdown mid-chain.
	cancelAfter int
}

func (f *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	f.sleeps = append(f.sleeps, d)
	if f.cancel != nil && len(f.sleeps) >= f.cancelAfter {
		f.cancel()
	}
	return ctx.Err()
}

func newPoller(interval time.Duration, maxAttempts int, clock poller.Clock) *poller.Poller {
	log := logrus.New()
	log.SetOutput(io.Discard)
	p := poller.New(interval, maxAttempts, log)
	p.Clock = clock
	return p
}

func stillProcessing(calls *int) poller.CheckFunc {
	return func(ctx context.Context) (poller.AssetStatus, error) {
		*calls++
		return poller.AssetStatus{AssetID: "asset-1"}, nil
	}
}

func TestPoll_ExhaustionIsNotAnError(t *testing.T) {
	clock := &fakeClock{}
	p := newPoller(5*time.Second, 3, clock)

	calls := 0
	outcome, err := p.Poll(context.Background(), stillProcessing(&calls), nil)

	require.NoError(t, err, "running out of attempts is a quiet stop, not a failure")
	assert.False(t, outcome.Ready)
	assert.False(t, outcome.Failed)
	assert.Equal(t, 3, outcome.Attempts)
	assert.Equal(t, 3, calls, "exactly one status query per attempt")
	assert.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second, 5 * time.Second}, clock.sleeps,
		"each attempt waits one full interval before querying")
}

func TestPoll_ReadyShortCircuits(t *testing.T) {
	clock := &fakeClock{}
	p := newPoller(5*time.Second, 30, clock)

	calls := 0
	check := func(ctx context.Context) (poller.AssetStatus, error) {
		calls++
		if calls < 4 {
			return poller.AssetStatus{AssetID: "asset-1"}, nil
		}
		return poller.AssetStatus{
			AssetID:         "asset-1",
			Ready:           true,
			DurationSeconds: 93.5,
			PlaybackIDs:     []poller.PlaybackID{{ID: "pb-1", Policy: "public"}},
		}, nil
	}

	stamped := 0
	onReady := func(ctx context.Context, status poller.AssetStatus, playback *poller.PlaybackID) error {
		stamped++
		assert.Equal(t, "asset-1", status.AssetID)
		require.NotNil(t, playback)
		assert.Equal(t, "pb-1", playback.ID)
		return nil
	}

	outcome, err := p.Poll(context.Background(), check, onReady)

	require.NoError(t, err)
	assert.True(t, outcome.Ready)
	assert.Equal(t, 4, outcome.Attempts)
	assert.Equal(t, 4, calls, "no further queries after the ready transition")
	assert.Equal(t, 1, stamped, "the record is written exactly once")
}

func TestPoll_QueryErrorFailsOpen(t *testing.T) {
	clock := &fakeClock{}
	p := newPoller(time.Second, 30, clock)

	calls := 0
	check := func(ctx context.Context) (poller.AssetStatus, error) {
		calls++
		if calls == 2 {
			return poller.AssetStatus{}, errors.New("upstream 503")
		}
		return poller.AssetStatus{}, nil
	}

	outcome, err := p.Poll(context.Background(), check, nil)

	require.NoError(t, err, "a failed status query must not fail the chain")
	assert.False(t, outcome.Ready)
	assert.False(t, outcome.Failed)
	assert.Equal(t, 2, outcome.Attempts)
	assert.Equal(t, 2, calls, "the chain stops on the first query error")
}

func TestPoll_ErroredAssetReportsFailure(t *testing.T) {
	clock := &fakeClock{}
	p := newPoller(time.Second, 30, clock)

	check := func(ctx context.Context) (poller.AssetStatus, error) {
		return poller.AssetStatus{AssetID: "asset-1", Errored: true}, nil
	}

	outcome, err := p.Poll(context.Background(), check, nil)

	require.NoError(t, err)
	assert.True(t, outcome.Failed)
	assert.False(t, outcome.Ready)
	assert.Equal(t, "asset-1", outcome.AssetID)
}

func TestPoll_CancellationStopsTheChain(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	clock := &fakeClock{cancel: cancel, cancelAfter: 2}
	p := newPoller(time.Second, 30, clock)

	calls := 0
	outcome, err := p.Poll(ctx, stillProcessing(&calls), nil)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls, "no query after the cancelled wait")
	assert.Equal(t, 1, outcome.Attempts)
}

func TestPoll_OnReadyErrorSurfaces(t *testing.T) {
	clock := &fakeClock{}
	p := newPoller(time.Second, 30, clock)

	check := func(ctx context.Context) (poller.AssetStatus, error) {
		return poller.AssetStatus{AssetID: "asset-1", Ready: true}, nil
	}
	onReady := func(ctx context.Context, status poller.AssetStatus, playback *poller.PlaybackID) error {
		return errors.New("row vanished")
	}

	outcome, err := p.Poll(context.Background(), check, onReady)

	require.Error(t, err)
	assert.True(t, outcome.Ready, "the asset itself is ready even when the stamp fails")
}

func TestChoosePlayback_PrefersPublic(t *testing.T) {
	ids := []poller.PlaybackID{
		{ID: "signed-1", Policy: "signed"},
		{ID: "public-1", Policy: "public"},
	}

	picked := poller.ChoosePlayback(ids)

	require.NotNil(t, picked)
	assert.Equal(t, "public-1", picked.ID)
}

func TestChoosePlayback_FallsBackToFirst(t *testing.T) {
	ids := []poller.PlaybackID{
		{ID: "signed-1", Policy: "signed"},
		{ID: "signed-2", Policy: "signed"},
	}

	picked := poller.ChoosePlayback(ids)

	require.NotNil(t, picked)
	assert.Equal(t, "signed-1", picked.ID)
}

func TestChoosePlayback_EmptyIsNil(t *testing.T) {
	assert.Nil(t, poller.ChoosePlayback(nil))
}
