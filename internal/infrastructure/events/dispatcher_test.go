package events

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/biabrauna/econsciente-api/internal/infrastructure/logging"
)

type recordingObserver struct {
	mu       sync.Mutex
	statuses map[string]int
}

func (o *recordingObserver) TaskFinished(_ string, status string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.statuses == nil {
		o.statuses = map[string]int{}
	}
	o.statuses[status]++
}

func (o *recordingObserver) SetQueueDepth(int) {}

func (o *recordingObserver) count(status string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.statuses[status]
}

func newTestDispatcher(opts Options, obs TaskObserver) *Dispatcher {
	return NewDispatcher(opts, logging.NewNopLogger(), obs)
}

func TestDispatcher_RunsTasks(t *testing.T) {
	obs := &recordingObserver{}
	d := newTestDispatcher(Options{Workers: 4, QueueSize: 100, MaxAttempts: 1}, obs)

	var ran atomic.Int32
	for i := 0; i < 50; i++ {
		require.NoError(t, d.Enqueue("count", func(ctx context.Context) error {
			ran.Add(1)
			return nil
		}))
	}

	require.NoError(t, d.Close(context.Background()))
	require.Equal(t, int32(50), ran.Load())
	require.Equal(t, 50, obs.count("ok"))
}

func TestDispatcher_RetriesUntilSuccess(t *testing.T) {
	obs := &recordingObserver{}
	d := newTestDispatcher(Options{Workers: 1, QueueSize: 1, MaxAttempts: 3, Backoff: time.Millisecond}, obs)

	var attempts atomic.Int32
	require.NoError(t, d.Enqueue("flaky", func(ctx context.Context) error {
		if attempts.Add(1) < 3 {
			return errors.New("transient")
		}
		return nil
	}))

	require.NoError(t, d.Close(context.Background()))
	require.Equal(t, int32(3), attempts.Load())
	require.Equal(t, 2, obs.count("retry"))
	require.Equal(t, 1, obs.count("ok"))
}

func TestDispatcher_GivesUpAfterMaxAttempts(t *testing.T) {
	obs := &recordingObserver{}
	d := newTestDispatcher(Options{Workers: 1, QueueSize: 1, MaxAttempts: 2, Backoff: time.Millisecond}, obs)

	var attempts atomic.Int32
	require.NoError(t, d.Enqueue("broken", func(ctx context.Context) error {
		attempts.Add(1)
		return errors.New("permanent")
	}))

	require.NoError(t, d.Close(context.Background()))
	require.Equal(t, int32(2), attempts.Load())
	require.Equal(t, 1, obs.count("failed"))
}

func TestDispatcher_RecoversPanics(t *testing.T) {
	obs := &recordingObserver{}
	d := newTestDispatcher(Options{Workers: 1, QueueSize: 2, MaxAttempts: 1}, obs)

	var after atomic.Bool
	require.NoError(t, d.Enqueue("panics", func(ctx context.Context) error { panic("boom") }))
	require.NoError(t, d.Enqueue("after", func(ctx context.Context) error {
		after.Store(true)
		return nil
	}))

	require.NoError(t, d.Close(context.Background()))
	require.True(t, after.Load())
	require.Equal(t, 1, obs.count("failed"))
}

func TestDispatcher_Backpressure(t *testing.T) {
	d := newTestDispatcher(Options{Workers: 1, QueueSize: 1, MaxAttempts: 1}, nil)

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, d.Enqueue("blocker", func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	}))
	<-started

	require.NoError(t, d.Enqueue("queued", func(ctx context.Context) error { return nil }))
	err := d.Enqueue("overflow", func(ctx context.Context) error { return nil })
	require.ErrorIs(t, err, ErrQueueFull)

	close(release)
	require.NoError(t, d.Close(context.Background()))

	err = d.Enqueue("late", func(ctx context.Context) error { return nil })
	require.ErrorIs(t, err, ErrQueueClosed)
}
