package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSnapshotter struct {
	calls atomic.Int32
	err   error
}

func (f *fakeSnapshotter) SnapshotActive(ctx context.Context) (int, error) {
	f.calls.Add(1)
	return 2, f.err
}

type fakeObserver struct {
	stale atomic.Int32
	fails atomic.Int32
}

func (f *fakeObserver) SnapshotDone(stale int, err error) {
	f.stale.Add(int32(stale))
	if err != nil {
		f.fails.Add(1)
	}
}

func TestNewScheduler_RejectsNonPositiveInterval(t *testing.T) {
	_, err := NewScheduler(&fakeSnapshotter{}, nil, 0, zap.NewNop())
	assert.Error(t, err)
}

func TestScheduler_RunsSnapshots(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantFails bool
	}{
		{name: "success"},
		{name: "failure", err: errors.New("db down"), wantFails: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := &fakeSnapshotter{err: tt.err}
			obs := &fakeObserver{}

			s, err := NewScheduler(snap, obs, 20*time.Millisecond, zap.NewNop())
			require.NoError(t, err)
			require.NoError(t, s.Start())
			t.Cleanup(func() { _ = s.Stop() })

			require.Eventually(t, func() bool { return snap.calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
			require.Eventually(t, func() bool { return obs.stale.Load() >= 4 }, 2*time.Second, 10*time.Millisecond)
			assert.Equal(t, tt.wantFails, obs.fails.Load() > 0)
		})
	}
}
