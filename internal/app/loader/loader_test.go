package loader

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/portaladmin/internal/pkg/apperrors"
)

func TestLoadReplacesWholesale(t *testing.T) {
	calls := 0
	l := New[string](func(ctx context.Context) ([]string, error) {
		calls++
		if calls == 1 {
			return []string{"a", "b"}, nil
		}
		return []string{"c"}, nil
	})

	items, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, items)

	items, err = l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, items)

	snap := l.Snapshot()
	assert.Equal(t, []string{"c"}, snap.Items)
	assert.True(t, snap.Loaded)
	assert.False(t, snap.Loading)
	assert.EqualValues(t, 2, snap.Generation)
}

func TestLoadFailureClearsItems(t *testing.T) {
	fail := false
	l := New[int](func(ctx context.Context) ([]int, error) {
		if fail {
			return nil, errors.New("connection reset")
		}
		return []int{1}, nil
	})

	_, err := l.Load(context.Background())
	require.NoError(t, err)

	fail = true
	_, err = l.Load(context.Background())
	require.ErrorIs(t, err, apperrors.ErrLoadFailed)

	snap := l.Snapshot()
	assert.Nil(t, snap.Items)
	assert.False(t, snap.Loaded)
	assert.ErrorIs(t, snap.Err, apperrors.ErrLoadFailed)

	fail = false
	_, err = l.Load(context.Background())
	require.NoError(t, err)
	assert.NoError(t, l.Snapshot().Err)
}

func TestEmptyResultIsLoaded(t *testing.T) {
	l := New[int](func(ctx context.Context) ([]int, error) { return nil, nil })
	items, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.True(t, l.Snapshot().Loaded)
}

func TestSupersededResponseIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var calls atomic.Int32

	l := New[string](func(ctx context.Context) ([]string, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			// ignores cancellation on purpose: a slow store answering late
			return []string{"stale"}, nil
		}
		return []string{"fresh"}, nil
	})

	errc := make(chan error, 1)
	go func() {
		_, err := l.Load(context.Background())
		errc <- err
	}()
	<-started

	items, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, items)

	close(release)
	assert.ErrorIs(t, <-errc, ErrSuperseded)
	assert.Equal(t, []string{"fresh"}, l.Snapshot().Items)
}

func TestSupersededFetchIsCancelled(t *testing.T) {
	started := make(chan struct{})
	var calls atomic.Int32
	l := New[int](func(ctx context.Context) ([]int, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return []int{2}, nil
	})

	errc := make(chan error, 1)
	go func() {
		_, err := l.Load(context.Background())
		errc <- err
	}()
	<-started

	_, err := l.Load(context.Background())
	require.NoError(t, err)

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("first fetch was not cancelled")
	}
	assert.Equal(t, []int{2}, l.Snapshot().Items)
}

func TestCloseCancelsInFlight(t *testing.T) {
	started := make(chan struct{})
	l := New[int](func(ctx context.Context) ([]int, error) {
		close(started)
		<-ctx.Done()
		return []int{1}, nil
	})

	errc := make(chan error, 1)
	go func() {
		_, err := l.Load(context.Background())
		errc <- err
	}()
	<-started
	l.Close()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("close did not cancel the fetch")
	}

	_, err := l.Load(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	assert.Nil(t, l.Snapshot().Items)
	l.Close()
}

func TestTimeout(t *testing.T) {
	l := New[int](func(ctx context.Context) ([]int, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}, WithTimeout(10*time.Millisecond))

	_, err := l.Load(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrLoadFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSnapshotIsACopy(t *testing.T) {
	stamp := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	l := New[int](func(ctx context.Context) ([]int, error) { return []int{1, 2}, nil }, WithClock(func() time.Time { return stamp }))
	_, err := l.Load(context.Background())
	require.NoError(t, err)

	snap := l.Snapshot()
	snap.Items[0] = 99
	assert.Equal(t, []int{1, 2}, l.Snapshot().Items)
	assert.Equal(t, stamp, snap.LoadedAt)
}
