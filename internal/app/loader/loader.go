// Package loader fetches a whole collection and holds the latest result.
//
// Every Load starts a new generation and cancels the previous in-flight
// fetch. A response that arrives after a newer Load started, or after the
// loader was closed, is discarded and never replaces the held list.
package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/yigit/portaladmin/internal/pkg/apperrors"
)

var (
	// ErrSuperseded is returned by a Load whose result was discarded
	// because a newer Load started.
	ErrSuperseded = errors.New("load superseded by a newer request")
	// ErrClosed is returned once the loader has been closed.
	ErrClosed = errors.New("loader closed")
)

// FetchFunc reads the full collection.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Snapshot is the loader state at one point in time.
type Snapshot[T any] struct {
	Items      []T
	Loaded     bool
	Loading    bool
	Err        error
	Generation uint64
	LoadedAt   time.Time
}

// Option configures a Loader
type Option func(*options)

type options struct {
	timeout time.Duration
	now     func() time.Time
}

// WithTimeout bounds each fetch.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithClock replaces time.Now for LoadedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Loader holds the most recent successful result of fetch.
type Loader[T any] struct {
	fetch FetchFunc[T]
	opts  options

	lifetime context.Context
	close    context.CancelFunc

	mu       sync.Mutex
	gen      uint64
	inflight context.CancelFunc
	items    []T
	loaded   bool
	loading  bool
	err      error
	loadedAt time.Time
	closed   bool
}

// New creates a Loader. Nothing is fetched until Load is called.
func New[T any](fetch FetchFunc[T], opts ...Option) *Loader[T] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	lifetime, cancel := context.WithCancel(context.Background())
	return &Loader[T]{fetch: fetch, opts: o, lifetime: lifetime, close: cancel}
}

// Load refetches the collection and replaces the held list wholesale. On
// failure the held list is cleared and the error, wrapping
// apperrors.ErrLoadFailed, is kept for Snapshot.
func (l *Loader[T]) Load(ctx context.Context) ([]T, error) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil, ErrClosed
	}
	if l.inflight != nil {
		l.inflight()
	}
	l.gen++
	gen := l.gen

	fetchCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(l.lifetime, cancel)
	if l.opts.timeout > 0 {
		var cancelTimeout context.CancelFunc
		fetchCtx, cancelTimeout = context.WithTimeout(fetchCtx, l.opts.timeout)
		parent := cancel
		cancel = func() {
			cancelTimeout()
			parent()
		}
	}
	l.inflight = cancel
	l.loading = true
	l.mu.Unlock()

	items, err := l.fetch(fetchCtx)
	stop()
	cancel()

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, ErrClosed
	}
	if gen != l.gen {
		return nil, ErrSuperseded
	}

	l.inflight = nil
	l.loading = false
	if err != nil {
		if !errors.Is(err, apperrors.ErrLoadFailed) {
			err = fmt.Errorf("%w: %w", apperrors.ErrLoadFailed, err)
		}
		l.items = nil
		l.loaded = false
		l.err = err
		return nil, err
	}

	if items == nil {
		items = []T{}
	}
	l.items = items
	l.loaded = true
	l.err = nil
	l.loadedAt = l.opts.now()
	return l.copyItems(), nil
}

// Snapshot returns a copy of the current state.
func (l *Loader[T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Snapshot[T]{
		Items:      l.copyItems(),
		Loaded:     l.loaded,
		Loading:    l.loading,
		Err:        l.err,
		Generation: l.gen,
		LoadedAt:   l.loadedAt,
	}
}

// Close cancels any in-flight fetch and discards its result. It is safe to
// call more than once.
func (l *Loader[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	l.loading = false
	l.close()
}

func (l *Loader[T]) copyItems() []T {
	if l.items == nil {
		return nil
	}
	return append(make([]T, 0, len(l.items)), l.items...)
}
