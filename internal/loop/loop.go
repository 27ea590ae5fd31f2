// Package loop is the editor's single UI thread. All state mutation happens in
// functions run by the loop; backend requests run on their own goroutines and
// post their completion back to it. A request, once issued, runs to completion
// or failure and is never cancelled by later events.
package loop

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Loop is a cooperative, single-consumer work queue.
type Loop struct {
	mu    sync.Mutex
	queue []func()
	ready chan struct{}

	// pending counts queued functions plus requests whose completion has
	// not been queued yet.
	pending atomic.Int64
	logger  *slog.Logger
}

// New returns an idle loop.
func New(logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{ready: make(chan struct{}, 1), logger: logger}
}

// Post queues fn to run on the loop. Safe from any goroutine.
func (l *Loop) Post(fn func()) {
	l.pending.Add(1)
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
	select {
	case l.ready <- struct{}{}:
	default:
	}
}

// Pending reports queued work plus in-flight requests.
func (l *Loop) Pending() int { return int(l.pending.Load()) }

// RunQueued runs everything queued so far, including work queued by the
// functions it runs.
func (l *Loop) RunQueued() {
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return
		}
		fn := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		l.run(fn)
	}
}

func (l *Loop) run(fn func()) {
	defer l.pending.Add(-1)
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("loop: handler panicked", "panic", r)
		}
	}()
	fn()
}

// Drain runs queued work and waits for in-flight requests until the loop is
// quiescent.
func (l *Loop) Drain() {
	for l.pending.Load() > 0 {
		l.RunQueued()
		if l.pending.Load() == 0 {
			return
		}
		<-l.ready
	}
}

// Go issues call on its own goroutine and posts done, with its result, back
// to the loop.
func Go[T any](l *Loop, ctx context.Context, call func(context.Context) (T, error), done func(T, error)) {
	l.pending.Add(1)
	go func() {
		defer l.pending.Add(-1)
		v, err := call(ctx)
		l.Post(func() { done(v, err) })
	}()
}

// Do is Go for calls that return only an error.
func Do(l *Loop, ctx context.Context, call func(context.Context) error, done func(error)) {
	Go(l, ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, call(ctx)
	}, func(_ struct{}, err error) {
		done(err)
	})
}
