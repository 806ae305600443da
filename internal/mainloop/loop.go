// Package mainloop provides the single execution context on which all
// observer notifications and model mutations run.
package mainloop

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"

	"surveysync/internal/providers"
)

var ErrClosed = errors.New("main loop closed")

// Loop runs posted tasks one at a time, in the order they were posted.
// Post never blocks, so tasks may post follow-up tasks freely.
type Loop struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []func()
	closed  bool
	running bool
	done    chan struct{}
	logger  providers.Logger
}

func New(logger providers.Logger) *Loop {
	l := &Loop{
		done:   make(chan struct{}),
		logger: logger,
	}
	l.cond = sync.NewCond(&l.mu)
	return l
}

// Post enqueues fn. It reports false when the loop is already closed.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	l.queue = append(l.queue, fn)
	l.cond.Signal()
	return true
}

// Run executes tasks until the loop is closed or ctx is done. Tasks already
// queued at close time still run. Run may be called only once.
func (l *Loop) Run(ctx context.Context) {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return
	}
	l.running = true
	l.mu.Unlock()
	defer close(l.done)

	stop := context.AfterFunc(ctx, l.Close)
	defer stop()

	for {
		l.mu.Lock()
		for len(l.queue) == 0 && !l.closed {
			l.cond.Wait()
		}
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return
		}
		fn := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		l.execute(fn)
	}
}

func (l *Loop) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Errorf(providers.TypeApp, "main loop task panicked: %v\n%s", r, debug.Stack())
		}
	}()
	fn()
}

// Wait blocks until the queue is empty. Tasks posted by tasks that run in the
// meantime are waited for too. It must not be called from a task.
func (l *Loop) Wait(ctx context.Context) error {
	reached := make(chan struct{})
	var marker func()
	marker = func() {
		l.mu.Lock()
		pending := len(l.queue)
		l.mu.Unlock()
		if pending == 0 || !l.Post(marker) {
			close(reached)
		}
	}
	if !l.Post(marker) {
		return ErrClosed
	}
	select {
	case <-reached:
		return nil
	case <-l.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting tasks. Run returns once the queue is drained.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	l.cond.Broadcast()
}

// Done is closed when Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
