// Package eventloop provides a single-goroutine FIFO executor for wsclient.
package eventloop

import (
	"context"
	"sync"

	"github.com/vovakirdan/wsclient-go/wsclient"
)

type Error uint8

const (
	ErrStopped Error = iota
	ErrRunning
)

func (e Error) Error() string {
	switch e {
	case ErrStopped:
		return "event loop is stopped"
	case ErrRunning:
		return "event loop is already running"
	default:
		return "unknown error"
	}
}

// Loop runs tasks one at a time, in enqueue order, on the goroutine that
// calls Run. The queue is unbounded so workers never block on Enqueue.
type Loop struct {
	mu      sync.Mutex
	tasks   []wsclient.Task
	wake    chan struct{}
	stopped bool
	running bool
}

func New() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Enqueue implements wsclient.Executor. It is safe to call from any
// goroutine, including from a running task.
func (l *Loop) Enqueue(t wsclient.Task) error {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return ErrStopped
	}
	l.tasks = append(l.tasks, t)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

// Post enqueues a plain function.
func (l *Loop) Post(fn func()) error {
	return l.Enqueue(wsclient.TaskFunc(fn))
}

// Len returns the number of tasks waiting to run.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

// Stop makes Run return after the task in progress. Queued tasks are
// discarded and further Enqueue calls fail with ErrStopped.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	l.stopped = true
	l.tasks = nil
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run executes tasks until ctx is done or Stop is called. It returns nil
// after Stop and ctx.Err() on cancellation.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return ErrRunning
	}
	l.running = true
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		t, stopped := l.next()
		if stopped {
			return nil
		}
		if t != nil {
			t.Run()
			continue
		}
		select {
		case <-l.wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (l *Loop) next() (wsclient.Task, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return nil, true
	}
	if len(l.tasks) == 0 {
		return nil, false
	}
	t := l.tasks[0]
	l.tasks[0] = nil
	l.tasks = l.tasks[1:]
	return t, false
}
