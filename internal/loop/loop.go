// Package loop runs every board mutation on a single goroutine, the same
// way a UI event loop would.
package loop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/hintsweeper/internal/board"
)

var ErrStopped = errors.New("loop stopped")

type Loop struct {
	tasks chan func()
	done  chan struct{}
	log   *logrus.Entry
}

func New(log *logrus.Entry, backlog int) *Loop {
	return &Loop{
		tasks: make(chan func(), backlog),
		done:  make(chan struct{}),
		log:   log,
	}
}

// Run executes posted tasks in order until ctx is cancelled. Tasks still
// queued at that point are dropped.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	l.log.Debug("event loop started")
	for {
		select {
		case <-ctx.Done():
			l.log.WithField("dropped", len(l.tasks)).Debug("event loop stopped")
			return nil
		case task := <-l.tasks:
			l.run(task)
		}
	}
}

func (l *Loop) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.WithField("panic", r).Error("task panicked")
		}
	}()
	task()
}

// Post queues f and returns false if the loop has stopped.
func (l *Loop) Post(f func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- f:
		return true
	case <-l.done:
		return false
	}
}

// Do runs f on the loop and waits for it to return. A panic inside f is
// reported as an error. If ctx is done by the time the task comes up, f
// is skipped and ctx.Err() returned. Once queued, Do always waits for the
// task, so f never runs after Do has returned.
func (l *Loop) Do(ctx context.Context, f func()) error {
	result := make(chan error, 1)
	task := func() {
		defer func() {
			if r := recover(); r != nil {
				result <- fmt.Errorf("task panicked: %v", r)
			}
		}()
		if err := ctx.Err(); err != nil {
			result <- err
			return
		}
		f()
		result <- nil
	}

	select {
	case l.tasks <- task:
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-result:
		return err
	case <-l.done:
		// Run closes done only after its last task has returned.
		select {
		case err := <-result:
			return err
		default:
			return ErrStopped
		}
	}
}

type timer struct {
	*time.Timer
}

// AfterFunc implements [board.Scheduler]: f is posted onto the loop when
// the timer fires.
func (l *Loop) AfterFunc(d time.Duration, f func()) board.Timer {
	return timer{time.AfterFunc(d, func() {
		if !l.Post(f) {
			l.log.Debug("dropping timer task on stopped loop")
		}
	})}
}
