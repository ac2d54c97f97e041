package board

import (
	"time"

	"github.com/sirupsen/logrus"
)

type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. Implementations decide on which goroutine
// f runs; a board must only ever be touched from one.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type SchedulerFunc func(d time.Duration, f func()) Timer

func (fn SchedulerFunc) AfterFunc(d time.Duration, f func()) Timer {
	return fn(d, f)
}

// timeScheduler fires on a timer goroutine. Boards using it must be
// guarded by the caller.
type timeScheduler struct{}

func (timeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// HandleHintCellClick shows the 3x3 block around the target for the
// board's hint duration. Only cells that were hidden are flagged as hints,
// and only cells still flagged when the timer fires are hidden again.
// Overlapping hints each keep their own timer.
func (b *Board) HandleHintCellClick(row, column int) Timer {
	hinted := b.GetSurroundingCells(row, column, Neighborhood{})

	for _, cell := range hinted {
		if cell.shown {
			continue
		}
		cell.SetState(Shown(true), Hint(true))
		cell.Render(b.renderer)
	}

	target := Coords{row, column}
	b.log.WithFields(logrus.Fields{
		"target":   target,
		"duration": b.hintDuration,
	}).Debug("hint shown")

	return b.scheduler.AfterFunc(b.hintDuration, func() {
		b.hideHint(hinted)
		b.log.WithField("target", target).Debug("hint expired")
	})
}

func (b *Board) hideHint(hinted []*Cell) {
	for _, cell := range hinted {
		if !cell.hint {
			continue
		}
		cell.SetState(Shown(false), Hint(false))
		cell.Render(b.renderer)
	}
}
