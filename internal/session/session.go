// Package session keeps live boards in memory. Nothing here is safe for
// concurrent use: every call is expected to come from the event loop.
package session

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/hintsweeper/internal/board"
)

var (
	ErrOutOfBounds   = errors.New("cell position out of bounds")
	ErrNothingToUndo = errors.New("nothing to undo")
)

type Session struct {
	ID        string
	StartedAt time.Time

	board       *board.Board
	history     []*board.Board
	undoDepth   int
	subscribers map[*Subscriber]struct{}
	log         *logrus.Entry

	idle    board.Timer
	idleGen uint64
}

func (s *Session) Board() *board.Board { return s.board }

func (s *Session) checkBounds(row, column int) error {
	if !s.board.InBounds(row, column) {
		return ErrOutOfBounds
	}
	return nil
}

func (s *Session) remember() {
	if s.undoDepth == 0 {
		return
	}
	if len(s.history) == s.undoDepth {
		s.history = s.history[1:]
	}
	s.history = append(s.history, s.board.Clone())
}

// Open permanently shows the cell and flood-reveals from it.
func (s *Session) Open(row, column int) error {
	if err := s.checkBounds(row, column); err != nil {
		return err
	}
	s.remember()
	open(s.board, row, column)
	return nil
}

func open(b *board.Board, row, column int) {
	cell := b.At(row, column)
	cell.SetState(board.Shown(true), board.Hint(false))
	cell.Render(b.Renderer())
	b.RevealSurroundingTargetCells(row, column)
}

func (s *Session) Hint(row, column int) error {
	if err := s.checkBounds(row, column); err != nil {
		return err
	}
	s.board.HandleHintCellClick(row, column)
	return nil
}

// Undo restores the board as it was before the last Open and re-renders
// every cell. Hint timers belong to the discarded board, so the restored
// one drops its hint overlay right away.
func (s *Session) Undo() error {
	if len(s.history) == 0 {
		return ErrNothingToUndo
	}
	last := len(s.history) - 1
	s.board, s.history = s.history[last], s.history[:last]
	s.board.LoopThroughCells(func(c *board.Cell) {
		if c.IsHint() {
			c.SetState(board.Shown(false), board.Hint(false))
		}
	})
	s.board.RenderCells()
	s.log.WithField("undo_left", len(s.history)).Debug("board restored")
	return nil
}

// Preview shows what Open would reveal without touching the live board.
func (s *Session) Preview(row, column int) (*BoardView, error) {
	if err := s.checkBounds(row, column); err != nil {
		return nil, err
	}
	preview := s.board.Clone(board.WithRenderer(nil))
	open(preview, row, column)
	return viewOfBoard(s.ID, preview, len(s.history), s.StartedAt), nil
}

func (s *Session) View() *BoardView {
	return viewOfBoard(s.ID, s.board, len(s.history), s.StartedAt)
}

// RenderCell implements [board.Renderer]. Cells of boards other than the
// live one (discarded by Undo) are ignored.
func (s *Session) RenderCell(c *board.Cell) {
	coords := c.Coords()
	if s.board == nil || s.board.At(coords.Row, coords.Column) != c {
		return
	}
	s.broadcast(ViewOf(c))
}

