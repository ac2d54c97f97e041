package session

import (
	"time"

	"github.com/vancomm/hintsweeper/internal/board"
)

// CellView is what a client may know about a cell: mine and count stay
// hidden until the cell is shown.
type CellView struct {
	Row              int   `json:"row"`
	Column           int   `json:"column"`
	Shown            bool  `json:"shown"`
	Hint             bool  `json:"hint"`
	Mine             *bool `json:"mine,omitempty"`
	SurroundingMines *int  `json:"surrounding_mines,omitempty"`
}

func ViewOf(c *board.Cell) CellView {
	coords := c.Coords()
	v := CellView{
		Row:    coords.Row,
		Column: coords.Column,
		Shown:  c.IsShown(),
		Hint:   c.IsHint(),
	}
	if c.IsShown() {
		mine, count := c.IsMine(), c.SurroundingMinesCount()
		v.Mine = &mine
		v.SurroundingMines = &count
	}
	return v
}

type BoardView struct {
	ID           string     `json:"board_id"`
	Size         int        `json:"size"`
	MineCount    int        `json:"mine_count"`
	HintDuration int64      `json:"hint_duration"`
	UndoDepth    int        `json:"undo_depth"`
	StartedAt    int64      `json:"started_at"`
	Cells        []CellView `json:"cells"`
}

func viewOfBoard(id string, b *board.Board, undo int, startedAt time.Time) *BoardView {
	v := &BoardView{
		ID:           id,
		Size:         b.Size(),
		MineCount:    b.MineCount(),
		HintDuration: b.HintDuration().Milliseconds(),
		UndoDepth:    undo,
		StartedAt:    startedAt.UnixMilli(),
		Cells:        make([]CellView, 0, b.Size()*b.Size()),
	}
	b.LoopThroughCells(func(c *board.Cell) {
		v.Cells = append(v.Cells, ViewOf(c))
	})
	return v
}
