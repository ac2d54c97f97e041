package board

import (
	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"
)

type revealFrame struct {
	cells []*Cell
	next  int
}

// RevealSurroundingTargetCells flood-fills shown cells outward from a blank
// target through its orthogonal neighbours. Numbered cells are shown but not
// expanded; mines are never touched. The caller is expected to have shown
// the target itself. Panics if the target is out of bounds.
func (b *Board) RevealSurroundingTargetCells(row, column int) {
	var (
		stack    deque.Deque[*revealFrame]
		revealed int
	)

	expand := func(cell *Cell) {
		if cell.surroundingMines != 0 || cell.mine {
			return
		}
		stack.PushBack(&revealFrame{
			cells: b.GetSurroundingCells(
				cell.coords.Row, cell.coords.Column,
				Neighborhood{ExcludeDiagonalCells: true},
			),
		})
	}

	expand(b.grid[row][column])

	/*
	 * The stack holds one frame per pending expansion. Only the top frame
	 * advances, so cells are shown and rendered in exactly the order a
	 * recursive walk would produce.
	 */
	for stack.Len() > 0 {
		frame := stack.Back()
		if frame.next == len(frame.cells) {
			stack.PopBack()
			continue
		}
		cell := frame.cells[frame.next]
		frame.next++

		recurse := cell.surroundingMines == 0 && !cell.shown
		if cell.mine {
			continue
		}
		cell.SetState(Shown(true))
		cell.Render(b.renderer)
		revealed++
		if recurse {
			expand(cell)
		}
	}

	if revealed > 0 {
		b.log.WithFields(logrus.Fields{
			"target":   Coords{row, column},
			"revealed": revealed,
		}).Debug("flood reveal")
	}
}
