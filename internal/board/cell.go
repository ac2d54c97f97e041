package board

import "strconv"

type Coords struct {
	Row, Column int
}

func (c Coords) String() string {
	return strconv.Itoa(c.Row) + ":" + strconv.Itoa(c.Column)
}

// Cell is a single square of the board. Coordinates never change after
// construction; mine and surroundingMines are fixed by mine placement.
type Cell struct {
	coords           Coords
	mine             bool
	surroundingMines int
	shown            bool
	hint             bool
}

func NewCell(row, column int) *Cell {
	return &Cell{coords: Coords{Row: row, Column: column}}
}

func (c *Cell) Coords() Coords { return c.coords }

func (c *Cell) IsMine() bool { return c.mine }

func (c *Cell) SurroundingMinesCount() int { return c.surroundingMines }

func (c *Cell) IsShown() bool { return c.shown }

// IsHint reports whether the cell is shown only because of a pending hint.
func (c *Cell) IsHint() bool { return c.hint }

func (c *Cell) IncrementSurroundingMinesCount() {
	c.surroundingMines++
}

type StateOption func(*Cell)

func Shown(v bool) StateOption {
	return func(c *Cell) { c.shown = v }
}

func Hint(v bool) StateOption {
	return func(c *Cell) { c.hint = v }
}

// SetState merges the given fields into the cell, leaving the rest as is.
func (c *Cell) SetState(opts ...StateOption) {
	for _, opt := range opts {
		opt(c)
	}
}

// Render hands the cell to r. A nil renderer is a no-op.
func (c *Cell) Render(r Renderer) {
	if r == nil {
		return
	}
	r.RenderCell(c)
}

func (c *Cell) Clone() *Cell {
	clone := *c
	return &clone
}

// String matches the board's text dump: "." hidden, "*" mine, digit count.
func (c *Cell) String() string {
	switch {
	case !c.shown:
		return "."
	case c.mine:
		return "*"
	default:
		return strconv.Itoa(c.surroundingMines)
	}
}
