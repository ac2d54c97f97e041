package board

import (
	"bufio"
	"fmt"
	"io"
)

// Renderer draws a single cell. It is called right after every change to
// a cell's shown or hint flag.
type Renderer interface {
	RenderCell(c *Cell)
}

type RendererFunc func(c *Cell)

func (f RendererFunc) RenderCell(c *Cell) { f(c) }

// Render writes the table body skeleton to w, one td per cell tagged with
// its position, then renders every cell.
func (b *Board) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "<tbody>")
	for _, row := range b.grid {
		fmt.Fprint(bw, "<tr>")
		for _, cell := range row {
			r, c := cell.coords.Row, cell.coords.Column
			fmt.Fprintf(bw,
				`<td class="cell inset-border" data-row-idx="%d" data-column-idx="%d" id="cell-%d-%d"></td>`,
				r, c, r, c,
			)
		}
		fmt.Fprint(bw, "</tr>")
	}
	fmt.Fprint(bw, "</tbody>")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("unable to write board markup: %w", err)
	}

	b.RenderCells()
	return nil
}

func (b *Board) RenderCells() {
	b.LoopThroughCells(func(c *Cell) {
		c.Render(b.renderer)
	})
}
