package board

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const DefaultHintDuration = 2500 * time.Millisecond

var (
	ValidSizes      = []int{8, 12, 16}
	ValidMineCounts = []int{12, 30, 64}
)

// Log is the default logger for boards created without [WithLogger].
var Log = logrus.New()

type Board struct {
	size         int
	hintDuration time.Duration
	grid         [][]*Cell
	minesPlaced  bool

	random    RandomSource
	scheduler Scheduler
	renderer  Renderer
	log       *logrus.Entry
}

type Option func(*Board) error

func WithHintDuration(d time.Duration) Option {
	return func(b *Board) error {
		if d < 0 {
			return &ArgumentError{Name: "hint duration", Value: d}
		}
		b.hintDuration = d
		return nil
	}
}

func WithRandom(src RandomSource) Option {
	return func(b *Board) error {
		b.random = src
		return nil
	}
}

func WithScheduler(s Scheduler) Option {
	return func(b *Board) error {
		b.scheduler = s
		return nil
	}
}

// WithRenderer sets the hook every cell render goes through. nil disables
// rendering.
func WithRenderer(r Renderer) Option {
	return func(b *Board) error {
		b.renderer = r
		return nil
	}
}

func WithLogger(log *logrus.Entry) Option {
	return func(b *Board) error {
		b.log = log
		return nil
	}
}

func New(size int, opts ...Option) (*Board, error) {
	if !slices.Contains(ValidSizes, size) {
		return nil, &ArgumentError{Name: "board size", Value: size}
	}

	b := &Board{
		size:         size,
		hintDuration: DefaultHintDuration,
		scheduler:    timeScheduler{},
		log:          logrus.NewEntry(Log),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	if b.random == nil {
		b.random = NewRandomSource(nil)
	}

	b.grid = make([][]*Cell, size)
	for row := range size {
		b.grid[row] = make([]*Cell, size)
		for column := range size {
			b.grid[row][column] = NewCell(row, column)
		}
	}

	return b, nil
}

func (b *Board) Size() int { return b.size }

func (b *Board) HintDuration() time.Duration { return b.hintDuration }

func (b *Board) InBounds(row, column int) bool {
	return 0 <= row && row < b.size && 0 <= column && column < b.size
}

// At panics if the position is out of bounds.
func (b *Board) At(row, column int) *Cell {
	return b.grid[row][column]
}

func (b *Board) MinesPlaced() bool { return b.minesPlaced }

func (b *Board) Renderer() Renderer { return b.renderer }

func (b *Board) MineCount() (count int) {
	b.LoopThroughCells(func(c *Cell) {
		if c.mine {
			count++
		}
	})
	return
}

// LoopThroughCells calls fn for every cell in row-major order.
func (b *Board) LoopThroughCells(fn func(*Cell)) {
	for _, row := range b.grid {
		for _, cell := range row {
			fn(cell)
		}
	}
}

// Clone returns a deep copy sharing no cells with b. opts are applied on
// top of b's collaborators, so a clone can e.g. drop the renderer.
func (b *Board) Clone(opts ...Option) *Board {
	clone := &Board{
		size:         b.size,
		hintDuration: b.hintDuration,
		minesPlaced:  b.minesPlaced,
		random:       b.random,
		scheduler:    b.scheduler,
		renderer:     b.renderer,
		log:          b.log,
	}
	for _, opt := range opts {
		if err := opt(clone); err != nil {
			clone.log.WithError(err).Warn("ignoring invalid clone option")
		}
	}

	clone.grid = make([][]*Cell, b.size)
	for row := range b.grid {
		clone.grid[row] = make([]*Cell, b.size)
		for column, cell := range b.grid[row] {
			clone.grid[row][column] = cell.Clone()
		}
	}
	return clone
}

func (b *Board) String() string {
	var sb strings.Builder
	for _, row := range b.grid {
		for column, cell := range row {
			if column > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(cell.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// GoString dumps the hidden layout, used for debug logging only.
func (b *Board) GoString() string {
	var sb strings.Builder
	for _, row := range b.grid {
		for _, cell := range row {
			if cell.mine {
				fmt.Fprint(&sb, "* ")
			} else {
				fmt.Fprintf(&sb, "%d ", cell.surroundingMines)
			}
		}
		fmt.Fprint(&sb, "\n")
	}
	return sb.String()
}
