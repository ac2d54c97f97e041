package board

import (
	"io"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	Log.SetOutput(io.Discard)
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	os.Exit(m.Run())
}

// layMines reproduces the placement steps of SetRandomMines for a fixed
// layout, so tests can build boards mine by mine.
func layMines(t *testing.T, b *Board, mines ...Coords) {
	t.Helper()
	for _, c := range mines {
		require.True(t, b.InBounds(c.Row, c.Column), "mine %s out of bounds", c)
		b.grid[c.Row][c.Column].mine = true
	}
	for _, c := range mines {
		b.setSurroundingMinesCount(c.Row, c.Column)
	}
	b.minesPlaced = true
}

func fixedRandom(indices ...int) RandomSource {
	return RandomFunc(func(population, count int) []int {
		return indices
	})
}

type recorder struct {
	rendered []Coords
}

func (r *recorder) RenderCell(c *Cell) {
	r.rendered = append(r.rendered, c.Coords())
}

type manualTimer struct {
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

type manualScheduler struct {
	now     time.Duration
	pending []*manualTimer
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &manualTimer{at: s.now + d, f: f}
	s.pending = append(s.pending, t)
	return t
}

func (s *manualScheduler) Advance(d time.Duration) {
	s.now += d
	due := make([]*manualTimer, 0, len(s.pending))
	for _, t := range s.pending {
		if !t.fired && !t.stopped && t.at <= s.now {
			due = append(due, t)
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.fired = true
		t.f()
	}
}

func TestNew(t *testing.T) {
	for _, size := range ValidSizes {
		b, err := New(size)
		require.NoError(t, err)
		assert.Equal(t, size, b.Size())
		assert.Equal(t, DefaultHintDuration, b.HintDuration())
		require.Len(t, b.grid, size)
		for r, row := range b.grid {
			require.Len(t, row, size)
			for c, cell := range row {
				assert.Equal(t, Coords{r, c}, cell.Coords())
				assert.False(t, cell.IsMine())
				assert.False(t, cell.IsShown())
				assert.False(t, cell.IsHint())
				assert.Zero(t, cell.SurroundingMinesCount())
			}
		}
	}
}

func TestNewInvalidSize(t *testing.T) {
	for _, size := range []int{0, -8, 1, 7, 9, 10, 32} {
		b, err := New(size)
		assert.Nil(t, b)
		assert.ErrorIs(t, err, ErrInvalidArgument, "size %d", size)
	}
}

func TestNewHintDuration(t *testing.T) {
	b, err := New(8, WithHintDuration(0))
	require.NoError(t, err)
	assert.Zero(t, b.HintDuration())

	b, err = New(12, WithHintDuration(time.Second))
	require.NoError(t, err)
	assert.Equal(t, time.Second, b.HintDuration())

	_, err = New(8, WithHintDuration(-time.Millisecond))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestLoopThroughCellsOrder(t *testing.T) {
	b, err := New(8)
	require.NoError(t, err)

	var visited []Coords
	b.LoopThroughCells(func(c *Cell) {
		visited = append(visited, c.Coords())
	})

	require.Len(t, visited, 64)
	for i, c := range visited {
		assert.Equal(t, Coords{i / 8, i % 8}, c)
	}
}

func TestCloneIndependence(t *testing.T) {
	b, err := New(8, WithHintDuration(time.Second))
	require.NoError(t, err)
	layMines(t, b, Coords{0, 0}, Coords{3, 3})
	b.At(5, 5).SetState(Shown(true))
	b.At(6, 6).SetState(Shown(true), Hint(true))

	clone := b.Clone()
	assert.Equal(t, b.Size(), clone.Size())
	assert.Equal(t, b.HintDuration(), clone.HintDuration())
	assert.True(t, clone.MinesPlaced())

	b.LoopThroughCells(func(c *Cell) {
		cc := clone.At(c.coords.Row, c.coords.Column)
		assert.NotSame(t, c, cc)
		assert.Equal(t, *c, *cc)
	})

	clone.At(1, 1).SetState(Shown(true))
	clone.At(0, 1).IncrementSurroundingMinesCount()
	assert.False(t, b.At(1, 1).IsShown())
	assert.Equal(t, 1, b.At(0, 1).SurroundingMinesCount())

	b.At(7, 7).SetState(Shown(true), Hint(true))
	assert.False(t, clone.At(7, 7).IsShown())
	assert.False(t, clone.At(7, 7).IsHint())
}

func TestCloneOverridesRenderer(t *testing.T) {
	rec := &recorder{}
	b, err := New(8, WithRenderer(rec))
	require.NoError(t, err)

	clone := b.Clone(WithRenderer(nil))
	clone.RenderCells()
	assert.Empty(t, rec.rendered)

	b.Clone().RenderCells()
	assert.Len(t, rec.rendered, 64)
}

func TestString(t *testing.T) {
	b, err := New(8)
	require.NoError(t, err)
	layMines(t, b, Coords{0, 0})
	b.At(0, 0).SetState(Shown(true))
	b.At(0, 1).SetState(Shown(true))
	b.At(0, 2).SetState(Shown(true))

	lines := b.String()
	assert.Equal(t, "* 1 0 . . . . .\n", lines[:16])
}
