package board

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countMineNeighbors(b *Board, row, column int) (n int) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if b.InBounds(row+dr, column+dc) && b.At(row+dr, column+dc).IsMine() {
				n++
			}
		}
	}
	return
}

func TestSetRandomMines(t *testing.T) {
	t.Parallel()

	for _, size := range ValidSizes {
		for _, mines := range ValidMineCounts {
			if mines > size*size {
				continue
			}
			r := rand.New(rand.NewPCG(uint64(size), uint64(mines)))
			b, err := New(size, WithRandom(NewRandomSource(r)))
			require.NoError(t, err)

			require.NoError(t, b.SetRandomMines(mines))
			assert.Equal(t, mines, b.MineCount(), "%dx%d(%d)", size, size, mines)

			b.LoopThroughCells(func(c *Cell) {
				if c.IsMine() {
					return
				}
				assert.Equal(t,
					countMineNeighbors(b, c.coords.Row, c.coords.Column),
					c.SurroundingMinesCount(),
					"cell %s", c.Coords(),
				)
			})
		}
	}
}

func TestSetRandomMinesInvalidCount(t *testing.T) {
	b, err := New(8)
	require.NoError(t, err)

	for _, count := range []int{-1, 0, 1, 10, 13, 65} {
		assert.ErrorIs(t, b.SetRandomMines(count), ErrInvalidArgument, "count %d", count)
	}
	assert.Zero(t, b.MineCount())
	assert.False(t, b.MinesPlaced())
}

func TestSetRandomMinesTwice(t *testing.T) {
	b, err := New(8)
	require.NoError(t, err)
	require.NoError(t, b.SetRandomMines(12))

	assert.ErrorIs(t, b.SetRandomMines(12), ErrMinesPlaced)
	assert.Equal(t, 12, b.MineCount())
}

func TestSetRandomMinesFirstIndex(t *testing.T) {
	indices := []int{0, 63, 62, 61, 60, 59, 58, 57, 56, 55, 54, 53}
	b, err := New(8, WithRandom(fixedRandom(indices...)))
	require.NoError(t, err)
	require.NoError(t, b.SetRandomMines(12))

	assert.True(t, b.At(0, 0).IsMine())
	assert.Equal(t, 1, b.At(0, 1).SurroundingMinesCount())
	assert.Equal(t, 1, b.At(1, 0).SurroundingMinesCount())
	assert.Equal(t, 1, b.At(1, 1).SurroundingMinesCount())
	assert.Zero(t, b.At(0, 0).SurroundingMinesCount())

	// 63 -> (7, 7), 56 -> (7, 0)
	assert.True(t, b.At(7, 7).IsMine())
	assert.True(t, b.At(7, 0).IsMine())
}

func TestSetRandomMinesBadRandom(t *testing.T) {
	tests := []struct {
		name    string
		indices []int
	}{
		{"short", []int{0, 1, 2}},
		{"duplicate", []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 10}},
		{"out of range", []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 64}},
		{"negative", []int{-1, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b, err := New(8, WithRandom(fixedRandom(test.indices...)))
			require.NoError(t, err)

			assert.ErrorIs(t, b.SetRandomMines(12), ErrBadRandom)
			assert.Zero(t, b.MineCount())
			assert.False(t, b.MinesPlaced())
		})
	}
}

func TestFullBoardOfMines(t *testing.T) {
	b, err := New(8)
	require.NoError(t, err)
	require.NoError(t, b.SetRandomMines(64))

	b.LoopThroughCells(func(c *Cell) {
		assert.True(t, c.IsMine())
		assert.Zero(t, c.SurroundingMinesCount())
	})
}

func TestUniqueRandomNumbers(t *testing.T) {
	src := NewRandomSource(rand.New(rand.NewPCG(1, 2)))
	for _, test := range []struct{ population, count int }{
		{64, 12}, {144, 30}, {256, 64}, {64, 64}, {10, 0},
	} {
		got := src.UniqueRandomNumbers(test.population, test.count)
		require.Len(t, got, test.count)
		assert.NoError(t, checkUnique(got, test.population, test.count))
	}
}
