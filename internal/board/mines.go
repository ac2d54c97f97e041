package board

import (
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"slices"

	"github.com/sirupsen/logrus"
)

// RandomSource draws count distinct integers from [0, population).
type RandomSource interface {
	UniqueRandomNumbers(population, count int) []int
}

type RandomFunc func(population, count int) []int

func (f RandomFunc) UniqueRandomNumbers(population, count int) []int {
	return f(population, count)
}

type randSource struct {
	r *rand.Rand
}

// NewRandomSource wraps r. A nil r is replaced by a PCG generator seeded
// from the runtime hash seed.
func NewRandomSource(r *rand.Rand) RandomSource {
	if r == nil {
		r = rand.New(rand.NewPCG(
			new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
		))
	}
	return randSource{r}
}

func (s randSource) UniqueRandomNumbers(population, count int) []int {
	count = min(max(count, 0), population)
	candidates := make([]int, population)
	for i := range candidates {
		candidates[i] = i
	}

	/*
	 * Pick count off the list at random, moving the tail into the
	 * hole every time.
	 */
	picked := make([]int, 0, count)
	k := population
	for range count {
		i := s.r.IntN(k)
		picked = append(picked, candidates[i])
		k--
		candidates[i] = candidates[k]
	}
	return picked
}

// SetRandomMines places count mines and computes every other cell's
// surrounding mine count. It may only be called once per board.
func (b *Board) SetRandomMines(count int) error {
	if !slices.Contains(ValidMineCounts, count) {
		return &ArgumentError{Name: "mines count", Value: count}
	}
	if b.minesPlaced {
		return ErrMinesPlaced
	}

	population := b.size * b.size
	indices := b.random.UniqueRandomNumbers(population, count)
	if err := checkUnique(indices, population, count); err != nil {
		return err
	}

	coords := make([]Coords, len(indices))
	for i, index := range indices {
		coords[i] = Coords{Row: index / b.size, Column: index % b.size}
	}

	// all mines go down before any count is touched
	for _, c := range coords {
		b.grid[c.Row][c.Column].mine = true
	}
	for _, c := range coords {
		b.setSurroundingMinesCount(c.Row, c.Column)
	}
	b.minesPlaced = true

	b.log.WithFields(logrus.Fields{
		"size":  b.size,
		"mines": count,
	}).Debug("mines placed")
	return nil
}

func (b *Board) setSurroundingMinesCount(row, column int) {
	for _, cell := range b.GetSurroundingCells(row, column, Neighborhood{}) {
		if cell.mine {
			continue
		}
		cell.IncrementSurroundingMinesCount()
	}
}

func checkUnique(indices []int, population, count int) error {
	if len(indices) != count {
		return fmt.Errorf("%w: want %d numbers, got %d", ErrBadRandom, count, len(indices))
	}
	seen := make(map[int]struct{}, count)
	for _, i := range indices {
		if i < 0 || i >= population {
			return fmt.Errorf("%w: %d out of [0, %d)", ErrBadRandom, i, population)
		}
		if _, ok := seen[i]; ok {
			return fmt.Errorf("%w: %d drawn twice", ErrBadRandom, i)
		}
		seen[i] = struct{}{}
	}
	return nil
}
