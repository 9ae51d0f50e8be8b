package snake

import (
	"errors"
	"math/rand"
)

// ErrBoardFull is returned by food placement when every cell is occupied.
var ErrBoardFull = errors.New("snake: board full")

// FoodPlacer draws food cells uniformly from the board.
type FoodPlacer struct {
	board Board
	rng   *rand.Rand
}

// NewFoodPlacer creates a placer for board using rng as its randomness source.
func NewFoodPlacer(board Board, rng *rand.Rand) *FoodPlacer {
	return &FoodPlacer{board: board, rng: rng}
}

// Place returns a random cell that is not in excluding.
// Resamples until a free cell is drawn; ErrBoardFull when none exists.
func (p *FoodPlacer) Place(excluding map[Cell]struct{}) (Cell, error) {
	free := p.board.Cells()
	for c := range excluding {
		if p.board.InBounds(c) {
			free--
		}
	}
	if free <= 0 {
		return Cell{}, ErrBoardFull
	}

	n := p.board.Columns()
	for {
		c := p.board.CellAt(p.rng.Intn(n), p.rng.Intn(n))
		if _, taken := excluding[c]; !taken {
			return c, nil
		}
	}
}
