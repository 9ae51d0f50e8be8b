package snake

import "time"

// Snapshot is a read-only copy of the game state handed to renderers.
type Snapshot struct {
	Tick      uint64
	Round     int
	Snake     []Cell // head first
	Food      Cell   // (-1,-1) when there is none
	Score     int
	NGCount   int
	MaxNG     int
	Direction Direction
	Interval  time.Duration
	State     State
	Message   string
	BoardSize int
	CellSize  int
}

// HasFood reports whether the snapshot carries a food cell.
func (s Snapshot) HasFood() bool {
	return s.Food != noFood
}

// Head returns the head cell.
func (s Snapshot) Head() Cell {
	if len(s.Snake) == 0 {
		return noFood
	}
	return s.Snake[0]
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:      g.tick,
		Round:     g.round,
		Snake:     g.body.Segments(),
		Food:      g.food,
		Score:     g.score,
		NGCount:   g.retries.Count(),
		MaxNG:     g.retries.Max(),
		Direction: g.body.Direction(),
		Interval:  g.interval,
		State:     g.state,
		Message:   g.message,
		BoardSize: g.board.Size(),
		CellSize:  g.board.CellSize(),
	}
}
