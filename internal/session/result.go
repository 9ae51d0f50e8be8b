package session

import "time"

// End reasons recorded for a run.
const (
	EndGameOver  = "game_over"
	EndWon       = "won"
	EndAbandoned = "abandoned"
)

// RoundCauseBoardFull is the cause recorded for a round that filled the board.
const RoundCauseBoardFull = "board_full"

// RunResult describes a finished run, from start to a terminal state.
type RunResult struct {
	ID        string
	Score     int // score of the final round
	NGCount   int
	MaxNG     int
	EndReason string
	Rounds    int
	Ticks     uint64
	Duration  time.Duration
	Interval  time.Duration // tick interval when the run ended
	StartedAt time.Time
}

// RoundResult describes one round of a run.
type RoundResult struct {
	RunID string
	Round int
	Score int
	Cause string // collision kind or RoundCauseBoardFull
	Ticks uint64
}

// ResultSaver persists run results.
// This allows the session to save results without depending on the storage package.
type ResultSaver interface {
	SaveRun(result RunResult) error
	SaveRound(result RoundResult) error
}
