// Package snake implements the bounded-retry snake simulation: board geometry,
// food placement, the snake body, the collision and retry policies and the
// tick-driven state machine tying them together.
//
// The package has no notion of wall-clock time beyond the durations it hands
// out; scheduling ticks and delayed resets is the caller's job (see the
// session package).
package snake

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// State is the session state exposed to renderers.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePausedRetry
	StateGameOver
	StateWon
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePausedRetry:
		return "paused_retry"
	case StateGameOver:
		return "game_over"
	case StateWon:
		return "won"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state only leaves on an explicit start.
func (s State) Terminal() bool {
	return s == StateGameOver || s == StateWon
}

// Config contains the engine parameters. Distances are in board units.
type Config struct {
	BoardSize     int
	CellSize      int
	InitialLength int
	StartRow      int // row of the initial snake, counted in cells
	MaxNG         int
	Interval      time.Duration // tick interval
	RetryDelay    time.Duration // pause before the automatic soft reset
	TailAware     bool          // see CollisionPolicy.TailAware

	BlockQuickReversal bool // see Body.BlockQuickReversal
}

// DefaultConfig returns the reference parameters: a 400×400 board of 20-unit
// cells, a five-segment snake in the top-left corner heading right, ten
// retries, 100ms ticks and a two second retry pause.
func DefaultConfig() Config {
	return Config{
		BoardSize:     400,
		CellSize:      20,
		InitialLength: 5,
		StartRow:      0,
		MaxNG:         DefaultMaxNG,
		Interval:      100 * time.Millisecond,
		RetryDelay:    2 * time.Second,
	}
}

// Outcome describes what a tick did.
type Outcome int

const (
	OutcomeIgnored  Outcome = iota // not running
	OutcomeMoved                   // plain move
	OutcomeAte                     // moved onto food and grew
	OutcomeRetry                   // collision, retries remain
	OutcomeGameOver                // collision, retries exhausted
	OutcomeWon                     // grew into the last free cell
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeMoved:
		return "moved"
	case OutcomeAte:
		return "ate"
	case OutcomeRetry:
		return "retry"
	case OutcomeGameOver:
		return "game_over"
	case OutcomeWon:
		return "won"
	default:
		return "unknown"
	}
}

// TickResult is returned by Game.Tick.
type TickResult struct {
	Outcome   Outcome
	Collision Collision
	Remaining int // retries left after an OutcomeRetry
	Score     int // score at the end of the tick
}

// Notices shown to the player.
const (
	MsgStartPrompt = "Press start to play"
	msgRetry       = "NG! %d left"
	msgGameOver    = "Game over! Final score: %d"
	msgWon         = "Board full! Final score: %d"
)

// noFood marks the absence of a food cell.
var noFood = Cell{X: -1, Y: -1}

// Game is the snake state machine. It is not safe for concurrent use; a
// single owner drives it.
type Game struct {
	cfg     Config
	board   Board
	placer  *FoodPlacer
	policy  CollisionPolicy
	retries *RetryPolicy

	body     *Body
	food     Cell
	score    int
	state    State
	interval time.Duration
	tick     uint64 // ticks since the last hard reset
	round    int    // 1-based round within the current game
	message  string
}

// New creates an idle game. rng drives food placement.
func New(cfg Config, rng *rand.Rand) (*Game, error) {
	board, err := NewBoard(cfg.BoardSize, cfg.CellSize)
	if err != nil {
		return nil, err
	}
	if cfg.InitialLength < 1 || cfg.InitialLength > board.Columns() {
		return nil, fmt.Errorf("snake: initial length %d does not fit a %d-cell row", cfg.InitialLength, board.Columns())
	}
	if cfg.InitialLength >= board.Cells() {
		return nil, fmt.Errorf("snake: initial length %d leaves no cell for food", cfg.InitialLength)
	}
	if cfg.StartRow < 0 || cfg.StartRow >= board.Columns() {
		return nil, fmt.Errorf("snake: start row %d outside the board", cfg.StartRow)
	}
	if cfg.MaxNG <= 0 {
		return nil, fmt.Errorf("snake: max NG must be positive, got %d", cfg.MaxNG)
	}
	if cfg.Interval <= 0 || cfg.RetryDelay < 0 {
		return nil, fmt.Errorf("snake: invalid timing interval=%s retry_delay=%s", cfg.Interval, cfg.RetryDelay)
	}

	g := &Game{
		cfg:      cfg,
		board:    board,
		placer:   NewFoodPlacer(board, rng),
		policy:   CollisionPolicy{TailAware: cfg.TailAware},
		retries:  NewRetryPolicy(cfg.MaxNG),
		interval: cfg.Interval,
	}
	g.resetRound()
	g.round = 0
	g.message = MsgStartPrompt
	return g, nil
}

// resetRound lays out a fresh snake, food and score. The retry counter is
// left alone.
func (g *Game) resetRound() {
	g.body = NewBody(g.board.CellAt(0, g.cfg.StartRow), g.cfg.InitialLength, DirRight, g.board.CellSize())
	g.body.BlockQuickReversal = g.cfg.BlockQuickReversal
	g.score = 0
	g.round++
	g.message = ""

	food, err := g.placer.Place(g.body.Occupied())
	if err != nil {
		// New guarantees the initial snake leaves free cells.
		g.food = noFood
		return
	}
	g.food = food
}

// Start handles the start command. Idle starts the first round; GameOver and
// Won start a new game with the retry counter cleared. Returns false when the
// command is ignored (Running, PausedRetry).
func (g *Game) Start() bool {
	switch g.state {
	case StateIdle:
		g.round = 0
	case StateGameOver, StateWon:
		g.retries.Reset()
		g.round = 0
		g.tick = 0
	default:
		return false
	}
	g.resetRound()
	g.state = StateRunning
	return true
}

// ResumeAfterRetry performs the soft reset that ends a retry pause.
// Returns false unless the game is in PausedRetry.
func (g *Game) ResumeAfterRetry() bool {
	if g.state != StatePausedRetry {
		return false
	}
	g.resetRound()
	g.state = StateRunning
	return true
}

// SetDirection queues a direction change for the next tick. Ignored unless
// running; reversals are rejected by the body. Panics on an invalid direction.
func (g *Game) SetDirection(dir Direction) bool {
	if !dir.Valid() {
		panic(fmt.Sprintf("snake: invalid direction %d", int(dir)))
	}
	if g.state != StateRunning {
		return false
	}
	return g.body.SetDirection(dir)
}

// SetInterval changes the tick interval. Returns true when the game is
// running and the caller must reschedule its timer. Panics on a non-positive
// interval.
func (g *Game) SetInterval(d time.Duration) bool {
	if d <= 0 {
		panic(fmt.Sprintf("snake: invalid tick interval %s", d))
	}
	g.interval = d
	return g.state == StateRunning
}

// Tick advances the simulation one step.
func (g *Game) Tick() TickResult {
	if g.state != StateRunning {
		return TickResult{Outcome: OutcomeIgnored, Score: g.score}
	}
	g.tick++

	candidate := g.body.ProposedHead(g.body.Direction())
	grows := candidate == g.food

	if hit := g.policy.Classify(candidate, g.board, g.body, grows); hit != CollisionNone {
		return g.collide(hit)
	}

	g.body.Advance(candidate, grows)
	if !grows {
		return TickResult{Outcome: OutcomeMoved, Score: g.score}
	}

	g.score++
	food, err := g.placer.Place(g.body.Occupied())
	if errors.Is(err, ErrBoardFull) {
		g.food = noFood
		g.state = StateWon
		g.message = fmt.Sprintf(msgWon, g.score)
		return TickResult{Outcome: OutcomeWon, Score: g.score}
	}
	g.food = food
	return TickResult{Outcome: OutcomeAte, Score: g.score}
}

// collide applies the retry policy to a collision.
func (g *Game) collide(hit Collision) TickResult {
	out := g.retries.OnCollision()
	if out.Terminal {
		g.state = StateGameOver
		g.message = fmt.Sprintf(msgGameOver, g.score)
		return TickResult{Outcome: OutcomeGameOver, Collision: hit, Score: g.score}
	}
	g.state = StatePausedRetry
	g.message = fmt.Sprintf(msgRetry, out.Remaining)
	return TickResult{Outcome: OutcomeRetry, Collision: hit, Remaining: out.Remaining, Score: g.score}
}

// State returns the current state.
func (g *Game) State() State {
	return g.state
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.score
}

// NGCount returns the number of collisions in the current game.
func (g *Game) NGCount() int {
	return g.retries.Count()
}

// MaxNG returns the number of collisions that ends a game.
func (g *Game) MaxNG() int {
	return g.retries.Max()
}

// Interval returns the tick interval.
func (g *Game) Interval() time.Duration {
	return g.interval
}

// RetryDelay returns the pause before the automatic soft reset.
func (g *Game) RetryDelay() time.Duration {
	return g.cfg.RetryDelay
}

// Board returns the board geometry.
func (g *Game) Board() Board {
	return g.board
}

// Message returns the current player notice, empty while playing.
func (g *Game) Message() string {
	return g.message
}

// Ticks returns the number of ticks since the last hard reset.
func (g *Game) Ticks() uint64 {
	return g.tick
}

// Round returns the 1-based round number, zero before the first start.
func (g *Game) Round() int {
	return g.round
}
