package snake

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func newTestGame(t *testing.T, seed int64, mutate func(*Config)) *Game {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	g, err := New(cfg, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return g
}

func startedGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := newTestGame(t, seed, nil)
	require.True(t, g.Start())
	return g
}

func TestNewGameIsIdle(t *testing.T) {
	g := newTestGame(t, 1, nil)
	snap := g.Snapshot()

	require.Equal(t, StateIdle, snap.State)
	require.Equal(t, MsgStartPrompt, snap.Message)
	require.Equal(t, 0, snap.Score)
	require.Equal(t, 0, snap.NGCount)
	require.Equal(t, 10, snap.MaxNG)
	require.Len(t, snap.Snake, 5)
	require.Equal(t, OutcomeIgnored, g.Tick().Outcome)
	require.False(t, g.SetDirection(DirDown), "direction input is ignored while idle")
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"board not multiple of cell", func(c *Config) { c.BoardSize = 410 }},
		{"zero cell size", func(c *Config) { c.CellSize = 0 }},
		{"snake longer than row", func(c *Config) { c.InitialLength = 21 }},
		{"no room for food", func(c *Config) {
			c.BoardSize = 20
			c.InitialLength = 1
		}},
		{"start row off board", func(c *Config) { c.StartRow = 20 }},
		{"no retries", func(c *Config) { c.MaxNG = 0 }},
		{"zero interval", func(c *Config) { c.Interval = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			_, err := New(cfg, rand.New(rand.NewSource(1)))
			require.Error(t, err)
		})
	}
}

func TestPlainMoveScenario(t *testing.T) {
	g := startedGame(t, 7)
	require.Equal(t, []Cell{{80, 0}, {60, 0}, {40, 0}, {20, 0}, {0, 0}}, g.Snapshot().Snake)
	g.food = Cell{X: 200, Y: 200}

	res := g.Tick()

	require.Equal(t, OutcomeMoved, res.Outcome)
	snap := g.Snapshot()
	require.Equal(t, []Cell{{100, 0}, {80, 0}, {60, 0}, {40, 0}, {20, 0}}, snap.Snake)
	require.Equal(t, 0, snap.Score)
	require.Equal(t, Cell{X: 200, Y: 200}, snap.Food)
}

func TestEatScenario(t *testing.T) {
	g := startedGame(t, 8)
	g.food = Cell{X: 100, Y: 0}

	res := g.Tick()

	require.Equal(t, OutcomeAte, res.Outcome)
	snap := g.Snapshot()
	require.Equal(t, []Cell{{100, 0}, {80, 0}, {60, 0}, {40, 0}, {20, 0}, {0, 0}}, snap.Snake)
	require.Equal(t, 1, snap.Score)
	require.NotEqual(t, Cell{X: 100, Y: 0}, snap.Food)
	for _, seg := range snap.Snake {
		require.NotEqual(t, seg, snap.Food, "new food placed on the snake")
	}
}

func TestWallCollisionRetryScenario(t *testing.T) {
	g := startedGame(t, 9)
	g.body = &Body{
		segments:  []Cell{{0, 40}, {20, 40}, {40, 40}},
		direction: DirLeft,
		heading:   DirLeft,
		cellSize:  20,
	}
	g.score = 3

	res := g.Tick()

	require.Equal(t, OutcomeRetry, res.Outcome)
	require.Equal(t, CollisionWall, res.Collision)
	require.Equal(t, 9, res.Remaining)
	require.Equal(t, StatePausedRetry, g.State())
	require.Equal(t, "NG! 9 left", g.Message())
	require.Equal(t, 1, g.NGCount())

	// Paused: ticks and input do nothing until the soft reset.
	require.Equal(t, OutcomeIgnored, g.Tick().Outcome)
	require.False(t, g.SetDirection(DirUp))
	require.False(t, g.Start(), "start is ignored during the retry pause")

	require.True(t, g.ResumeAfterRetry())
	snap := g.Snapshot()
	require.Equal(t, StateRunning, snap.State)
	require.Equal(t, []Cell{{80, 0}, {60, 0}, {40, 0}, {20, 0}, {0, 0}}, snap.Snake)
	require.Equal(t, DirRight, snap.Direction)
	require.Equal(t, 0, snap.Score)
	require.Equal(t, 1, snap.NGCount, "soft reset keeps the retry counter")
	require.Equal(t, 2, snap.Round)
	require.Empty(t, snap.Message)
}

func TestUpIntoTopWall(t *testing.T) {
	g := startedGame(t, 10)
	require.True(t, g.SetDirection(DirUp))

	res := g.Tick()
	require.Equal(t, CollisionWall, res.Collision)
}

func TestRetriesExhaustedIsTerminal(t *testing.T) {
	g := startedGame(t, 11)

	for i := 1; i <= 10; i++ {
		g.food = Cell{X: 200, Y: 200}
		require.True(t, g.SetDirection(DirUp))
		res := g.Tick()
		require.Equal(t, i, g.NGCount(), "counter grows by one per collision")
		if i < 10 {
			require.Equal(t, OutcomeRetry, res.Outcome)
			require.Equal(t, 10-i, res.Remaining)
			require.True(t, g.ResumeAfterRetry())
			continue
		}
		require.Equal(t, OutcomeGameOver, res.Outcome)
	}

	require.Equal(t, StateGameOver, g.State())
	require.Equal(t, "Game over! Final score: 0", g.Message())

	// Frozen: nothing short of Start changes the game.
	before := g.Snapshot()
	require.Equal(t, OutcomeIgnored, g.Tick().Outcome)
	require.False(t, g.ResumeAfterRetry())
	require.False(t, g.SetDirection(DirDown))
	require.Equal(t, before, g.Snapshot())
	require.Equal(t, 10, g.NGCount(), "counter never exceeds the maximum")

	require.True(t, g.Start())
	require.Equal(t, StateRunning, g.State())
	require.Equal(t, 0, g.NGCount())
	require.Equal(t, 0, g.Score())
	require.Equal(t, 1, g.Round())
}

func TestGameOverFreezesFinalScore(t *testing.T) {
	g := newTestGame(t, 12, func(c *Config) { c.MaxNG = 1 })
	require.True(t, g.Start())
	g.food = Cell{X: 100, Y: 0}
	require.Equal(t, OutcomeAte, g.Tick().Outcome)
	require.Equal(t, OutcomeAte, eatAhead(g))

	require.True(t, g.SetDirection(DirUp))
	res := g.Tick()
	require.Equal(t, OutcomeGameOver, res.Outcome)
	require.Equal(t, 2, res.Score)
	require.Equal(t, 2, g.Snapshot().Score)
	require.Equal(t, "Game over! Final score: 2", g.Message())
}

// eatAhead puts food in front of the head and ticks.
func eatAhead(g *Game) Outcome {
	g.food = g.body.ProposedHead(g.body.Direction())
	return g.Tick().Outcome
}

func TestScoreResetsOnSoftReset(t *testing.T) {
	g := startedGame(t, 13)
	require.Equal(t, OutcomeAte, eatAhead(g))
	require.Equal(t, 1, g.Score())

	require.True(t, g.SetDirection(DirUp))
	require.Equal(t, OutcomeRetry, g.Tick().Outcome)
	require.Equal(t, 1, g.Snapshot().Score, "score shown unchanged during the pause")

	require.True(t, g.ResumeAfterRetry())
	require.Equal(t, 0, g.Score())
	require.Equal(t, 5, len(g.Snapshot().Snake))
}

func TestOppositeDirectionRejected(t *testing.T) {
	g := startedGame(t, 14)

	require.False(t, g.SetDirection(DirLeft))
	require.Equal(t, DirRight, g.Snapshot().Direction)

	require.True(t, g.SetDirection(DirUp))
	require.False(t, g.SetDirection(DirDown))
	require.Equal(t, DirUp, g.Snapshot().Direction)
}

func TestTwoTurnsInOneTick(t *testing.T) {
	g := startedGame(t, 14)
	g.food = Cell{X: 380, Y: 380}
	require.True(t, g.SetDirection(DirDown))
	require.Equal(t, OutcomeMoved, g.Tick().Outcome)

	// Heading down: right then up inside the same tick are both accepted.
	require.True(t, g.SetDirection(DirRight))
	require.True(t, g.SetDirection(DirUp))
	require.Equal(t, DirUp, g.Snapshot().Direction)

	// The head turns back onto the neck.
	res := g.Tick()
	require.Equal(t, OutcomeRetry, res.Outcome)
	require.Equal(t, CollisionSelf, res.Collision)
}

func TestQuickReversalBlocked(t *testing.T) {
	g := newTestGame(t, 14, func(c *Config) { c.BlockQuickReversal = true })
	require.True(t, g.Start())
	g.food = Cell{X: 380, Y: 380}
	require.True(t, g.SetDirection(DirDown))
	require.Equal(t, OutcomeMoved, g.Tick().Outcome)

	require.True(t, g.SetDirection(DirRight))
	require.False(t, g.SetDirection(DirUp))
	require.Equal(t, DirRight, g.Snapshot().Direction)

	require.False(t, g.SetDirection(DirLeft), "reverses the pending right")
	require.True(t, g.SetDirection(DirDown))
	require.Equal(t, DirDown, g.Snapshot().Direction)
}

func TestSnakeFillsRow(t *testing.T) {
	g := newTestGame(t, 3, func(c *Config) { c.InitialLength = 20 })
	require.True(t, g.Start())

	snap := g.Snapshot()
	require.Len(t, snap.Snake, 20)
	require.Equal(t, Cell{X: 380, Y: 0}, snap.Head())
	require.True(t, snap.HasFood())

	res := g.Tick()
	require.Equal(t, OutcomeRetry, res.Outcome)
	require.Equal(t, CollisionWall, res.Collision)
}

func TestOppositeRejectedForEveryDirection(t *testing.T) {
	for _, d := range []Direction{DirUp, DirDown, DirLeft, DirRight} {
		b := NewBody(Cell{X: 100, Y: 100}, 3, d, 20)
		require.False(t, b.SetDirection(d.Opposite()))
		require.Equal(t, d, b.Direction())
	}
}

func TestSetDirectionPanicsOnInvalid(t *testing.T) {
	g := startedGame(t, 15)
	require.Panics(t, func() { g.SetDirection(Direction(42)) })
}

func TestSetInterval(t *testing.T) {
	g := newTestGame(t, 16, nil)

	require.False(t, g.SetInterval(50*time.Millisecond), "no restart needed while idle")
	require.Equal(t, 50*time.Millisecond, g.Interval())

	require.True(t, g.Start())
	before := g.Snapshot()
	require.True(t, g.SetInterval(150*time.Millisecond))
	after := g.Snapshot()
	require.Equal(t, before.Snake, after.Snake)
	require.Equal(t, before.Food, after.Food)
	require.Equal(t, before.Score, after.Score)
	require.Equal(t, 150*time.Millisecond, after.Interval)

	require.Panics(t, func() { g.SetInterval(0) })
}

func TestConservativeSelfCollision(t *testing.T) {
	// Head at (20,0) turning left onto the tail cell (0,0).
	loop := func() *Body {
		return &Body{
			segments:  []Cell{{20, 0}, {20, 20}, {0, 20}, {0, 0}},
			direction: DirLeft,
			heading:   DirUp,
			cellSize:  20,
		}
	}

	g := startedGame(t, 17)
	g.body = loop()
	g.food = Cell{X: 200, Y: 200}
	res := g.Tick()
	require.Equal(t, CollisionSelf, res.Collision, "tail counts as body by default")

	lenient := newTestGame(t, 17, func(c *Config) { c.TailAware = true })
	require.True(t, lenient.Start())
	lenient.body = loop()
	lenient.food = Cell{X: 200, Y: 200}
	res = lenient.Tick()
	require.Equal(t, OutcomeMoved, res.Outcome)
	require.Equal(t, []Cell{{0, 0}, {20, 0}, {20, 20}, {0, 20}}, lenient.Snapshot().Snake)
}

func TestTailAwareStillHitsTailWhenGrowing(t *testing.T) {
	policy := CollisionPolicy{TailAware: true}
	board, err := NewBoard(400, 20)
	require.NoError(t, err)
	body := &Body{segments: []Cell{{20, 0}, {20, 20}, {0, 20}, {0, 0}}, cellSize: 20}

	require.Equal(t, CollisionSelf, policy.Classify(Cell{X: 0, Y: 0}, board, body, true))
	require.Equal(t, CollisionNone, policy.Classify(Cell{X: 0, Y: 0}, board, body, false))
}

func TestClassifyWallWinsOverSelf(t *testing.T) {
	board, err := NewBoard(400, 20)
	require.NoError(t, err)
	body := &Body{segments: []Cell{{0, 0}, {-20, 0}}, cellSize: 20}

	require.Equal(t, CollisionWall, CollisionPolicy{}.Classify(Cell{X: -20, Y: 0}, board, body, false))
}

func TestClassifyIgnoresCurrentHead(t *testing.T) {
	board, err := NewBoard(400, 20)
	require.NoError(t, err)
	body := NewBody(Cell{X: 0, Y: 0}, 3, DirRight, 20)

	require.Equal(t, CollisionNone, CollisionPolicy{}.Classify(body.Head(), board, body, false))
	require.Equal(t, CollisionSelf, CollisionPolicy{}.Classify(Cell{X: 20, Y: 0}, board, body, false))
}

func TestWinOnFullBoard(t *testing.T) {
	g := newTestGame(t, 18, func(c *Config) {
		c.BoardSize = 40
		c.InitialLength = 1
	})
	require.True(t, g.Start())
	g.body = &Body{
		segments:  []Cell{{0, 20}, {0, 0}, {20, 0}},
		direction: DirRight,
		heading:   DirDown,
		cellSize:  20,
	}
	g.food = Cell{X: 20, Y: 20}

	res := g.Tick()

	require.Equal(t, OutcomeWon, res.Outcome)
	snap := g.Snapshot()
	require.Equal(t, StateWon, snap.State)
	require.False(t, snap.HasFood())
	require.Equal(t, 1, snap.Score)
	require.Equal(t, "Board full! Final score: 1", snap.Message)
	require.Equal(t, OutcomeIgnored, g.Tick().Outcome)

	require.True(t, g.Start())
	require.Equal(t, StateRunning, g.State())
	require.True(t, g.Snapshot().HasFood())
}

func TestLengthInvariantRandomWalk(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g := newTestGame(t, seed, nil)
		require.True(t, g.Start())
		steer := rand.New(rand.NewSource(seed * 31))

		for n := 0; n < 500; n++ {
			before := g.Snapshot()
			g.SetDirection(Direction(steer.Intn(4)))
			res := g.Tick()

			after := g.Snapshot()
			switch res.Outcome {
			case OutcomeMoved:
				require.Len(t, after.Snake, len(before.Snake))
			case OutcomeAte:
				require.Len(t, after.Snake, len(before.Snake)+1)
				require.Equal(t, before.Score+1, after.Score)
			case OutcomeRetry:
				require.Equal(t, before.Snake, after.Snake, "collision leaves the body untouched")
				require.True(t, g.ResumeAfterRetry())
			case OutcomeGameOver:
				require.True(t, g.Start())
			}
			requireUniqueSegments(t, g.Snapshot().Snake)
		}
	}
}

func requireUniqueSegments(t *testing.T, segs []Cell) {
	t.Helper()
	seen := make(map[Cell]bool, len(segs))
	for _, s := range segs {
		require.False(t, seen[s], "duplicate segment %s", s)
		seen[s] = true
	}
}

func TestFoodNeverOnSnake(t *testing.T) {
	board, err := NewBoard(400, 20)
	require.NoError(t, err)

	for seed := int64(0); seed < 200; seed++ {
		body := NewBody(Cell{X: 0, Y: 0}, 19, DirRight, 20)
		placer := NewFoodPlacer(board, rand.New(rand.NewSource(seed)))
		food, err := placer.Place(body.Occupied())
		require.NoError(t, err)
		require.False(t, body.Occupies(food, true), "seed %d placed food on %s", seed, food)
		require.True(t, board.InBounds(food))
		require.Zero(t, food.X%20)
		require.Zero(t, food.Y%20)
	}
}

func TestFoodPlacementBoardFull(t *testing.T) {
	board, err := NewBoard(40, 20)
	require.NoError(t, err)
	placer := NewFoodPlacer(board, rand.New(rand.NewSource(1)))

	full := map[Cell]struct{}{{0, 0}: {}, {20, 0}: {}, {0, 20}: {}, {20, 20}: {}}
	_, err = placer.Place(full)
	require.ErrorIs(t, err, ErrBoardFull)

	delete(full, Cell{X: 20, Y: 20})
	food, err := placer.Place(full)
	require.NoError(t, err)
	require.Equal(t, Cell{X: 20, Y: 20}, food)
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := newTestGame(t, 12345, nil)
		require.True(t, g.Start())
		for i := 0; i < 100; i++ {
			switch i {
			case 3:
				g.SetDirection(DirDown)
			case 9:
				g.SetDirection(DirRight)
			}
			if g.Tick().Outcome == OutcomeRetry {
				g.ResumeAfterRetry()
			}
		}
		return g.Snapshot()
	}

	require.Equal(t, run(), run())
}

func TestRender(t *testing.T) {
	g := startedGame(t, 444)
	screen := core.NewScreen(80, 24)

	Render(g.Snapshot(), screen)

	require.Contains(t, screen.Row(0), "Score: 0")
	require.Contains(t, screen.Row(0), "NG: 0/10")
	require.Contains(t, screen.Row(0), "Speed: 100ms")

	// Board is 42 wide, centered: frame at x=19, head in column 4 of row 0.
	head := screen.GetCell(19+1+4*2, 3)
	require.Equal(t, '█', head.Rune)
	require.Equal(t, core.ColorBrightGreen, head.Color)
}

func TestRenderOverlayAndTooSmall(t *testing.T) {
	g := newTestGame(t, 445, nil)
	screen := core.NewScreen(80, 24)
	Render(g.Snapshot(), screen)
	require.Contains(t, screen.String(), MsgStartPrompt)

	small := core.NewScreen(30, 10)
	Render(g.Snapshot(), small)
	require.True(t, strings.Contains(small.String(), "Window too small"))
}

func TestParseDirection(t *testing.T) {
	for _, d := range []Direction{DirUp, DirDown, DirLeft, DirRight} {
		parsed, err := ParseDirection(d.String())
		require.NoError(t, err)
		require.Equal(t, d, parsed)
	}
	_, err := ParseDirection("sideways")
	require.Error(t, err)
}
