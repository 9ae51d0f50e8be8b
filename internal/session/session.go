// Package session runs a snake.Game in real time.
//
// A Session owns the game and mutates it from a single goroutine (Run) that
// drains one inbox. Player input and timer expirations are both posted to the
// inbox, so the game never sees concurrent access. Timers are tagged with a
// generation number; a message from a timer that was stopped or replaced is
// dropped when it arrives.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

var (
	ErrInvalidDirection = errors.New("session: invalid direction")
	ErrInvalidSpeed     = errors.New("session: tick interval must be positive")
	ErrStopped          = errors.New("session: stopped")
)

const inboxSize = 64

// Session drives one game.
type Session struct {
	game   *snake.Game
	clock  Clock
	logger *log.Logger
	saver  ResultSaver // Optional, can be nil

	inbox    chan message
	done     chan struct{}
	doneOnce sync.Once

	mu   sync.Mutex
	subs []*Subscriber

	// Owned by the Run goroutine.
	tickTimer  Timer
	tickGen    uint64
	resetTimer Timer
	resetGen   uint64
	run        *runState
}

// runState tracks the run in progress.
type runState struct {
	id         string
	startedAt  time.Time
	roundStart uint64 // game tick at which the current round began
}

// New creates a session around game. A nil clock uses the wall clock and a
// nil logger uses the charm default logger.
func New(game *snake.Game, clock Clock, logger *log.Logger) *Session {
	if clock == nil {
		clock = RealClock{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Session{
		game:   game,
		clock:  clock,
		logger: logger,
		inbox:  make(chan message, inboxSize),
		done:   make(chan struct{}),
	}
}

// SetResultSaver sets the saver for finished runs. Call before Run.
func (s *Session) SetResultSaver(saver ResultSaver) {
	s.saver = saver
}

// Run processes the inbox until ctx is cancelled. A run still in progress is
// recorded as abandoned.
func (s *Session) Run(ctx context.Context) error {
	defer s.shutdown()

	s.publishSnapshot()
	if msg := s.game.Message(); msg != "" {
		s.publish(MessageEvent{Text: msg, State: s.game.State()})
	}

	for {
		select {
		case msg := <-s.inbox:
			s.handle(msg)
		case <-ctx.Done():
			return nil
		}
	}
}

// Done returns a channel that closes when Run has returned.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Start requests a new game. Ignored while running or during a retry pause.
func (s *Session) Start() error {
	return s.send(startMsg{})
}

// Turn requests a direction change for the next tick.
func (s *Session) Turn(dir snake.Direction) error {
	if !dir.Valid() {
		return ErrInvalidDirection
	}
	return s.send(turnMsg{dir: dir})
}

// SetSpeed changes the tick interval. A running game keeps its state and
// continues at the new pace.
func (s *Session) SetSpeed(interval time.Duration) error {
	if interval <= 0 {
		return ErrInvalidSpeed
	}
	return s.send(speedMsg{interval: interval})
}

// Snapshot returns the game state as seen by the session goroutine, after
// every message queued before the call has been handled.
func (s *Session) Snapshot(ctx context.Context) (snake.Snapshot, error) {
	reply := make(chan snake.Snapshot, 1)
	if err := s.send(snapshotMsg{reply: reply}); err != nil {
		return snake.Snapshot{}, err
	}
	select {
	case snap := <-reply:
		return snap, nil
	case <-ctx.Done():
		return snake.Snapshot{}, ctx.Err()
	case <-s.done:
		select {
		case snap := <-reply:
			return snap, nil
		default:
			return snake.Snapshot{}, ErrStopped
		}
	}
}

// Subscribe registers a new event listener. buffer controls how many events
// are held before the oldest is dropped.
func (s *Session) Subscribe(buffer int) *Subscriber {
	sub := newSubscriber(buffer)

	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.done:
		sub.Close()
	default:
		s.subs = append(s.subs, sub)
	}
	return sub
}

func (s *Session) send(msg message) error {
	select {
	case <-s.done:
		return ErrStopped
	default:
	}

	select {
	case s.inbox <- msg:
		return nil
	case <-s.done:
		return ErrStopped
	}
}

// post is used by timer callbacks, which have nobody to report to.
func (s *Session) post(msg message) {
	_ = s.send(msg)
}

func (s *Session) handle(msg message) {
	switch m := msg.(type) {
	case startMsg:
		s.handleStart()
	case turnMsg:
		if s.game.SetDirection(m.dir) {
			s.publishSnapshot()
		}
	case speedMsg:
		s.handleSpeed(m.interval)
	case tickMsg:
		s.handleTick(m.gen)
	case resumeMsg:
		s.handleResume(m.gen)
	case snapshotMsg:
		m.reply <- s.game.Snapshot()
	}
}

func (s *Session) handleStart() {
	prev := s.game.State()
	if !s.game.Start() {
		s.logger.Debug("start ignored", "state", prev)
		return
	}

	s.stopTick()
	s.stopReset()
	s.run = &runState{
		id:        uuid.NewString(),
		startedAt: s.clock.Now(),
	}
	s.logger.Info("run started", "run", s.run.id, "interval", s.game.Interval())

	s.armTick()
	s.publishSnapshot()
}

func (s *Session) handleSpeed(interval time.Duration) {
	if s.game.SetInterval(interval) {
		s.armTick()
	}
	s.logger.Info("speed changed", "interval", interval, "state", s.game.State())
	s.publishSnapshot()
}

func (s *Session) handleTick(gen uint64) {
	if gen != s.tickGen || s.tickTimer == nil {
		s.logger.Debug("stale tick dropped", "gen", gen, "current", s.tickGen)
		return
	}
	s.tickTimer = nil

	res := s.game.Tick()
	var ended *RunResult

	switch res.Outcome {
	case snake.OutcomeIgnored:
		return
	case snake.OutcomeMoved, snake.OutcomeAte:
		s.armTick()
	case snake.OutcomeRetry:
		s.endRound(res.Collision.String())
		s.logger.Info("collision", "cause", res.Collision, "remaining", res.Remaining, "score", res.Score)
		s.armReset()
	case snake.OutcomeGameOver:
		s.endRound(res.Collision.String())
		ended = s.finishRun(EndGameOver)
	case snake.OutcomeWon:
		s.endRound(RoundCauseBoardFull)
		ended = s.finishRun(EndWon)
	}

	s.publishSnapshot()
	if res.Outcome == snake.OutcomeRetry || ended != nil {
		s.publish(MessageEvent{Text: s.game.Message(), State: s.game.State()})
	}
	if ended != nil {
		s.publish(RunEndedEvent{Result: *ended})
	}
}

func (s *Session) handleResume(gen uint64) {
	if gen != s.resetGen || s.resetTimer == nil {
		s.logger.Debug("stale reset dropped", "gen", gen, "current", s.resetGen)
		return
	}
	s.resetTimer = nil

	if !s.game.ResumeAfterRetry() {
		return
	}
	if s.run != nil {
		s.run.roundStart = s.game.Ticks()
	}
	s.logger.Debug("round restarted", "round", s.game.Round(), "ng", s.game.NGCount())

	s.armTick()
	s.publishSnapshot()
}

// armTick replaces the tick timer with a fresh one-shot timer.
func (s *Session) armTick() {
	s.stopTick()
	gen := s.tickGen
	s.tickTimer = s.clock.AfterFunc(s.game.Interval(), func() {
		s.post(tickMsg{gen: gen})
	})
}

func (s *Session) stopTick() {
	if s.tickTimer != nil {
		s.tickTimer.Stop()
		s.tickTimer = nil
	}
	s.tickGen++
}

// armReset schedules the soft reset that ends a retry pause.
func (s *Session) armReset() {
	s.stopReset()
	gen := s.resetGen
	s.resetTimer = s.clock.AfterFunc(s.game.RetryDelay(), func() {
		s.post(resumeMsg{gen: gen})
	})
}

func (s *Session) stopReset() {
	if s.resetTimer != nil {
		s.resetTimer.Stop()
		s.resetTimer = nil
	}
	s.resetGen++
}

// endRound records the round that just ended.
func (s *Session) endRound(cause string) {
	if s.run == nil {
		return
	}
	round := RoundResult{
		RunID: s.run.id,
		Round: s.game.Round(),
		Score: s.game.Score(),
		Cause: cause,
		Ticks: s.game.Ticks() - s.run.roundStart,
	}
	if s.saver == nil {
		return
	}
	if err := s.saver.SaveRound(round); err != nil {
		s.logger.Warn("failed to save round", "run", round.RunID, "round", round.Round, "error", err)
	}
}

// finishRun closes the current run and hands it to the saver.
func (s *Session) finishRun(reason string) *RunResult {
	if s.run == nil {
		return nil
	}
	result := RunResult{
		ID:        s.run.id,
		Score:     s.game.Score(),
		NGCount:   s.game.NGCount(),
		MaxNG:     s.game.MaxNG(),
		EndReason: reason,
		Rounds:    s.game.Round(),
		Ticks:     s.game.Ticks(),
		Duration:  s.clock.Now().Sub(s.run.startedAt),
		Interval:  s.game.Interval(),
		StartedAt: s.run.startedAt,
	}
	s.run = nil
	s.logger.Info("run finished", "run", result.ID, "reason", reason, "score", result.Score, "ng", result.NGCount)

	if s.saver != nil {
		if err := s.saver.SaveRun(result); err != nil {
			s.logger.Warn("failed to save run", "run", result.ID, "error", err)
		}
	}
	return &result
}

func (s *Session) publishSnapshot() {
	s.publish(SnapshotEvent{Snapshot: s.game.Snapshot()})
}

func (s *Session) publish(evt Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := s.subs[:0]
	for _, sub := range s.subs {
		if sub.closed() {
			continue
		}
		sub.send(evt)
		live = append(live, sub)
	}
	s.subs = live
}

func (s *Session) shutdown() {
	s.stopTick()
	s.stopReset()
	if s.run != nil {
		s.finishRun(EndAbandoned)
	}

	s.mu.Lock()
	s.doneOnce.Do(func() {
		close(s.done)
	})
	for _, sub := range s.subs {
		sub.Close()
	}
	s.subs = nil
	s.mu.Unlock()
}
