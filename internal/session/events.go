package session

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Event is sent from the session to its subscribers.
type Event interface {
	sessionEvent()
}

// SnapshotEvent carries the game state after every change.
type SnapshotEvent struct {
	Snapshot snake.Snapshot
}

func (SnapshotEvent) sessionEvent() {}

// MessageEvent is sent whenever a new notice is shown to the player.
type MessageEvent struct {
	Text  string
	State snake.State
}

func (MessageEvent) sessionEvent() {}

// RunEndedEvent is sent once a run reaches a terminal state.
type RunEndedEvent struct {
	Result RunResult
}

func (RunEndedEvent) sessionEvent() {}

// message is an inbox entry processed by the session goroutine.
type message interface {
	sessionMessage()
}

type startMsg struct{}

func (startMsg) sessionMessage() {}

type turnMsg struct {
	dir snake.Direction
}

func (turnMsg) sessionMessage() {}

type speedMsg struct {
	interval time.Duration
}

func (speedMsg) sessionMessage() {}

// tickMsg and resumeMsg carry the generation of the timer that posted them.
type tickMsg struct {
	gen uint64
}

func (tickMsg) sessionMessage() {}

type resumeMsg struct {
	gen uint64
}

func (resumeMsg) sessionMessage() {}

type snapshotMsg struct {
	reply chan<- snake.Snapshot
}

func (snapshotMsg) sessionMessage() {}
