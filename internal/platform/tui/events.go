// Package tui provides the Bubble Tea integration for the snake game.
// It renders session snapshots and turns key presses into session commands.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/session"
)

// EventSource delivers session events. session.Subscriber implements it.
type EventSource interface {
	Events() <-chan session.Event
	Done() <-chan struct{}
}

// EventMsg wraps a session event for the Bubble Tea loop.
type EventMsg struct {
	Event session.Event
}

// ClosedMsg is sent once the session stops publishing.
type ClosedMsg struct{}

// waitForEvent returns a command that blocks until the next session event.
func waitForEvent(src EventSource) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt := <-src.Events():
			return EventMsg{Event: evt}
		case <-src.Done():
			return ClosedMsg{}
		}
	}
}
