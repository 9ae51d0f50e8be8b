package session

import "sync"

const defaultEventBuffer = 64

// Subscriber receives session events over a buffered channel.
// Used by the TUI layer to bridge Bubble Tea with the session goroutine.
type Subscriber struct {
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

func newSubscriber(buffer int) *Subscriber {
	if buffer < 1 {
		buffer = defaultEventBuffer
	}
	return &Subscriber{
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
}

// send delivers an event without blocking.
// If the buffer is full, the oldest event is dropped.
func (s *Subscriber) send(evt Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
	default:
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- evt:
		default:
		}
	}
}

// Events returns the channel to receive events from.
func (s *Subscriber) Events() <-chan Event {
	return s.events
}

// Done returns a channel that closes when the subscription ends.
func (s *Subscriber) Done() <-chan struct{} {
	return s.done
}

// Close ends the subscription. Safe to call multiple times.
func (s *Subscriber) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

func (s *Subscriber) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}
