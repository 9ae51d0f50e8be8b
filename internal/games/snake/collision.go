package snake

// Collision classifies what a prospective head position runs into.
type Collision int

const (
	CollisionNone Collision = iota
	CollisionWall
	CollisionSelf
)

func (c Collision) String() string {
	switch c {
	case CollisionNone:
		return "none"
	case CollisionWall:
		return "wall"
	case CollisionSelf:
		return "self"
	default:
		return "unknown"
	}
}

// CollisionPolicy decides whether a move ends the round.
type CollisionPolicy struct {
	// TailAware skips the tail segment on a non-growth move, since it is
	// vacated in the same tick. Off by default: the self check runs against
	// the full pre-move body.
	TailAware bool
}

// Classify checks candidate against the walls and the pre-move body.
// The current head is never considered, it moves away. Wall wins over self.
func (p CollisionPolicy) Classify(candidate Cell, board Board, body *Body, grows bool) Collision {
	if !board.InBounds(candidate) {
		return CollisionWall
	}

	segments := body.segments[1:]
	if p.TailAware && !grows && len(segments) > 0 {
		segments = segments[:len(segments)-1]
	}
	for _, seg := range segments {
		if seg == candidate {
			return CollisionSelf
		}
	}
	return CollisionNone
}
