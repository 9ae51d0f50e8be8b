package snake

import "fmt"

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirRight && d <= DirUp
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// Delta returns the unit displacement of d scaled by cellSize.
func (d Direction) Delta(cellSize int) (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -cellSize
	case DirDown:
		return 0, cellSize
	case DirLeft:
		return -cellSize, 0
	case DirRight:
		return cellSize, 0
	}
	panic(fmt.Sprintf("snake: invalid direction %d", int(d)))
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection converts a direction name back to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	}
	return 0, fmt.Errorf("snake: unknown direction %q", s)
}

// Body is the snake: ordered segments with the head at index 0, plus the
// direction it will travel on the next tick.
type Body struct {
	segments  []Cell
	direction Direction // pending, applied on the next advance
	heading   Direction // direction of the last applied move
	cellSize  int

	// BlockQuickReversal also rejects a turn opposite to heading, so two
	// turns inside one tick cannot fold the snake back onto its neck.
	BlockQuickReversal bool
}

// NewBody creates a horizontal snake of length cells whose tail sits at tail,
// extending towards dir. Panics on a length below one.
func NewBody(tail Cell, length int, dir Direction, cellSize int) *Body {
	if length < 1 {
		panic("snake: body length must be at least 1")
	}
	dx, dy := dir.Delta(cellSize)
	segments := make([]Cell, length)
	for i := 0; i < length; i++ {
		// Head first: the segment furthest along dir.
		steps := length - 1 - i
		segments[i] = tail.Add(dx*steps, dy*steps)
	}
	return &Body{
		segments:  segments,
		direction: dir,
		heading:   dir,
		cellSize:  cellSize,
	}
}

// Head returns the first segment.
func (b *Body) Head() Cell {
	return b.segments[0]
}

// Tail returns the last segment.
func (b *Body) Tail() Cell {
	return b.segments[len(b.segments)-1]
}

// Len returns the number of segments.
func (b *Body) Len() int {
	return len(b.segments)
}

// Segments returns a copy of the segments, head first.
func (b *Body) Segments() []Cell {
	out := make([]Cell, len(b.segments))
	copy(out, b.segments)
	return out
}

// Direction returns the direction the next advance will use.
func (b *Body) Direction() Direction {
	return b.direction
}

// ProposedHead returns the cell the head would move to in dir.
func (b *Body) ProposedHead(dir Direction) Cell {
	dx, dy := dir.Delta(b.cellSize)
	return b.Head().Add(dx, dy)
}

// Advance prepends newHead and drops the tail unless the snake grew.
func (b *Body) Advance(newHead Cell, grew bool) {
	if grew {
		b.segments = append(b.segments, Cell{})
	}
	copy(b.segments[1:], b.segments[:len(b.segments)-1])
	b.segments[0] = newHead
	b.heading = b.direction
}

// Occupies reports whether any segment sits on c. With includeHead false the
// head segment is skipped.
func (b *Body) Occupies(c Cell, includeHead bool) bool {
	start := 1
	if includeHead {
		start = 0
	}
	for _, seg := range b.segments[start:] {
		if seg == c {
			return true
		}
	}
	return false
}

// Occupied returns the set of cells covered by the body.
func (b *Body) Occupied() map[Cell]struct{} {
	set := make(map[Cell]struct{}, len(b.segments))
	for _, seg := range b.segments {
		set[seg] = struct{}{}
	}
	return set
}

// SetDirection changes the pending direction. A reversal of the pending
// direction is ignored, as is a reversal of the last heading when
// BlockQuickReversal is set. Returns whether the change was applied.
func (b *Body) SetDirection(dir Direction) bool {
	if dir == b.direction.Opposite() {
		return false
	}
	if b.BlockQuickReversal && dir == b.heading.Opposite() {
		return false
	}
	b.direction = dir
	return true
}
