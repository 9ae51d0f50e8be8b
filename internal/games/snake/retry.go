package snake

// DefaultMaxNG is the default number of collisions allowed per game.
const DefaultMaxNG = 10

// RetryOutcome is the result of recording a collision.
type RetryOutcome struct {
	Terminal  bool
	Remaining int // retries left; zero when Terminal
}

// RetryPolicy counts collisions and decides when the game is over.
type RetryPolicy struct {
	count int
	max   int
}

// NewRetryPolicy creates a policy allowing max collisions. Panics when max is
// not positive.
func NewRetryPolicy(max int) *RetryPolicy {
	if max <= 0 {
		panic("snake: max retries must be positive")
	}
	return &RetryPolicy{max: max}
}

// OnCollision records one collision.
func (p *RetryPolicy) OnCollision() RetryOutcome {
	if p.count < p.max {
		p.count++
	}
	if p.count >= p.max {
		return RetryOutcome{Terminal: true}
	}
	return RetryOutcome{Remaining: p.max - p.count}
}

// Reset zeroes the counter for a fresh game.
func (p *RetryPolicy) Reset() {
	p.count = 0
}

// Count returns the number of collisions recorded.
func (p *RetryPolicy) Count() int {
	return p.count
}

// Max returns the collision limit.
func (p *RetryPolicy) Max() int {
	return p.max
}

// Exhausted reports whether the limit has been reached.
func (p *RetryPolicy) Exhausted() bool {
	return p.count >= p.max
}
