package snake

import (
	"time"

	"golang.org/x/exp/rand"
)

const (
	// Reward is the score gained per food eaten.
	Reward = 10
	// BaseInterval is the tick period of a new session.
	BaseInterval = 100 * time.Millisecond
	// IntervalStep is how much faster the game gets per food eaten.
	IntervalStep = 2 * time.Millisecond
	// MinInterval is the fastest the game gets.
	MinInterval = 50 * time.Millisecond
)

// StartBody is the snake of every new session, head first, heading right.
var StartBody = []Cell{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}}

// Outcome is the result of one Step.
type Outcome int

const (
	Continue Outcome = iota
	Ate
	Died
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Ate:
		return "ate"
	case Died:
		return "died"
	default:
		return "unknown"
	}
}

// Session holds everything one playthrough mutates.
type Session struct {
	Snake    *Snake
	Food     Cell
	HasFood  bool
	Score    int
	Interval time.Duration
	Grid     Grid
	Ticks    int

	rng *rand.Rand
}

// NewSession creates a fresh session on grid with food placed off the snake.
func NewSession(grid Grid, rng *rand.Rand) *Session {
	s := &Session{
		Snake:    NewSnake(StartBody, Right),
		Interval: BaseInterval,
		Grid:     grid,
		rng:      rng,
	}
	s.Food, s.HasFood = PlaceFood(rng, grid.Dimension, s.Snake.occupied())
	return s
}

// Step advances the game by one tick. On Died nothing but the snake's current
// direction changes, so the last board stays available for the game-over screen.
func (s *Session) Step() Outcome {
	head := s.Snake.Advance()
	if !s.Grid.Contains(head) {
		return Died
	}
	if s.Snake.Contains(head) {
		return Died
	}
	s.Ticks++

	if s.HasFood && head == s.Food {
		s.Snake.push(head, true)
		s.Score += Reward
		s.Interval -= IntervalStep
		if s.Interval < MinInterval {
			s.Interval = MinInterval
		}
		s.Food, s.HasFood = PlaceFood(s.rng, s.Grid.Dimension, s.Snake.occupied())
		return Ate
	}

	s.Snake.push(head, false)
	return Continue
}
