// Package game holds the board contents and rules of a single round of snake.
package game

import (
	"math/rand"
	"time"

	"github.com/golang/glog"
)

// Default tick timing.
const (
	DefaultBaseInterval = 250 * time.Millisecond
	DefaultStep         = 10 * time.Millisecond
	DefaultMinInterval  = 50 * time.Millisecond
)

// Options controls tick timing. Zero fields take the defaults.
type Options struct {
	// BaseInterval is the tick interval at round start.
	BaseInterval time.Duration
	// Step is subtracted from the interval on every feast.
	Step time.Duration
	// MinInterval is the floor for the interval.
	MinInterval time.Duration
}

func (o Options) withDefaults() Options {
	if o.BaseInterval <= 0 {
		o.BaseInterval = DefaultBaseInterval
	}
	if o.Step <= 0 {
		o.Step = DefaultStep
	}
	if o.MinInterval <= 0 {
		o.MinInterval = DefaultMinInterval
	}
	if o.MinInterval > o.BaseInterval {
		o.MinInterval = o.BaseInterval
	}
	return o
}

// State is the single source of truth for one round. It is not safe for
// concurrent use; the loop owns it.
type State struct {
	opts Options
	rng  *rand.Rand

	width  int
	height int
	walls  WallMode

	// snake is head first, tail last.
	snake    []Position
	food     Position
	heading  Heading
	interval time.Duration
	status   Status
}

// New returns a State that has not started a round yet. Call Initialize
// before Advance.
func New(opts Options, rng *rand.Rand) *State {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &State{
		opts:   opts.withDefaults(),
		rng:    rng,
		status: GameOver,
	}
}

// Initialize resets the board for a new round: a single segment in the
// middle of the board heading left, food on a free cell and the base
// interval.
func (s *State) Initialize(width, height int, walls WallMode) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	s.width = width
	s.height = height
	s.walls = walls
	s.snake = []Position{{width / 2, height / 2}}
	s.heading = Left
	s.interval = s.opts.BaseInterval
	s.status = Running
	if food, ok := s.placeFood(); ok {
		s.food = food
	} else {
		// A 1x1 board has no room for food.
		s.status = Cleared
	}
	glog.V(2).Infof("Initialized %dx%d walls=%v snake=%v food=%v", width, height, walls, s.snake, s.food)
}

// SetDirection changes the heading used by the next Advance. A request for
// the opposite of the current heading is ignored, as is any request once
// the round is over. Reports whether the heading was accepted.
func (s *State) SetDirection(h Heading) bool {
	if s.status != Running || h < Up || h > Right {
		return false
	}
	if h == s.heading.Opposite() {
		return false
	}
	s.heading = h
	return true
}

// Advance moves the snake one cell along the current heading and resolves
// walls, self collision and feasting. In a terminal state it returns the
// terminal outcome without changing anything.
func (s *State) Advance() Result {
	switch s.status {
	case GameOver:
		return Result{Outcome: Collision, Length: len(s.snake)}
	case Cleared:
		return Result{Outcome: BoardFull, Length: len(s.snake)}
	}

	head, ok := s.wallCheck(s.heading.step(s.snake[0]))
	if !ok {
		glog.V(2).Infof("Hit wall heading %v from %v", s.heading, s.snake[0])
		s.status = GameOver
		return Result{Outcome: Collision, Length: len(s.snake)}
	}
	// Compare against the whole body before the tail moves, so running into
	// the cell the tail is about to leave still counts.
	if s.Occupied(head) {
		glog.V(2).Infof("Hit self at %v", head)
		s.status = GameOver
		return Result{Outcome: Collision, Length: len(s.snake)}
	}

	// Save the tail so that if the snake ate food we can append the tail to
	// grow by 1 unit.
	tail := s.snake[len(s.snake)-1]
	for i := len(s.snake) - 1; i > 0; i-- {
		s.snake[i] = s.snake[i-1]
	}
	s.snake[0] = head

	if head != s.food {
		return Result{Outcome: Moved, Length: len(s.snake)}
	}

	s.snake = append(s.snake, tail)
	s.interval -= s.opts.Step
	if s.interval < s.opts.MinInterval {
		s.interval = s.opts.MinInterval
	}
	food, ok := s.placeFood()
	if !ok {
		s.status = Cleared
		return Result{Outcome: BoardFull, Length: len(s.snake)}
	}
	s.food = food
	glog.V(2).Infof("Ate food at %v, new food %v, interval %v", head, food, s.interval)
	return Result{Outcome: Fed, Length: len(s.snake)}
}

// wallCheck applies the wall mode to a candidate head. It returns false when
// a solid wall was hit.
func (s *State) wallCheck(p Position) (Position, bool) {
	inside := p.X >= 0 && p.Y >= 0 && p.X < s.width && p.Y < s.height
	if inside {
		return p, true
	}
	if s.walls == Solid {
		return p, false
	}
	p.X = ((p.X % s.width) + s.width) % s.width
	p.Y = ((p.Y % s.height) + s.height) % s.height
	return p, true
}

// Occupied reports whether any snake segment is on p.
func (s *State) Occupied(p Position) bool {
	for _, seg := range s.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Snake returns a copy of the body, head first.
func (s *State) Snake() []Position {
	out := make([]Position, len(s.snake))
	copy(out, s.snake)
	return out
}

// Head returns the head segment.
func (s *State) Head() Position {
	if len(s.snake) == 0 {
		return Position{}
	}
	return s.snake[0]
}

func (s *State) Len() int                { return len(s.snake) }
func (s *State) Food() Position          { return s.food }
func (s *State) Heading() Heading        { return s.heading }
func (s *State) Interval() time.Duration { return s.interval }
func (s *State) Status() Status          { return s.status }
func (s *State) Width() int              { return s.width }
func (s *State) Height() int             { return s.height }
func (s *State) Walls() WallMode         { return s.walls }

// Options returns the timing options in effect.
func (s *State) Options() Options { return s.opts }
