package game

import "fmt"

// Position is a cell on the board. x, y coordinate system starting from 0, 0
// at the upper-left corner.
type Position struct {
	X int
	Y int
}

// Heading is the direction applied on the next tick.
type Heading int

const (
	Up Heading = iota
	Down
	Left
	Right
)

// Opposite returns the reverse of h.
func (h Heading) Opposite() Heading {
	switch h {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

func (h Heading) String() string {
	switch h {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Heading(%d)", int(h))
}

// step returns the position one cell from p in direction h, without any
// boundary handling.
func (h Heading) step(p Position) Position {
	switch h {
	case Up:
		p.Y--
	case Down:
		p.Y++
	case Left:
		p.X--
	case Right:
		p.X++
	}
	return p
}

// WallMode decides what happens when the head crosses the board edge.
type WallMode int

const (
	// Solid ends the round on boundary crossing.
	Solid WallMode = iota
	// Wrap teleports the head to the opposite edge.
	Wrap
)

func (w WallMode) String() string {
	if w == Wrap {
		return "wrap"
	}
	return "solid"
}

// ParseWallMode accepts "solid" or "wrap".
func ParseWallMode(s string) (WallMode, error) {
	switch s {
	case "solid":
		return Solid, nil
	case "wrap":
		return Wrap, nil
	}
	return Solid, fmt.Errorf("unknown wall mode %q, want solid or wrap", s)
}

// Status is the round's lifecycle state.
type Status int

const (
	Running Status = iota
	// GameOver is entered on collision. Only Initialize leaves it.
	GameOver
	// Cleared is entered when the snake fills the board and no cell is left
	// for food. Terminal like GameOver.
	Cleared
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case GameOver:
		return "game over"
	case Cleared:
		return "cleared"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Outcome describes what a single Advance did.
type Outcome int

const (
	Moved Outcome = iota
	Fed
	Collision
	BoardFull
)

// Terminal reports whether the outcome ends the round.
func (o Outcome) Terminal() bool {
	return o == Collision || o == BoardFull
}

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case Fed:
		return "fed"
	case Collision:
		return "collision"
	case BoardFull:
		return "board full"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Result is returned by Advance.
type Result struct {
	Outcome Outcome
	// Length is the snake length after the tick.
	Length int
}
