package term

import (
	"github.com/gdamore/tcell"

	"snakegame/internal/game"
	"snakegame/internal/loop"
)

// action is what a key press asks for.
type action int

const (
	actionNone action = iota
	actionTurn
	actionRestart
	actionToggleWalls
	actionQuit
)

var directions = map[tcell.Key]game.Heading{
	tcell.KeyDown:  game.Down,
	tcell.KeyUp:    game.Up,
	tcell.KeyLeft:  game.Left,
	tcell.KeyRight: game.Right,
}

var runeDirections = map[rune]game.Heading{
	'j': game.Down,
	'k': game.Up,
	'h': game.Left,
	'l': game.Right,
}

// mapKey translates a key press. Keys without a binding map to actionNone.
func mapKey(e *tcell.EventKey) (action, game.Heading) {
	if h, ok := directions[e.Key()]; ok {
		return actionTurn, h
	}
	switch e.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return actionQuit, 0
	case tcell.KeyEnter:
		return actionRestart, 0
	case tcell.KeyRune:
		r := e.Rune()
		if h, ok := runeDirections[r]; ok {
			return actionTurn, h
		}
		switch r {
		case ' ':
			return actionRestart, 0
		case 't':
			return actionToggleWalls, 0
		case 'q':
			return actionQuit, 0
		}
	}
	return actionNone, 0
}

// toEvent returns the loop event for a turn or restart action.
func toEvent(a action, h game.Heading) (loop.Event, bool) {
	switch a {
	case actionTurn:
		return loop.Event{Kind: loop.Turn, Heading: h}, true
	case actionRestart:
		return loop.Event{Kind: loop.Restart}, true
	}
	return loop.Event{}, false
}
