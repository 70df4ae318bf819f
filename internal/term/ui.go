// Package term puts the game on a terminal: it draws the board, shows the
// score and game over banner, and turns key presses into loop events.
package term

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell"

	"snakegame/internal/config"
	"snakegame/internal/game"
	"snakegame/internal/loop"
)

// Each board cell is two columns wide so that it looks square.
const cellWidth = 2

var (
	emptyStyle  = tcell.StyleDefault.Background(tcell.NewRGBColor(0x9a, 0xc5, 0x03)).Foreground(tcell.ColorBlack)
	snakeStyle  = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	headStyle   = tcell.StyleDefault.Background(tcell.ColorDarkGreen).Foreground(tcell.ColorWhite)
	foodStyle   = tcell.StyleDefault.Background(tcell.ColorRed).Foreground(tcell.ColorWhite)
	borderStyle = tcell.StyleDefault
	textStyle   = tcell.StyleDefault
)

// UI draws on a tcell screen. It implements loop.RoundNotifier,
// loop.Renderer, loop.ScoreReporter and loop.GameOverNotifier.
type UI struct {
	s     tcell.Screen
	walls *config.WallSwitch

	mu     sync.Mutex
	width  int
	height int
	length int
	// round is the wall mode of the round on screen.
	round game.WallMode
	over  *loop.Summary
}

var (
	_ loop.RoundNotifier    = (*UI)(nil)
	_ loop.Renderer         = (*UI)(nil)
	_ loop.ScoreReporter    = (*UI)(nil)
	_ loop.GameOverNotifier = (*UI)(nil)
)

// NewUI returns a UI for a width x height board.
func NewUI(s tcell.Screen, walls *config.WallSwitch, width, height int) *UI {
	return &UI{s: s, walls: walls, width: width, height: height, round: walls.Mode()}
}

// Size returns the screen area needed for the board, the border and the two
// text lines below it.
func Size(width, height int) (cols, rows int) {
	return width*cellWidth + 2, height + 4
}

func drawText(s tcell.Screen, x1, y1, x2, y2 int, style tcell.Style, text string) {
	row := y1
	col := x1
	for _, r := range text {
		s.SetContent(col, row, r, nil, style)
		col++
		if col >= x2 {
			row++
			col = x1
		}
		if row > y2 {
			break
		}
	}
}

// clearLine blanks row y from column 0 to the right edge of the screen.
func clearLine(s tcell.Screen, y int) {
	w, _ := s.Size()
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, textStyle)
	}
}

func drawCell(s tcell.Screen, p game.Position, r rune, style tcell.Style) {
	x := 1 + p.X*cellWidth
	s.SetContent(x, 1+p.Y, r, nil, style)
	s.SetContent(x+1, 1+p.Y, ' ', nil, style)
}

func (u *UI) drawBorder() {
	right := u.width*cellWidth + 1
	bottom := u.height + 1
	for x := 1; x < right; x++ {
		u.s.SetContent(x, 0, tcell.RuneHLine, nil, borderStyle)
		u.s.SetContent(x, bottom, tcell.RuneHLine, nil, borderStyle)
	}
	for y := 1; y < bottom; y++ {
		u.s.SetContent(0, y, tcell.RuneVLine, nil, borderStyle)
		u.s.SetContent(right, y, tcell.RuneVLine, nil, borderStyle)
	}
	u.s.SetContent(0, 0, tcell.RuneULCorner, nil, borderStyle)
	u.s.SetContent(right, 0, tcell.RuneURCorner, nil, borderStyle)
	u.s.SetContent(0, bottom, tcell.RuneLLCorner, nil, borderStyle)
	u.s.SetContent(right, bottom, tcell.RuneLRCorner, nil, borderStyle)
}

// Render clears the screen and redraws the whole board.
func (u *UI) Render(snake []game.Position, food game.Position, width, height int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.width, u.height = width, height
	u.s.Clear()
	u.drawBorder()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			drawCell(u.s, game.Position{X: x, Y: y}, ' ', emptyStyle)
		}
	}
	drawCell(u.s, food, 'f', foodStyle)
	for i, p := range snake {
		if i == 0 {
			drawCell(u.s, p, 'S', headStyle)
		} else {
			drawCell(u.s, p, 's', snakeStyle)
		}
	}
	u.drawStatus()
	u.drawBanner()
	u.s.Show()
}

// RoundStarted drops the previous banner and records the walls of the new
// round. The loop renders right after, so nothing is drawn here.
func (u *UI) RoundStarted(round string, walls game.WallMode) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.over = nil
	u.round = walls
	u.length = 1
}

// Score updates the length label.
func (u *UI) Score(length int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.length = length
	u.drawStatus()
	u.drawBanner()
	u.s.Show()
}

// GameOver shows the end of round banner.
func (u *UI) GameOver(sum loop.Summary) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.over = &sum
	u.length = sum.Length
	u.drawStatus()
	u.drawBanner()
	u.s.Show()
}

// ToggleWalls flips the wall switch. The change shows in the status line
// and takes effect at the next round.
func (u *UI) ToggleWalls() game.WallMode {
	mode := u.walls.Toggle()
	u.mu.Lock()
	defer u.mu.Unlock()
	u.drawStatus()
	u.s.Show()
	return mode
}

func (u *UI) drawStatus() {
	y := u.height + 2
	clearLine(u.s, y)
	text := fmt.Sprintf("length %d  walls %v", u.length, u.round)
	if next := u.walls.Mode(); next != u.round {
		text += fmt.Sprintf(" (next round %v)", next)
	}
	text += "  t: toggle walls"
	w, _ := u.s.Size()
	drawText(u.s, 0, y, w, y, textStyle, text)
}

func (u *UI) drawBanner() {
	y := u.height + 3
	clearLine(u.s, y)
	if u.over == nil {
		return
	}
	text := "game over"
	if u.over.Cleared {
		text = "board cleared"
	}
	text += fmt.Sprintf(" at length %d  enter: new round  q: quit", u.over.Length)
	w, _ := u.s.Size()
	drawText(u.s, 0, y, w, y, textStyle, text)
}
