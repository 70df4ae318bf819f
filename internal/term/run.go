package term

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/gdamore/tcell"
	"github.com/golang/glog"

	"snakegame/internal/config"
	"snakegame/internal/game"
	"snakegame/internal/loop"
)

// Run plays on the controlling terminal until the player quits or ctx is
// cancelled. Returns an error if the screen can't be created or is too small
// for the board.
func Run(ctx context.Context, cfg config.Config, walls *config.WallSwitch, rng *rand.Rand) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("problem creating screen: %v", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("init problem: %v", err)
	}
	defer s.Fini()
	return play(ctx, s, cfg, walls, rng)
}

// play runs the game on an initialised screen.
func play(ctx context.Context, s tcell.Screen, cfg config.Config, walls *config.WallSwitch, rng *rand.Rand) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	needCols, needRows := Size(cfg.Width, cfg.Height)
	if cols, rows := s.Size(); cols < needCols || rows < needRows {
		return fmt.Errorf("terminal is %dx%d, a %dx%d board needs %dx%d", cols, rows, cfg.Width, cfg.Height, needCols, needRows)
	}
	s.HideCursor()

	ui := NewUI(s, walls, cfg.Width, cfg.Height)
	l := loop.New(game.New(cfg.GameOptions(), rng), loop.Options{
		Scheduler: loop.NewTimerScheduler(),
		Round:     ui,
		Renderer:  ui,
		Score:     ui,
		GameOver:  ui,
		Walls:     walls.Mode,
		Width:     cfg.Width,
		Height:    cfg.Height,
	})

	events := make(chan loop.Event)
	go poll(ctx, cancel, s, ui, events)
	return l.Run(ctx, events)
}

// poll reads key presses and forwards turns and restarts to the loop. It
// returns when the screen is finalised or ctx is done.
func poll(ctx context.Context, quit context.CancelFunc, s tcell.Screen, ui *UI, events chan<- loop.Event) {
	for {
		ev := s.PollEvent()
		if ev == nil {
			return
		}
		e, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		a, h := mapKey(e)
		switch a {
		case actionNone:
			glog.V(2).Infof("Ignored key %v", e.Name())
			continue
		case actionQuit:
			quit()
			return
		case actionToggleWalls:
			glog.V(1).Infof("Walls next round: %v", ui.ToggleWalls())
			continue
		}
		le, _ := toEvent(a, h)
		select {
		case events <- le:
		case <-ctx.Done():
			return
		}
	}
}
