package loop

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"snakegame/internal/game"
)

// fakeScheduler records every Schedule call and fires only when the test
// sends on fire.
type fakeScheduler struct {
	delays  []time.Duration
	cancels int
	pending bool
	fire    chan time.Time
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{fire: make(chan time.Time)}
}

func (f *fakeScheduler) Schedule(d time.Duration) {
	f.delays = append(f.delays, d)
	f.pending = true
}

func (f *fakeScheduler) Cancel() {
	f.cancels++
	f.pending = false
}

func (f *fakeScheduler) C() <-chan time.Time {
	if !f.pending {
		return nil
	}
	return f.fire
}

type frame struct {
	snake []game.Position
	food  game.Position
}

type recorder struct {
	// calls records the order of collaborator calls.
	calls  []string
	walls  []game.WallMode
	frames []frame
	scores []int
	over   []Summary
}

func (r *recorder) RoundStarted(round string, walls game.WallMode) {
	r.calls = append(r.calls, "round")
	r.walls = append(r.walls, walls)
}

func (r *recorder) Render(snake []game.Position, food game.Position, width, height int) {
	r.calls = append(r.calls, "render")
	r.frames = append(r.frames, frame{snake, food})
}

func (r *recorder) Score(length int) {
	r.calls = append(r.calls, "score")
	r.scores = append(r.scores, length)
}

func (r *recorder) GameOver(s Summary) {
	r.calls = append(r.calls, "over")
	r.over = append(r.over, s)
}

func newTestLoop(walls game.WallMode) (*Loop, *fakeScheduler, *recorder) {
	sched := newFakeScheduler()
	rec := &recorder{}
	st := game.New(game.Options{}, rand.New(rand.NewSource(1)))
	l := New(st, Options{
		Scheduler: sched,
		Round:     rec,
		Renderer:  rec,
		Score:     rec,
		GameOver:  rec,
		Walls:     func() game.WallMode { return walls },
		Width:     16,
		Height:    16,
	})
	return l, sched, rec
}

func TestStart(t *testing.T) {
	l, sched, rec := newTestLoop(game.Wrap)
	l.Start()

	if !l.Running() {
		t.Fatal("expected running after start")
	}
	if l.Round() == "" {
		t.Error("expected a round id")
	}
	if l.State().Walls() != game.Wrap {
		t.Errorf("expected walls from config, got %v", l.State().Walls())
	}
	if len(sched.delays) != 1 || sched.delays[0] != game.DefaultBaseInterval {
		t.Errorf("expected one tick scheduled at base interval, got %v", sched.delays)
	}
	if len(rec.frames) != 1 {
		t.Errorf("expected initial frame, got %d", len(rec.frames))
	}
	if len(rec.scores) != 1 || rec.scores[0] != 1 {
		t.Errorf("expected score reset to 1, got %v", rec.scores)
	}
	if len(rec.calls) < 2 || rec.calls[0] != "round" || rec.calls[1] != "render" {
		t.Errorf("expected round notice before the first frame, got %v", rec.calls)
	}
	if len(rec.walls) != 1 || rec.walls[0] != game.Wrap {
		t.Errorf("expected round notice with wrap walls, got %v", rec.walls)
	}
}

func TestRoundNoticeCarriesWallsReadAtStart(t *testing.T) {
	sched := newFakeScheduler()
	rec := &recorder{}
	mode := game.Solid
	l := New(game.New(game.Options{}, rand.New(rand.NewSource(1))), Options{
		Scheduler: sched,
		Round:     rec,
		Renderer:  rec,
		Walls:     func() game.WallMode { return mode },
		Width:     16,
		Height:    16,
	})
	l.Start()
	mode = game.Wrap
	if rec.walls[0] != game.Solid || l.State().Walls() != game.Solid {
		t.Errorf("expected solid round, got notice=%v state=%v", rec.walls[0], l.State().Walls())
	}
	for i := 0; i < 16 && l.Running(); i++ {
		l.Tick()
	}
	l.handle(Event{Kind: Restart})
	if len(rec.walls) != 2 || rec.walls[1] != game.Wrap || l.State().Walls() != game.Wrap {
		t.Errorf("expected wrap on the next round, got notices=%v state=%v", rec.walls, l.State().Walls())
	}
}

func TestRequestAppliedAtNextTick(t *testing.T) {
	l, _, _ := newTestLoop(game.Wrap)
	l.Start()
	head := l.State().Head()

	// Latest request wins.
	l.Request(game.Down)
	l.Request(game.Up)
	if l.State().Heading() != game.Left {
		t.Fatal("request must not change heading before the tick")
	}
	l.Tick()

	if l.State().Heading() != game.Up {
		t.Errorf("expected heading up, got %v", l.State().Heading())
	}
	if got, want := l.State().Head(), (game.Position{X: head.X, Y: head.Y - 1}); got != want {
		t.Errorf("expected head %v, got %v", want, got)
	}
}

func TestReversalRequestIgnored(t *testing.T) {
	l, _, _ := newTestLoop(game.Wrap)
	l.Start()
	l.Request(game.Right)
	l.Tick()
	if l.State().Heading() != game.Left {
		t.Errorf("expected heading to stay left, got %v", l.State().Heading())
	}
}

func TestTickReschedulesWithCurrentInterval(t *testing.T) {
	l, sched, rec := newTestLoop(game.Wrap)
	l.Start()

	// Steer straight at the food until the first feast.
	for i := 0; i < 200 && len(rec.scores) < 2; i++ {
		head, food := l.State().Head(), l.State().Food()
		switch {
		case food.X < head.X && l.State().Heading() != game.Right:
			l.Request(game.Left)
		case food.X > head.X && l.State().Heading() != game.Left:
			l.Request(game.Right)
		case food.Y < head.Y:
			l.Request(game.Up)
		case food.Y > head.Y:
			l.Request(game.Down)
		}
		l.Tick()
	}
	if len(rec.scores) < 2 || rec.scores[1] != 2 {
		t.Fatalf("expected a feast reporting length 2, got %v", rec.scores)
	}
	last := sched.delays[len(sched.delays)-1]
	if want := game.DefaultBaseInterval - game.DefaultStep; last != want {
		t.Errorf("expected next tick after %v, got %v", want, last)
	}
}

func TestCollisionStopsLoop(t *testing.T) {
	l, sched, rec := newTestLoop(game.Solid)
	l.Start()

	// Heading left from (8,8) on a 16 wide board hits the wall on tick 9,
	// unless it eats on the way; either way it ends within 16 ticks.
	for i := 0; i < 16 && l.Running(); i++ {
		l.Tick()
	}
	if l.Running() {
		t.Fatal("expected the round to end at the wall")
	}
	if len(rec.over) != 1 {
		t.Fatalf("expected one game over, got %d", len(rec.over))
	}
	if rec.over[0].Round != l.Round() || rec.over[0].Cleared {
		t.Errorf("unexpected summary %+v", rec.over[0])
	}
	if sched.pending {
		t.Error("expected no tick pending after game over")
	}

	frames := len(rec.frames)
	l.Request(game.Up)
	l.Tick()
	if len(rec.frames) != frames || len(rec.over) != 1 {
		t.Error("expected ticks after game over to be inert")
	}
}

func TestRestartOnlyAfterGameOver(t *testing.T) {
	l, _, _ := newTestLoop(game.Solid)
	l.Start()
	round := l.Round()

	l.handle(Event{Kind: Restart})
	if l.Round() != round {
		t.Fatal("restart during a running round must be ignored")
	}

	for i := 0; i < 16 && l.Running(); i++ {
		l.Tick()
	}
	l.handle(Event{Kind: Turn, Heading: game.Up})
	if l.requested != nil {
		t.Error("expected turn to be ignored after game over")
	}
	l.handle(Event{Kind: Restart})
	if !l.Running() || l.Round() == round {
		t.Error("expected a fresh round after restart")
	}
	if l.State().Len() != 1 {
		t.Errorf("expected length 1, got %d", l.State().Len())
	}
}

func TestRun(t *testing.T) {
	l, sched, rec := newTestLoop(game.Wrap)
	events := make(chan Event)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx, events) }()

	events <- Event{Kind: Turn, Heading: game.Up}
	sched.fire <- time.Now()
	// An unbuffered send on events only completes once the previous tick
	// finished.
	events <- Event{Kind: Turn, Heading: game.Left}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if len(rec.frames) != 2 {
		t.Fatalf("expected start frame and one tick frame, got %d", len(rec.frames))
	}
	start, next := rec.frames[0].snake[0], rec.frames[1].snake[0]
	if next.X != start.X || next.Y != start.Y-1 {
		t.Errorf("expected move up from %v, got %v", start, next)
	}
}
