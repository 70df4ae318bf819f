// Package loop drives a game.State on a timer and fans the results out to
// the render, score and game-over collaborators.
package loop

import (
	"context"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"

	"snakegame/internal/game"
)

// Renderer draws the board once per tick.
type Renderer interface {
	Render(snake []game.Position, food game.Position, width, height int)
}

// RoundNotifier is told about a new round before its first frame is
// rendered, with the wall mode the round plays under.
type RoundNotifier interface {
	RoundStarted(round string, walls game.WallMode)
}

// ScoreReporter receives the snake length at round start and after every
// feast.
type ScoreReporter interface {
	Score(length int)
}

// GameOverNotifier is told when a round ends.
type GameOverNotifier interface {
	GameOver(Summary)
}

// Summary describes a finished round.
type Summary struct {
	Round  string
	Length int
	// Cleared is set when the snake filled the board.
	Cleared bool
	Elapsed time.Duration
}

// EventKind distinguishes input events.
type EventKind int

const (
	// Turn requests a heading change.
	Turn EventKind = iota
	// Restart starts a new round once the current one is over.
	Restart
)

// Event is an input signal delivered to Run.
type Event struct {
	Kind    EventKind
	Heading game.Heading
}

// Options wires the loop's collaborators. Nil collaborators are skipped.
type Options struct {
	Scheduler Scheduler
	Round     RoundNotifier
	Renderer  Renderer
	Score     ScoreReporter
	GameOver  GameOverNotifier
	// Walls is read once at the start of each round.
	Walls func() game.WallMode
	// Width and Height of the board in cells.
	Width  int
	Height int
}

// Loop owns a game.State and advances it one tick per scheduler fire. All
// methods must be called from a single goroutine; Run is that goroutine in
// production.
type Loop struct {
	state *game.State
	opts  Options

	running   bool
	requested *game.Heading
	round     string
	started   time.Time
}

// New returns a Loop over state. The round is not started until Start.
func New(state *game.State, opts Options) *Loop {
	if opts.Scheduler == nil {
		opts.Scheduler = NewTimerScheduler()
	}
	if opts.Walls == nil {
		opts.Walls = func() game.WallMode { return game.Solid }
	}
	return &Loop{state: state, opts: opts}
}

// Start begins a new round, cancelling any tick still pending from the
// previous one.
func (l *Loop) Start() {
	l.opts.Scheduler.Cancel()
	walls := l.opts.Walls()
	l.state.Initialize(l.opts.Width, l.opts.Height, walls)
	l.requested = nil
	l.round = uuid.NewString()
	l.started = time.Now()
	l.running = l.state.Status() == game.Running
	glog.Infof("Round %s started: %dx%d walls=%v", l.round, l.opts.Width, l.opts.Height, walls)

	if l.opts.Round != nil {
		l.opts.Round.RoundStarted(l.round, walls)
	}
	l.render()
	l.reportScore(l.state.Len())
	if !l.running {
		l.finish(l.state.Status() == game.Cleared)
		return
	}
	l.opts.Scheduler.Schedule(l.state.Interval())
}

// Request buffers a heading for the next tick. Only the latest request
// between two ticks is kept. Ignored while no round is running.
func (l *Loop) Request(h game.Heading) {
	if !l.running {
		return
	}
	l.requested = &h
}

// Running reports whether a round is in progress.
func (l *Loop) Running() bool { return l.running }

// Round returns the id of the current or last round.
func (l *Loop) Round() string { return l.round }

// State returns the underlying game state.
func (l *Loop) State() *game.State { return l.state }

// Tick runs a single step: applies the buffered heading, advances the state
// and notifies the collaborators. The next tick is scheduled with the
// interval as it stands after this step.
func (l *Loop) Tick() game.Result {
	if !l.running {
		return l.state.Advance()
	}
	if l.requested != nil {
		if !l.state.SetDirection(*l.requested) {
			glog.V(2).Infof("Ignored turn %v while heading %v", *l.requested, l.state.Heading())
		}
		l.requested = nil
	}
	res := l.state.Advance()
	glog.V(2).Infof("Tick: %v head=%v len=%d", res.Outcome, l.state.Head(), res.Length)

	switch res.Outcome {
	case game.Collision:
		l.finish(false)
		return res
	case game.BoardFull:
		l.render()
		l.reportScore(res.Length)
		l.finish(true)
		return res
	case game.Fed:
		glog.V(1).Infof("Round %s: feast, length %d, interval %v", l.round, res.Length, l.state.Interval())
		l.render()
		l.reportScore(res.Length)
	default:
		l.render()
	}
	l.opts.Scheduler.Schedule(l.state.Interval())
	return res
}

// Run services ticks and input events until ctx is done. It starts the
// first round itself.
func (l *Loop) Run(ctx context.Context, events <-chan Event) error {
	l.Start()
	defer l.opts.Scheduler.Cancel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-l.opts.Scheduler.C():
			l.Tick()
		case e, ok := <-events:
			if !ok {
				return nil
			}
			l.handle(e)
		}
	}
}

func (l *Loop) handle(e Event) {
	switch e.Kind {
	case Turn:
		l.Request(e.Heading)
	case Restart:
		// Ignored while a round is in progress.
		if !l.running {
			l.Start()
		}
	}
}

func (l *Loop) finish(cleared bool) {
	l.running = false
	l.requested = nil
	l.opts.Scheduler.Cancel()
	sum := Summary{
		Round:   l.round,
		Length:  l.state.Len(),
		Cleared: cleared,
		Elapsed: time.Since(l.started),
	}
	glog.Infof("Round %s over: length=%d cleared=%v after %v", sum.Round, sum.Length, sum.Cleared, sum.Elapsed)
	if l.opts.GameOver != nil {
		l.opts.GameOver.GameOver(sum)
	}
}

func (l *Loop) render() {
	if l.opts.Renderer != nil {
		l.opts.Renderer.Render(l.state.Snake(), l.state.Food(), l.state.Width(), l.state.Height())
	}
}

func (l *Loop) reportScore(length int) {
	if l.opts.Score != nil {
		l.opts.Score.Score(length)
	}
}
