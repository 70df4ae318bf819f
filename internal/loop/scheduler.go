package loop

import "time"

// Scheduler delivers one tick after a delay. Scheduling again replaces the
// pending tick, so at most one tick is ever outstanding.
type Scheduler interface {
	// Schedule arranges for C to fire once after d, cancelling any pending tick.
	Schedule(d time.Duration)
	// Cancel drops the pending tick, if any.
	Cancel()
	// C returns the channel for the pending tick. It is nil when nothing is
	// scheduled, so a select on it blocks forever.
	C() <-chan time.Time
}

// TimerScheduler is a Scheduler backed by a single time.Timer.
type TimerScheduler struct {
	t *time.Timer
}

// NewTimerScheduler returns an idle TimerScheduler.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{}
}

func (s *TimerScheduler) Schedule(d time.Duration) {
	s.Cancel()
	s.t = time.NewTimer(d)
}

func (s *TimerScheduler) Cancel() {
	if s.t == nil {
		return
	}
	if !s.t.Stop() {
		// Drain a tick that fired but was never received.
		select {
		case <-s.t.C:
		default:
		}
	}
	s.t = nil
}

func (s *TimerScheduler) C() <-chan time.Time {
	if s.t == nil {
		return nil
	}
	return s.t.C
}
