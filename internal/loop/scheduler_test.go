package loop

import (
	"testing"
	"time"
)

func TestTimerSchedulerFires(t *testing.T) {
	s := NewTimerScheduler()
	if s.C() != nil {
		t.Fatal("expected nil channel before scheduling")
	}
	s.Schedule(time.Millisecond)
	select {
	case <-s.C():
	case <-time.After(time.Second):
		t.Fatal("tick did not fire")
	}
}

func TestTimerSchedulerReplacesPending(t *testing.T) {
	s := NewTimerScheduler()
	s.Schedule(time.Millisecond)
	first := s.C()
	s.Schedule(time.Hour)
	if s.C() == first {
		t.Fatal("expected a new channel after rescheduling")
	}
	select {
	case <-first:
		t.Fatal("replaced tick fired")
	case <-s.C():
		t.Fatal("rescheduled tick fired early")
	case <-time.After(20 * time.Millisecond):
	}
	s.Cancel()
}

func TestTimerSchedulerCancel(t *testing.T) {
	s := NewTimerScheduler()
	s.Schedule(time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	s.Cancel()
	if s.C() != nil {
		t.Fatal("expected nil channel after cancel")
	}
	// Cancelling twice is fine.
	s.Cancel()
}
