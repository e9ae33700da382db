// Package resttimer is the countdown shown between sets.
//
// Timer holds the state and is advanced one second per Tick. Driver supplies
// the one-second cadence; its lifetime is bound to a context so closing the
// workout view stops it.
package resttimer

import (
	"sync"

	"github.com/aurenz-max/LiftTrack/internal/domain"
)

// Timer is absent until started. After the countdown reaches zero it stays
// visible as expired until it is stopped or started again.
type Timer struct {
	mu      sync.Mutex
	state   *domain.RestTimerState
	started chan struct{}
}

func New() *Timer {
	return &Timer{started: make(chan struct{}, 1)}
}

// Start replaces any running or expired countdown. Non-positive durations are ignored.
func (t *Timer) Start(seconds int) bool {
	if seconds <= 0 {
		return false
	}
	t.mu.Lock()
	t.state = &domain.RestTimerState{Running: true, Seconds: seconds, Duration: seconds}
	t.mu.Unlock()

	select {
	case t.started <- struct{}{}:
	default:
	}
	return true
}

// Tick advances the countdown by one second and reports whether this tick
// ended it. It does nothing when the timer is absent or not running.
func (t *Timer) Tick() (expired bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == nil || !t.state.Running {
		return false
	}
	if t.state.Seconds <= 1 {
		t.state.Seconds = 0
		t.state.Running = false
		return true
	}
	t.state.Seconds--
	return false
}

// Stop dismisses the timer.
func (t *Timer) Stop() {
	t.mu.Lock()
	t.state = nil
	t.mu.Unlock()
}

func (t *Timer) State() (domain.RestTimerState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == nil {
		return domain.RestTimerState{}, false
	}
	return *t.state, true
}

func (t *Timer) Running() bool {
	s, ok := t.State()
	return ok && s.Running
}

func (t *Timer) Expired() bool {
	s, ok := t.State()
	return ok && s.Expired()
}

// Started is signalled on every successful Start.
func (t *Timer) Started() <-chan struct{} {
	return t.started
}
