package service

import "time"

// SetClock replaces the clock of a service built by one of the constructors.
func SetClock(svc any, now func() time.Time) {
	switch s := svc.(type) {
	case *sessionService:
		s.now = now
	case *workoutService:
		s.now = now
	case *historyService:
		s.now = now
	case *authService:
		s.now = now
	}
}
