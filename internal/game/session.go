// internal/game/session.go
//
// Shared session plumbing for the engines.
// Responsibilities:
//   - Identity (UUID) and kind of a session.
//   - Serializing transitions: every input event and every delayed transition
//     runs under the session mutex, so one transition completes before the next starts.
//   - Liveness: Dispose and Restart invalidate delayed transitions scheduled earlier.

package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// session is embedded by every engine.
type session struct {
	mu       sync.Mutex
	id       string
	kind     Kind
	sched    Scheduler
	now      func() time.Time
	active   time.Time
	epoch    uint64
	disposed bool
}

func newSession(kind Kind, sched Scheduler) session {
	if sched == nil {
		sched = TimerScheduler{}
	}
	return session{
		id:     uuid.NewString(),
		kind:   kind,
		sched:  sched,
		now:    time.Now,
		active: time.Now(),
	}
}

// ID implements Session.
func (s *session) ID() string { return s.id }

// Kind implements Session.
func (s *session) Kind() Kind { return s.kind }

// LastActive implements Session.
func (s *session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Dispose implements Session.
func (s *session) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disposed = true
}

// Disposed reports whether Dispose was called.
func (s *session) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// touch records input activity. Caller holds mu.
func (s *session) touch() { s.active = s.now() }

// reset invalidates all pending delayed transitions. Caller holds mu.
func (s *session) reset() {
	s.epoch++
	s.touch()
}

// later schedules fn to run after d under the session lock. fn is skipped if the
// session was disposed or reset in the meantime. Caller holds mu.
func (s *session) later(d time.Duration, fn func()) {
	epoch := s.epoch
	s.sched.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.disposed || s.epoch != epoch {
			return
		}
		fn()
	})
}
