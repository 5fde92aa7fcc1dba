// ABOUTME: Per-caller shift state machine: signed out or on shift as one engineer
// ABOUTME: The on-shift engineer is the only attribution used by log writes
package session

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	apperrors "github.com/notemma/notemma/internal/errors"
)

// State is the session's position in the shift lifecycle.
type State int

const (
	SignedOut State = iota
	OnShift
)

func (s State) String() string {
	if s == OnShift {
		return "on-shift"
	}
	return "signed-out"
}

// Session holds who is currently acting for one caller. It lives only in
// memory; a process restart always starts signed out.
type Session struct {
	id     string
	roster Roster

	mu       sync.Mutex
	engineer string
	started  time.Time
}

// New creates a signed-out session checked against roster.
func New(roster Roster) *Session {
	return &Session{
		id:     uuid.NewString(),
		roster: roster,
	}
}

// ID identifies this session in logs and to remote callers.
func (s *Session) ID() string {
	return s.id
}

// StartShift signs the engineer in. A rejected attempt leaves the session
// signed out and returns an auth.invalid error.
func (s *Session) StartShift(name, pin string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engineer != "" {
		return apperrors.New(apperrors.CodeSessionActive, s.engineer+" is already on shift, finish the shift first")
	}
	if !s.roster.Check(name, pin) {
		log.Debug("session: sign-in rejected", "session", s.id, "name", name)
		return apperrors.AuthInvalid()
	}

	s.engineer = name
	s.started = time.Now()
	log.Debug("session: shift started", "session", s.id, "engineer", name)
	return nil
}

// FinishShift signs out. It always succeeds, including when already signed out.
func (s *Session) FinishShift() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engineer != "" {
		log.Debug("session: shift finished", "session", s.id, "engineer", s.engineer)
	}
	s.engineer = ""
	s.started = time.Time{}
}

// State reports the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engineer == "" {
		return SignedOut
	}
	return OnShift
}

// Engineer returns the on-shift engineer and whether one is signed in.
func (s *Session) Engineer() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engineer, s.engineer != ""
}

// Started returns when the current shift began, zero when signed out.
func (s *Session) Started() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Require returns the on-shift engineer, or an auth.required error naming
// the operation that was refused.
func (s *Session) Require(operation string) (string, error) {
	engineer, ok := s.Engineer()
	if !ok {
		return "", apperrors.AuthRequired(operation)
	}
	return engineer, nil
}
