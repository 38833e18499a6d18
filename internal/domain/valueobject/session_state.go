package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// SessionState – immutable value object
// ---------------------------------------------------------------------------

// SessionState is the lifecycle stage of a negotiation session.
type SessionState struct {
	value string
}

const (
	sessionStateOpen      = "OPEN"
	sessionStateAgreed    = "AGREED"
	sessionStateEscalated = "ESCALATED"
)

var (
	SessionStateOpen      = SessionState{value: sessionStateOpen}
	SessionStateAgreed    = SessionState{value: sessionStateAgreed}
	SessionStateEscalated = SessionState{value: sessionStateEscalated}
)

var validSessionStates = map[string]SessionState{
	sessionStateOpen:      SessionStateOpen,
	sessionStateAgreed:    SessionStateAgreed,
	sessionStateEscalated: SessionStateEscalated,
}

// NewSessionState creates a SessionState from a raw string.
func NewSessionState(s string) (SessionState, error) {
	v, ok := validSessionStates[s]
	if !ok {
		return SessionState{}, fmt.Errorf("invalid session state: %q", s)
	}
	return v, nil
}

// String returns the string representation of the state.
func (s SessionState) String() string { return s.value }

// IsZero returns true if the state has not been initialised.
func (s SessionState) IsZero() bool { return s.value == "" }

// Equal returns true when both states carry the same value.
func (s SessionState) Equal(other SessionState) bool { return s.value == other.value }

// IsTerminal reports whether the session can accept further rounds.
func (s SessionState) IsTerminal() bool {
	return s.value == sessionStateAgreed || s.value == sessionStateEscalated
}

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrSessionTerminal = errors.New("negotiation session is terminal")
)
