// Package memory provides the in-process session store. Negotiation sessions
// are short-lived working state, not records; they live and die with the
// process.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aeroxpay/credit-service/internal/domain/model"
)

// SessionStore keeps negotiation sessions keyed by company ID. Each key has
// its own lock, so turns for one company are strictly serialized while
// different companies proceed in parallel.
type SessionStore struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu      sync.Mutex
	session *model.NegotiationSession
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{entries: make(map[string]*entry)}
}

func (s *SessionStore) entryFor(companyID string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[companyID]
	if !ok {
		e = &entry{}
		s.entries[companyID] = e
	}
	return e
}

// Update runs fn under the key's lock and persists the session it returns.
// fn receives nil when no session exists for the key.
// It implements port.SessionStore.
func (s *SessionStore) Update(
	ctx context.Context,
	companyID string,
	fn func(current *model.NegotiationSession) (model.NegotiationSession, error),
) (model.NegotiationSession, error) {
	if err := ctx.Err(); err != nil {
		return model.NegotiationSession{}, err
	}

	e := s.entryFor(companyID)
	e.mu.Lock()
	defer e.mu.Unlock()

	var current *model.NegotiationSession
	if e.session != nil {
		copied := *e.session
		current = &copied
	}
	next, err := fn(current)
	if err != nil {
		return model.NegotiationSession{}, err
	}
	stored := next.WithoutEvents()
	e.session = &stored
	return next, nil
}

// Find returns the session for the key.
// It implements port.SessionStore.
func (s *SessionStore) Find(_ context.Context, companyID string) (model.NegotiationSession, error) {
	s.mu.Lock()
	e, ok := s.entries[companyID]
	s.mu.Unlock()
	if !ok {
		return model.NegotiationSession{}, fmt.Errorf("%w: company %s", model.ErrSessionNotFound, companyID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return model.NegotiationSession{}, fmt.Errorf("%w: company %s", model.ErrSessionNotFound, companyID)
	}
	return *e.session, nil
}

// Reset removes the session for the key. Missing sessions are not an error.
// It implements port.SessionStore.
func (s *SessionStore) Reset(_ context.Context, companyID string) error {
	s.mu.Lock()
	e, ok := s.entries[companyID]
	if ok {
		delete(s.entries, companyID)
	}
	s.mu.Unlock()
	if !ok {
		return nil
	}

	// Wait for any in-flight turn before dropping the session.
	e.mu.Lock()
	e.session = nil
	e.mu.Unlock()
	return nil
}
