// Package port defines the outbound interfaces the credit domain depends on.
// Implementations live in infrastructure; the domain only sees these
// contracts.
package port

import (
	"context"

	"github.com/aeroxpay/credit-service/internal/domain/event"
	"github.com/aeroxpay/credit-service/internal/domain/model"
)

// ScoreProvider fetches the risk score packet for a booking request from the
// upstream risk model. Implementations must respect context cancellation;
// callers fail closed when no packet can be obtained.
type ScoreProvider interface {
	GetScores(ctx context.Context, req model.BookingRequest) (model.ScorePacket, error)
}

// MessageComposer renders customer-facing text. Composition is presentation
// only: every numeric term in the rendered output is taken verbatim from the
// structures passed in, never invented by the composer.
type MessageComposer interface {
	// ComposeOptionsMessage renders the message presenting a generated
	// option set.
	ComposeOptionsMessage(
		ctx context.Context,
		req model.BookingRequest,
		scores model.ScorePacket,
		options []model.TermOption,
	) (model.CustomerMessage, error)

	// ComposeNegotiationReply renders the reply for one negotiation turn.
	ComposeNegotiationReply(
		ctx context.Context,
		session model.NegotiationSession,
		turn model.TurnRecord,
	) (string, error)
}

// EventPublisher pushes domain events to the message bus.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
	Close() error
}

// SessionStore holds negotiation sessions keyed by company ID.
type SessionStore interface {
	// Update runs fn under the key's lock, serializing concurrent
	// submissions for the same company. fn receives nil when no session
	// exists; the session it returns is persisted. The stored result is
	// returned to the caller.
	Update(
		ctx context.Context,
		companyID string,
		fn func(current *model.NegotiationSession) (model.NegotiationSession, error),
	) (model.NegotiationSession, error)

	// Find returns the session for the key, or ErrSessionNotFound.
	Find(ctx context.Context, companyID string) (model.NegotiationSession, error)

	// Reset removes the session for the key. Resetting a missing session
	// is not an error.
	Reset(ctx context.Context, companyID string) error
}
