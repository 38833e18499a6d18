package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aeroxpay/credit-service/internal/domain/event"
	"github.com/aeroxpay/credit-service/internal/domain/valueobject"
	pkgevents "github.com/aeroxpay/credit-service/pkg/events"
)

// ---------------------------------------------------------------------------
// NegotiationSession aggregate root
// ---------------------------------------------------------------------------

// TurnRecord is one transcript entry: the counterparty's message and the
// session's numeric response for that round.
type TurnRecord struct {
	Round           int
	CustomerMessage string
	Offer           *Offer
	ExpectedLoss    *decimal.Decimal
	Escalate        bool
	RecordedAt      time.Time
}

// NegotiationSession is the bounded multi-round negotiation state machine.
// The aggregate is immutable; every transition returns a new copy. The
// referenced request, scores and initial options are frozen at creation.
//
// States: Open(round 1..maxRounds) → Agreed | Escalated. Transitions happen
// only through the Record* methods, which refuse terminal sessions.
type NegotiationSession struct {
	id             string
	companyID      string
	round          int
	maxRounds      int
	request        BookingRequest
	scores         ScorePacket
	initialOptions []TermOption
	transcript     []TurnRecord
	state          valueobject.SessionState
	createdAt      time.Time
	updatedAt      time.Time
	collector      pkgevents.EventCollector
}

// NewNegotiationSession opens a session for a negotiate-disposition request.
func NewNegotiationSession(
	request BookingRequest,
	scores ScorePacket,
	initialOptions []TermOption,
	maxRounds int,
	now time.Time,
) (NegotiationSession, error) {
	if request.CompanyID() == "" {
		return NegotiationSession{}, fmt.Errorf("%w: request has no company ID", ErrInvalidInput)
	}
	if maxRounds <= 0 {
		return NegotiationSession{}, fmt.Errorf("%w: max rounds must be positive", ErrInvalidInput)
	}
	if err := scores.Validate(); err != nil {
		return NegotiationSession{}, err
	}

	return NegotiationSession{
		id:             uuid.New().String(),
		companyID:      request.CompanyID(),
		round:          1,
		maxRounds:      maxRounds,
		request:        request,
		scores:         scores,
		initialOptions: initialOptions,
		state:          valueobject.SessionStateOpen,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// guard rejects transitions on terminal or exhausted sessions.
func (s NegotiationSession) guard() error {
	if s.state.IsTerminal() {
		return valueobject.ErrSessionTerminal
	}
	// Defensive double-check; Record* transitions keep round <= maxRounds.
	if s.round > s.maxRounds {
		return fmt.Errorf("%w: round %d past limit %d", valueobject.ErrSessionTerminal, s.round, s.maxRounds)
	}
	return nil
}

// RecordAgreement terminates the session with the counterparty's acceptance
// of the given offer.
func (s NegotiationSession) RecordAgreement(
	customerMessage string,
	offer Offer,
	expectedLoss decimal.Decimal,
	now time.Time,
) (NegotiationSession, error) {
	if err := s.guard(); err != nil {
		return NegotiationSession{}, err
	}

	next := s
	next.transcript = appendTurn(s.transcript, TurnRecord{
		Round:           s.round,
		CustomerMessage: customerMessage,
		Offer:           &offer,
		ExpectedLoss:    &expectedLoss,
		RecordedAt:      now,
	})
	next.state = valueobject.SessionStateAgreed
	next.updatedAt = now
	next.collector.Record(event.NewNegotiationAgreed(
		s.id, s.companyID, s.round,
		offer.UpfrontAmount, offer.SettlementDays, offer.ApprovedAmount,
	))
	return next, nil
}

// RecordCounterOffer records a cap-compliant counter-offer for the current
// round. Before the final round the session stays open and advances; the
// final round terminates it as escalated, carrying the last offer for the
// manual follow-up.
func (s NegotiationSession) RecordCounterOffer(
	customerMessage string,
	offer Offer,
	expectedLoss decimal.Decimal,
	now time.Time,
) (NegotiationSession, error) {
	if err := s.guard(); err != nil {
		return NegotiationSession{}, err
	}

	finalRound := s.round == s.maxRounds

	next := s
	next.transcript = appendTurn(s.transcript, TurnRecord{
		Round:           s.round,
		CustomerMessage: customerMessage,
		Offer:           &offer,
		ExpectedLoss:    &expectedLoss,
		Escalate:        finalRound,
		RecordedAt:      now,
	})
	next.updatedAt = now
	next.collector.Record(event.NewNegotiationRoundCompleted(
		s.id, s.companyID, s.round,
		offer.UpfrontAmount, offer.SettlementDays, offer.ApprovedAmount, expectedLoss,
	))

	if finalRound {
		next.state = valueobject.SessionStateEscalated
		next.collector.Record(event.NewNegotiationEscalated(
			s.id, s.companyID, s.round, "round limit reached without agreement",
		))
	} else {
		next.round = s.round + 1
	}
	return next, nil
}

// RecordEscalation terminates the session because no candidate satisfied
// both the risk cap and the counterparty's stated constraints. No offer is
// attached; the case routes to manual review.
func (s NegotiationSession) RecordEscalation(
	customerMessage, reason string,
	now time.Time,
) (NegotiationSession, error) {
	if err := s.guard(); err != nil {
		return NegotiationSession{}, err
	}

	next := s
	next.transcript = appendTurn(s.transcript, TurnRecord{
		Round:           s.round,
		CustomerMessage: customerMessage,
		Escalate:        true,
		RecordedAt:      now,
	})
	next.state = valueobject.SessionStateEscalated
	next.updatedAt = now
	next.collector.Record(event.NewNegotiationEscalated(s.id, s.companyID, s.round, reason))
	return next, nil
}

// appendTurn copies the transcript so aggregate copies never share backing arrays.
func appendTurn(transcript []TurnRecord, turn TurnRecord) []TurnRecord {
	next := make([]TurnRecord, len(transcript), len(transcript)+1)
	copy(next, transcript)
	return append(next, turn)
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// ID returns the session identifier.
func (s NegotiationSession) ID() string { return s.id }

// CompanyID returns the counterparty key the session is stored under.
func (s NegotiationSession) CompanyID() string { return s.companyID }

// Round returns the current round, 1-based.
func (s NegotiationSession) Round() int { return s.round }

// MaxRounds returns the configured round limit.
func (s NegotiationSession) MaxRounds() int { return s.maxRounds }

// Request returns the frozen originating request.
func (s NegotiationSession) Request() BookingRequest { return s.request }

// Scores returns the frozen score packet.
func (s NegotiationSession) Scores() ScorePacket { return s.scores }

// InitialOptions returns the option set offered before negotiation started.
func (s NegotiationSession) InitialOptions() []TermOption {
	out := make([]TermOption, len(s.initialOptions))
	copy(out, s.initialOptions)
	return out
}

// Transcript returns the ordered turn records.
func (s NegotiationSession) Transcript() []TurnRecord {
	out := make([]TurnRecord, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// State returns the session state.
func (s NegotiationSession) State() valueobject.SessionState { return s.state }

// CreatedAt returns the session creation time.
func (s NegotiationSession) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt returns the last transition time.
func (s NegotiationSession) UpdatedAt() time.Time { return s.updatedAt }

// DomainEvents returns events recorded by transitions on this copy.
func (s NegotiationSession) DomainEvents() []event.DomainEvent {
	return s.collector.Events()
}

// WithoutEvents returns a copy with its recorded events dropped. Stores keep
// this form so events publish exactly once per transition.
func (s NegotiationSession) WithoutEvents() NegotiationSession {
	s.collector = pkgevents.EventCollector{}
	return s
}
