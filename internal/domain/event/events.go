package event

import (
	"github.com/shopspring/decimal"

	"github.com/aeroxpay/credit-service/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Decision events
// ---------------------------------------------------------------------------

// BookingDecisionCompleted is raised after the gate classifies a request.
type BookingDecisionCompleted struct {
	events.BaseEvent
	CompanyID     string          `json:"company_id"`
	Disposition   string          `json:"disposition"`
	RiskCategory  string          `json:"risk_category"`
	IntentScore   float64         `json:"intent_score"`
	CapacityScore float64         `json:"capacity_score"`
	TotalExposure decimal.Decimal `json:"total_exposure"`
	ExpectedLoss  decimal.Decimal `json:"expected_loss"`
	ExceedsCap    bool            `json:"exceeds_cap"`
}

func NewBookingDecisionCompleted(
	requestID, companyID, disposition, riskCategory string,
	intentScore, capacityScore float64,
	totalExposure, expectedLoss decimal.Decimal,
	exceedsCap bool,
) BookingDecisionCompleted {
	return BookingDecisionCompleted{
		BaseEvent:     events.NewBaseEvent("credit.decision.completed", requestID, "BookingRequest"),
		CompanyID:     companyID,
		Disposition:   disposition,
		RiskCategory:  riskCategory,
		IntentScore:   intentScore,
		CapacityScore: capacityScore,
		TotalExposure: totalExposure,
		ExpectedLoss:  expectedLoss,
		ExceedsCap:    exceedsCap,
	}
}

// CreditOptionsGenerated is raised when the optimizer produces a compliant
// option set for a negotiate disposition.
type CreditOptionsGenerated struct {
	events.BaseEvent
	CompanyID    string `json:"company_id"`
	OptionsCount int    `json:"options_count"`
}

func NewCreditOptionsGenerated(requestID, companyID string, optionsCount int) CreditOptionsGenerated {
	return CreditOptionsGenerated{
		BaseEvent:    events.NewBaseEvent("credit.options.generated", requestID, "BookingRequest"),
		CompanyID:    companyID,
		OptionsCount: optionsCount,
	}
}

// ---------------------------------------------------------------------------
// Negotiation events
// ---------------------------------------------------------------------------

// NegotiationRoundCompleted is raised for each round that produced a
// cap-compliant counter-offer.
type NegotiationRoundCompleted struct {
	events.BaseEvent
	CompanyID      string          `json:"company_id"`
	Round          int             `json:"round"`
	UpfrontAmount  decimal.Decimal `json:"upfront_amount"`
	SettlementDays int             `json:"settlement_days"`
	ApprovedAmount decimal.Decimal `json:"approved_amount"`
	ExpectedLoss   decimal.Decimal `json:"expected_loss"`
}

func NewNegotiationRoundCompleted(
	sessionID, companyID string,
	round int,
	upfrontAmount decimal.Decimal,
	settlementDays int,
	approvedAmount, expectedLoss decimal.Decimal,
) NegotiationRoundCompleted {
	return NegotiationRoundCompleted{
		BaseEvent:      events.NewBaseEvent("credit.negotiation.round_completed", sessionID, "NegotiationSession"),
		CompanyID:      companyID,
		Round:          round,
		UpfrontAmount:  upfrontAmount,
		SettlementDays: settlementDays,
		ApprovedAmount: approvedAmount,
		ExpectedLoss:   expectedLoss,
	}
}

// NegotiationAgreed is raised when the counterparty accepts an offer.
type NegotiationAgreed struct {
	events.BaseEvent
	CompanyID      string          `json:"company_id"`
	Round          int             `json:"round"`
	UpfrontAmount  decimal.Decimal `json:"upfront_amount"`
	SettlementDays int             `json:"settlement_days"`
	ApprovedAmount decimal.Decimal `json:"approved_amount"`
}

func NewNegotiationAgreed(
	sessionID, companyID string,
	round int,
	upfrontAmount decimal.Decimal,
	settlementDays int,
	approvedAmount decimal.Decimal,
) NegotiationAgreed {
	return NegotiationAgreed{
		BaseEvent:      events.NewBaseEvent("credit.negotiation.agreed", sessionID, "NegotiationSession"),
		CompanyID:      companyID,
		Round:          round,
		UpfrontAmount:  upfrontAmount,
		SettlementDays: settlementDays,
		ApprovedAmount: approvedAmount,
	}
}

// NegotiationEscalated is raised when the session terminates without
// agreement and is routed to manual review.
type NegotiationEscalated struct {
	events.BaseEvent
	CompanyID string `json:"company_id"`
	Round     int    `json:"round"`
	Reason    string `json:"reason"`
}

func NewNegotiationEscalated(sessionID, companyID string, round int, reason string) NegotiationEscalated {
	return NegotiationEscalated{
		BaseEvent: events.NewBaseEvent("credit.negotiation.escalated", sessionID, "NegotiationSession"),
		CompanyID: companyID,
		Round:     round,
		Reason:    reason,
	}
}
