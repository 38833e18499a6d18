// Package dto carries the request and response shapes crossing the
// application boundary. Presentation layers marshal these directly.
package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Booking decision
// ---------------------------------------------------------------------------

// ProcessBookingRequest is the inbound shape for a booking decision.
type ProcessBookingRequest struct {
	CompanyID          string          `json:"company_id"`
	CompanyName        string          `json:"company_name,omitempty"`
	BookingAmount      decimal.Decimal `json:"booking_amount"`
	CurrentOutstanding decimal.Decimal `json:"current_outstanding"`
	CreditLimit        decimal.Decimal `json:"credit_limit"`
	Route              string          `json:"route,omitempty"`
	BookingDate        time.Time       `json:"booking_date,omitempty"`
	SettlementDays     int             `json:"settlement_days,omitempty"`
}

// ScoresResponse echoes the risk score packet used for the decision.
type ScoresResponse struct {
	IntentScore   float64 `json:"intent_score"`
	CapacityScore float64 `json:"capacity_score"`
	PD7           float64 `json:"pd_7"`
	PD14          float64 `json:"pd_14"`
	PD30          float64 `json:"pd_30"`
	RiskCategory  string  `json:"risk_category"`
}

// ExposureResponse reports the derived exposure figures.
type ExposureResponse struct {
	TotalExposure decimal.Decimal `json:"total_exposure"`
	ExpectedLoss  decimal.Decimal `json:"expected_loss"`
	HorizonDays   int             `json:"horizon_days"`
	ExceedsCap    bool            `json:"exceeds_cap"`
	ExcessAmount  decimal.Decimal `json:"excess_amount"`
}

// OptionResponse is one generated term option.
type OptionResponse struct {
	OptionID       string          `json:"option_id"`
	Type           string          `json:"type"`
	SettlementDays int             `json:"settlement_days"`
	UpfrontAmount  decimal.Decimal `json:"upfront_amount"`
	ApprovedAmount decimal.Decimal `json:"approved_amount"`
	ExpectedLoss   decimal.Decimal `json:"expected_loss"`
	FrictionScore  float64         `json:"friction_score"`
	Description    string          `json:"description"`
}

// ComplianceResponse reports the monitor's verdict over the option set.
type ComplianceResponse struct {
	Compliant    bool     `json:"compliant"`
	Violations   []string `json:"violations,omitempty"`
	OptionsCount int      `json:"options_count"`
}

// MessageResponse is the rendered customer-facing message.
type MessageResponse struct {
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
	CTAButtons []string `json:"cta_buttons,omitempty"`
}

// DecisionResponse is the full outcome of a booking decision.
type DecisionResponse struct {
	RequestID          string             `json:"request_id"`
	CompanyID          string             `json:"company_id"`
	Decision           string             `json:"decision"`
	RiskCategory       string             `json:"risk_category"`
	Reason             string             `json:"reason,omitempty"`
	Scores             ScoresResponse     `json:"scores"`
	Exposure           ExposureResponse   `json:"exposure"`
	ApprovedAmount     *decimal.Decimal   `json:"approved_amount,omitempty"`
	SettlementDays     *int               `json:"settlement_days,omitempty"`
	NoCompliantOptions bool               `json:"no_compliant_options,omitempty"`
	Options            []OptionResponse   `json:"options,omitempty"`
	Compliance         *ComplianceResponse `json:"compliance,omitempty"`
	Message            *MessageResponse   `json:"message,omitempty"`
	DecidedAt          time.Time          `json:"decided_at"`
}

// ---------------------------------------------------------------------------
// Negotiation
// ---------------------------------------------------------------------------

// NegotiationTurnRequest submits one counterparty message. The booking,
// scores and initial options seed the session on the first turn and are
// ignored once a session exists; the session's frozen copies win.
type NegotiationTurnRequest struct {
	CompanyID       string                `json:"company_id"`
	CustomerMessage string                `json:"customer_message"`
	Booking         ProcessBookingRequest `json:"booking_request"`
	Scores          ScoresResponse        `json:"risk_scores"`
	InitialOptions  []OptionResponse      `json:"initial_options,omitempty"`
}

// OfferResponse is a concrete negotiated arrangement.
type OfferResponse struct {
	UpfrontAmount  decimal.Decimal `json:"upfront_amount"`
	SettlementDays int             `json:"settlement_days"`
	ApprovedAmount decimal.Decimal `json:"approved_amount"`
}

// NegotiationTurnResponse is the outcome of one negotiation turn.
type NegotiationTurnResponse struct {
	SessionID    string           `json:"session_id"`
	CompanyID    string           `json:"company_id"`
	Round        int              `json:"round"`
	State        string           `json:"state"`
	Response     string           `json:"response"`
	Offer        *OfferResponse   `json:"offer,omitempty"`
	ExpectedLoss *decimal.Decimal `json:"expected_loss,omitempty"`
	Escalate     bool             `json:"escalate"`
}

// ResetSessionRequest clears any session for the company.
type ResetSessionRequest struct {
	CompanyID string `json:"company_id"`
}
