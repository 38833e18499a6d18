package service

import (
	"github.com/aeroxpay/credit-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// DecisionGate – ordered threshold matrix over intent and capacity scores
// ---------------------------------------------------------------------------

// DecisionGate classifies every (intent, capacity) pair into exactly one
// disposition. Rules are evaluated in order; the first match wins, and the
// fallthrough is always manual review, so the function is total.
type DecisionGate struct {
	thresholds GateThresholds
}

// NewDecisionGate returns a gate bound to the given thresholds.
func NewDecisionGate(thresholds GateThresholds) *DecisionGate {
	return &DecisionGate{thresholds: thresholds}
}

// Decide classifies the score pair.
//
//	intent >= block threshold                       → block
//	intent < approve threshold, capacity above cap  → auto-approve
//	intent < approve threshold, capacity in band    → negotiate
//	otherwise                                       → manual review
//
// Negotiation requires low intent just like auto-approval does; an elevated
// intent score below the block threshold is never routed to negotiation.
func (g *DecisionGate) Decide(intentScore, capacityScore float64) valueobject.Disposition {
	t := g.thresholds
	switch {
	case intentScore >= t.BlockIntent:
		return valueobject.DispositionBlock
	case intentScore < t.ApproveIntent && capacityScore > t.ApproveCapacity:
		return valueobject.DispositionAutoApprove
	case intentScore < t.ApproveIntent &&
		capacityScore >= t.NegotiateCapacityMin && capacityScore <= t.NegotiateCapacityMax:
		return valueobject.DispositionNegotiate
	default:
		return valueobject.DispositionManualReview
	}
}

// DeriveCategory maps the score pair onto the display-only traffic-light
// label. Red mirrors block, green mirrors auto-approve, everything else is
// yellow. The label never feeds back into decision logic.
func (g *DecisionGate) DeriveCategory(intentScore, capacityScore float64) valueobject.RiskCategory {
	switch g.Decide(intentScore, capacityScore) {
	case valueobject.DispositionBlock:
		return valueobject.RiskCategoryRed
	case valueobject.DispositionAutoApprove:
		return valueobject.RiskCategoryGreen
	default:
		return valueobject.RiskCategoryYellow
	}
}
