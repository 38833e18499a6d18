package valueobject

import (
	"fmt"
)

// ---------------------------------------------------------------------------
// Disposition – immutable value object
// ---------------------------------------------------------------------------

// Disposition is the outcome class of the decision gate for a booking request.
type Disposition struct {
	value string
}

const (
	dispositionBlock        = "BLOCK"
	dispositionAutoApprove  = "AUTO_APPROVE"
	dispositionNegotiate    = "NEGOTIATE"
	dispositionManualReview = "MANUAL_REVIEW"
)

var (
	DispositionBlock        = Disposition{value: dispositionBlock}
	DispositionAutoApprove  = Disposition{value: dispositionAutoApprove}
	DispositionNegotiate    = Disposition{value: dispositionNegotiate}
	DispositionManualReview = Disposition{value: dispositionManualReview}
)

var validDispositions = map[string]Disposition{
	dispositionBlock:        DispositionBlock,
	dispositionAutoApprove:  DispositionAutoApprove,
	dispositionNegotiate:    DispositionNegotiate,
	dispositionManualReview: DispositionManualReview,
}

// NewDisposition creates a Disposition from a raw string.
func NewDisposition(s string) (Disposition, error) {
	v, ok := validDispositions[s]
	if !ok {
		return Disposition{}, fmt.Errorf("invalid disposition: %q", s)
	}
	return v, nil
}

// String returns the string representation of the disposition.
func (d Disposition) String() string { return d.value }

// IsZero returns true if the disposition has not been initialised.
func (d Disposition) IsZero() bool { return d.value == "" }

// Equal returns true when both dispositions carry the same value.
func (d Disposition) Equal(other Disposition) bool { return d.value == other.value }

// ---------------------------------------------------------------------------
// RiskCategory – display label only, never a decision input
// ---------------------------------------------------------------------------

// RiskCategory is the coarse traffic-light label shown alongside raw scores.
// The decision gate always re-derives the disposition from the raw scores;
// this label exists for dashboards and customer-facing copy.
type RiskCategory struct {
	value string
}

const (
	riskCategoryGreen  = "green"
	riskCategoryYellow = "yellow"
	riskCategoryRed    = "red"
)

var (
	RiskCategoryGreen  = RiskCategory{value: riskCategoryGreen}
	RiskCategoryYellow = RiskCategory{value: riskCategoryYellow}
	RiskCategoryRed    = RiskCategory{value: riskCategoryRed}
)

var validRiskCategories = map[string]RiskCategory{
	riskCategoryGreen:  RiskCategoryGreen,
	riskCategoryYellow: RiskCategoryYellow,
	riskCategoryRed:    RiskCategoryRed,
}

// NewRiskCategory creates a RiskCategory from a raw string.
func NewRiskCategory(s string) (RiskCategory, error) {
	v, ok := validRiskCategories[s]
	if !ok {
		return RiskCategory{}, fmt.Errorf("invalid risk category: %q", s)
	}
	return v, nil
}

// String returns the string representation of the category.
func (c RiskCategory) String() string { return c.value }

// IsZero returns true if the category has not been initialised.
func (c RiskCategory) IsZero() bool { return c.value == "" }

// Equal returns true when both categories carry the same value.
func (c RiskCategory) Equal(other RiskCategory) bool { return c.value == other.value }
