package valueobject

import (
	"fmt"
)

// ---------------------------------------------------------------------------
// TermType – immutable value object
// ---------------------------------------------------------------------------

// TermType is the structural kind of a credit term option.
type TermType struct {
	value string
}

const (
	termTypeShortenedSettlement = "SHORTENED_SETTLEMENT"
	termTypeUpfrontPayment      = "UPFRONT_PAYMENT"
	termTypePartialApproval     = "PARTIAL_APPROVAL"
)

var (
	TermTypeShortenedSettlement = TermType{value: termTypeShortenedSettlement}
	TermTypeUpfrontPayment      = TermType{value: termTypeUpfrontPayment}
	TermTypePartialApproval     = TermType{value: termTypePartialApproval}
)

var validTermTypes = map[string]TermType{
	termTypeShortenedSettlement: TermTypeShortenedSettlement,
	termTypeUpfrontPayment:      TermTypeUpfrontPayment,
	termTypePartialApproval:     TermTypePartialApproval,
}

// NewTermType creates a TermType from a raw string.
func NewTermType(s string) (TermType, error) {
	v, ok := validTermTypes[s]
	if !ok {
		return TermType{}, fmt.Errorf("invalid term type: %q", s)
	}
	return v, nil
}

// String returns the string representation of the term type.
func (t TermType) String() string { return t.value }

// IsZero returns true if the term type has not been initialised.
func (t TermType) IsZero() bool { return t.value == "" }

// Equal returns true when both term types carry the same value.
func (t TermType) Equal(other TermType) bool { return t.value == other.value }
