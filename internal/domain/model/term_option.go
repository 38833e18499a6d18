package model

import (
	"github.com/shopspring/decimal"

	"github.com/aeroxpay/credit-service/internal/domain/valueobject"
)

// TermOption is one structured credit-term adjustment. Options are generated
// as a set, ranked by ascending friction and truncated to three; an option is
// only meaningful inside the set it was generated with.
type TermOption struct {
	// ID is the ordinal label within the set: "A", "B", "C".
	ID             string
	Type           valueobject.TermType
	SettlementDays int
	UpfrontAmount  decimal.Decimal
	ApprovedAmount decimal.Decimal
	ExpectedLoss   decimal.Decimal
	// FrictionScore ranks customer inconvenience; lower is offered first.
	FrictionScore float64
	Description   string
}

// ComplianceResult is the monitor's verdict over a generated option set.
// All violations are accumulated; the set is safe to present only when
// Violations is empty.
type ComplianceResult struct {
	Compliant    bool
	Violations   []string
	OptionsCount int
}

// Offer is a concrete negotiated credit arrangement: the counterparty pays
// UpfrontAmount now and settles the remainder of ApprovedAmount within
// SettlementDays.
type Offer struct {
	UpfrontAmount  decimal.Decimal
	SettlementDays int
	ApprovedAmount decimal.Decimal
}
