package service

import (
	"github.com/shopspring/decimal"
)

// RiskConstraints are the hard financial-safety limits every offered credit
// term must satisfy. Values come from configuration, not code.
type RiskConstraints struct {
	// MaxExpectedLoss is the expected-loss cap in currency units.
	MaxExpectedLoss decimal.Decimal
	// LossGivenDefault is the fixed LGD fraction of exposure lost on default.
	LossGivenDefault float64
	// SettlementDaysMin and SettlementDaysMax bound offered settlement terms.
	SettlementDaysMin int
	SettlementDaysMax int
	// PartialApprovalFractions is the descending sequence tried for partial
	// approval; the first compliant fraction wins.
	PartialApprovalFractions []float64
}

// DefaultRiskConstraints returns the platform defaults.
func DefaultRiskConstraints() RiskConstraints {
	return RiskConstraints{
		MaxExpectedLoss:          decimal.NewFromInt(5000),
		LossGivenDefault:         0.70,
		SettlementDaysMin:        7,
		SettlementDaysMax:        90,
		PartialApprovalFractions: []float64{0.5, 0.4, 0.3},
	}
}

// GateThresholds parameterise the decision gate. All values are scores in [0,1].
type GateThresholds struct {
	BlockIntent          float64
	ApproveIntent        float64
	ApproveCapacity      float64
	NegotiateCapacityMin float64
	NegotiateCapacityMax float64
}

// DefaultGateThresholds returns the platform decision matrix defaults.
func DefaultGateThresholds() GateThresholds {
	return GateThresholds{
		BlockIntent:          0.60,
		ApproveIntent:        0.40,
		ApproveCapacity:      0.70,
		NegotiateCapacityMin: 0.40,
		NegotiateCapacityMax: 0.70,
	}
}

// ExpectedLoss computes PD × exposure × LGD, rounded to currency precision.
func ExpectedLoss(pd float64, exposure decimal.Decimal, lgd float64) decimal.Decimal {
	return decimal.NewFromFloat(pd).Mul(exposure).Mul(decimal.NewFromFloat(lgd)).Round(2)
}
