package model

import (
	"github.com/shopspring/decimal"
)

// ExposureRecord is the derived financial exposure for a request at a given
// settlement horizon and upfront payment. It is recomputed whenever either
// input changes; it is never persisted.
type ExposureRecord struct {
	// TotalExposure is outstanding + requested − upfront (EAD).
	TotalExposure decimal.Decimal
	// ExpectedLoss is PD(horizon) × TotalExposure × LGD.
	ExpectedLoss decimal.Decimal
	// LossGivenDefault is the configured LGD constant used.
	LossGivenDefault float64
	// HorizonDays is the settlement horizon the PD was taken at.
	HorizonDays int
	// ExceedsCap reports whether ExpectedLoss is above the risk cap.
	ExceedsCap bool
	// ExcessAmount is max(0, ExpectedLoss − cap), the exact numeric excess.
	ExcessAmount decimal.Decimal
}
