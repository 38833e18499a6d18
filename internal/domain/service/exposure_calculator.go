package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/aeroxpay/credit-service/internal/domain/model"
)

// ---------------------------------------------------------------------------
// ExposureCalculator – domain service for EAD / expected-loss derivation
// ---------------------------------------------------------------------------

// ExposureCalculator derives financial exposure and expected loss from a
// request and its risk scores. Pure; no side effects.
type ExposureCalculator struct {
	constraints RiskConstraints
}

// NewExposureCalculator returns a calculator bound to the given constraints.
func NewExposureCalculator(constraints RiskConstraints) *ExposureCalculator {
	return &ExposureCalculator{constraints: constraints}
}

// Compute derives the ExposureRecord for the request at the given upfront
// payment and settlement horizon. A zero horizon selects the request's
// standard horizon. Malformed numeric input is rejected before computing.
//
//	exposure      = outstanding + requested − upfront
//	expected loss = PD(horizon) × exposure × LGD
func (c *ExposureCalculator) Compute(
	req model.BookingRequest,
	scores model.ScorePacket,
	upfront decimal.Decimal,
	horizonDays int,
) (model.ExposureRecord, error) {
	if upfront.IsNegative() {
		return model.ExposureRecord{}, fmt.Errorf("%w: upfront amount must not be negative", model.ErrInvalidInput)
	}
	if horizonDays < 0 {
		return model.ExposureRecord{}, fmt.Errorf("%w: horizon days must not be negative", model.ErrInvalidInput)
	}
	if err := scores.Validate(); err != nil {
		return model.ExposureRecord{}, err
	}
	if horizonDays == 0 {
		horizonDays = req.SettlementDays()
	}

	exposure := req.CurrentOutstanding().Add(req.BookingAmount()).Sub(upfront)
	pd := scores.PDAt(horizonDays)
	el := ExpectedLoss(pd, exposure, c.constraints.LossGivenDefault)

	cap := c.constraints.MaxExpectedLoss
	record := model.ExposureRecord{
		TotalExposure:    exposure,
		ExpectedLoss:     el,
		LossGivenDefault: c.constraints.LossGivenDefault,
		HorizonDays:      horizonDays,
		ExceedsCap:       el.GreaterThan(cap),
		ExcessAmount:     decimal.Zero,
	}
	if record.ExceedsCap {
		record.ExcessAmount = el.Sub(cap)
	}
	return record, nil
}
