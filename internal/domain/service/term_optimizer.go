package service

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/aeroxpay/credit-service/internal/domain/model"
	"github.com/aeroxpay/credit-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// TermOptimizer – compliant term-option construction and ranking
// ---------------------------------------------------------------------------

// TermOptimizer builds the set of term adjustments whose recomputed expected
// loss fits under the cap, ranked by ascending customer friction. The three
// constructions are independent; each contributes at most one option.
type TermOptimizer struct {
	constraints RiskConstraints
}

// NewTermOptimizer returns an optimizer bound to the given constraints.
func NewTermOptimizer(constraints RiskConstraints) *TermOptimizer {
	return &TermOptimizer{constraints: constraints}
}

// Generate builds the ranked option set for a negotiate-disposition request.
// An empty result means no construction could satisfy the cap.
func (o *TermOptimizer) Generate(req model.BookingRequest, scores model.ScorePacket) []model.TermOption {
	options := make([]model.TermOption, 0, 3)
	if opt, ok := o.shortenedSettlement(req, scores); ok {
		options = append(options, opt)
	}
	if opt, ok := o.upfrontPayment(req, scores); ok {
		options = append(options, opt)
	}
	if opt, ok := o.partialApproval(req, scores); ok {
		options = append(options, opt)
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].FrictionScore < options[j].FrictionScore
	})
	if len(options) > 3 {
		options = options[:3]
	}
	labels := [...]string{"A", "B", "C"}
	for i := range options {
		options[i].ID = labels[i]
	}
	return options
}

// shortenedSettlement offers the full amount at the shortest settlement
// horizon, where default probability is lowest.
func (o *TermOptimizer) shortenedSettlement(req model.BookingRequest, scores model.ScorePacket) (model.TermOption, bool) {
	days := model.ShortHorizonDays
	if days < o.constraints.SettlementDaysMin {
		days = o.constraints.SettlementDaysMin
	}
	exposure := req.CurrentOutstanding().Add(req.BookingAmount())
	el := ExpectedLoss(scores.PDAt(days), exposure, o.constraints.LossGivenDefault)
	if el.GreaterThan(o.constraints.MaxExpectedLoss) {
		return model.TermOption{}, false
	}
	return model.TermOption{
		Type:           valueobject.TermTypeShortenedSettlement,
		SettlementDays: days,
		UpfrontAmount:  decimal.Zero,
		ApprovedAmount: req.BookingAmount(),
		ExpectedLoss:   el,
		FrictionScore:  4.0,
		Description:    fmt.Sprintf("Full amount approved with settlement in %d days", days),
	}, true
}

// upfrontPayment solves for the smallest upfront U that brings expected loss
// to the cap at the standard horizon:
//
//	U = exposure − cap / (PD × LGD)
//
// The option is only included when U is a real concession, strictly between
// zero and the requested amount. U is rounded up so the recomputed loss never
// lands above the cap.
func (o *TermOptimizer) upfrontPayment(req model.BookingRequest, scores model.ScorePacket) (model.TermOption, bool) {
	days := req.SettlementDays()
	pd := scores.PDAt(days)
	if pd <= 0 {
		return model.TermOption{}, false
	}
	exposure := req.CurrentOutstanding().Add(req.BookingAmount())
	capShare := o.constraints.MaxExpectedLoss.Div(decimal.NewFromFloat(pd * o.constraints.LossGivenDefault))
	upfront := exposure.Sub(capShare).RoundUp(2)
	if !upfront.IsPositive() || upfront.GreaterThanOrEqual(req.BookingAmount()) {
		return model.TermOption{}, false
	}
	el := ExpectedLoss(pd, exposure.Sub(upfront), o.constraints.LossGivenDefault)
	fraction, _ := upfront.Div(req.BookingAmount()).Float64()
	return model.TermOption{
		Type:           valueobject.TermTypeUpfrontPayment,
		SettlementDays: days,
		UpfrontAmount:  upfront,
		ApprovedAmount: req.BookingAmount(),
		ExpectedLoss:   el,
		FrictionScore:  6.0 + 2.0*fraction,
		Description:    fmt.Sprintf("Pay ₹%s upfront, settle the remainder in %d days", upfront.StringFixed(2), days),
	}, true
}

// partialApproval tries descending fractions of the requested amount at the
// medium horizon and keeps the first compliant one.
func (o *TermOptimizer) partialApproval(req model.BookingRequest, scores model.ScorePacket) (model.TermOption, bool) {
	days := model.MediumHorizonDays
	pd := scores.PDAt(days)
	for _, fraction := range o.constraints.PartialApprovalFractions {
		approved := req.BookingAmount().Mul(decimal.NewFromFloat(fraction)).Round(2)
		exposure := req.CurrentOutstanding().Add(approved)
		el := ExpectedLoss(pd, exposure, o.constraints.LossGivenDefault)
		if el.GreaterThan(o.constraints.MaxExpectedLoss) {
			continue
		}
		return model.TermOption{
			Type:           valueobject.TermTypePartialApproval,
			SettlementDays: days,
			UpfrontAmount:  decimal.Zero,
			ApprovedAmount: approved,
			ExpectedLoss:   el,
			FrictionScore:  8.0 + 2.0*(1.0-fraction),
			Description:    fmt.Sprintf("₹%s approved now (%d%% of requested), settle in %d days", approved.StringFixed(2), int(fraction*100), days),
		}, true
	}
	return model.TermOption{}, false
}
