package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/aeroxpay/credit-service/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Counter-message parsing
// ---------------------------------------------------------------------------

// CounterConstraints are the machine-readable constraints extracted from a
// free-text counter message. Parsing is best effort; an unparsed message
// simply yields no constraints and the planner searches the full space.
type CounterConstraints struct {
	// MaxUpfront is the ceiling the counterparty placed on upfront payment.
	MaxUpfront *decimal.Decimal
	// MinSettlementDays is the shortest settlement the counterparty will take.
	MinSettlementDays *int
	// Accepted is set when the message reads as accepting the standing offer.
	Accepted bool
}

var (
	acceptRe = regexp.MustCompile(`(?i)\b(accept|accepted|agree|agreed|deal|confirmed?|works for us|sounds good)\b`)
	// "₹15,000 upfront", "25K upfront", "Rs. 5000 advance"
	amountBeforeRe = regexp.MustCompile(`(?i)(?:₹|rs\.?\s*|inr\s*)?([0-9][0-9,]*(?:\.[0-9]+)?)\s*(k)?\s*(?:upfront|up\s*front|advance)`)
	// "upfront of ₹15,000", "advance payment of 25K"
	amountAfterRe = regexp.MustCompile(`(?i)(?:upfront|up\s*front|advance)(?:\s+payment)?\s+(?:of\s+)?(?:₹|rs\.?\s*|inr\s*)?([0-9][0-9,]*(?:\.[0-9]+)?)\s*(k)?`)
	daysRe        = regexp.MustCompile(`(?i)([0-9]+)[\s-]*days?\b`)
)

// ParseCounterMessage extracts constraints from a counterparty message.
func ParseCounterMessage(message string) CounterConstraints {
	var cc CounterConstraints
	if acceptRe.MatchString(message) {
		cc.Accepted = true
		return cc
	}
	if m := amountBeforeRe.FindStringSubmatch(message); m != nil {
		if amount, ok := parseAmount(m[1], m[2]); ok {
			cc.MaxUpfront = &amount
		}
	} else if m := amountAfterRe.FindStringSubmatch(message); m != nil {
		if amount, ok := parseAmount(m[1], m[2]); ok {
			cc.MaxUpfront = &amount
		}
	}
	if m := daysRe.FindStringSubmatch(message); m != nil {
		if days, err := strconv.Atoi(m[1]); err == nil && days > 0 {
			cc.MinSettlementDays = &days
		}
	}
	return cc
}

func parseAmount(digits, suffix string) (decimal.Decimal, bool) {
	amount, err := decimal.NewFromString(strings.ReplaceAll(digits, ",", ""))
	if err != nil || !amount.IsPositive() {
		return decimal.Decimal{}, false
	}
	if suffix != "" {
		amount = amount.Mul(decimal.NewFromInt(1000))
	}
	return amount, true
}

// ---------------------------------------------------------------------------
// NegotiationPlanner – counter-offer search under cap and stated constraints
// ---------------------------------------------------------------------------

// candidateDays is the settlement ladder searched for counter-offers, longest
// first so ties on friction resolve toward the customer-friendlier term.
var candidateDays = [...]int{30, 21, 14, 10, 7}

// PlanResult is the planner's outcome. Found false means no candidate
// satisfied both the risk cap and the counterparty's stated constraints.
type PlanResult struct {
	Offer        model.Offer
	ExpectedLoss decimal.Decimal
	Found        bool
}

// NegotiationPlanner searches (settlement days, upfront) candidates for the
// lowest-friction counter-offer whose expected loss stays under the cap while
// honoring the constraints the counterparty stated.
type NegotiationPlanner struct {
	constraints RiskConstraints
}

// NewNegotiationPlanner returns a planner bound to the given constraints.
func NewNegotiationPlanner(constraints RiskConstraints) *NegotiationPlanner {
	return &NegotiationPlanner{constraints: constraints}
}

// Plan searches the candidate ladder. For each admissible settlement horizon
// it derives the minimum upfront that brings expected loss under the cap,
// discards candidates breaching the stated upfront ceiling or exceeding the
// requested amount, and keeps the lowest-friction survivor.
func (p *NegotiationPlanner) Plan(
	req model.BookingRequest,
	scores model.ScorePacket,
	cc CounterConstraints,
) PlanResult {
	exposure := req.CurrentOutstanding().Add(req.BookingAmount())

	best := PlanResult{}
	bestFriction := 0.0
	for _, days := range candidateDays {
		if days < p.constraints.SettlementDaysMin || days > p.constraints.SettlementDaysMax {
			continue
		}
		if cc.MinSettlementDays != nil && days < *cc.MinSettlementDays {
			continue
		}

		pd := scores.PDAt(days)
		upfront := decimal.Zero
		if pd > 0 {
			capShare := p.constraints.MaxExpectedLoss.Div(decimal.NewFromFloat(pd * p.constraints.LossGivenDefault))
			if required := exposure.Sub(capShare); required.IsPositive() {
				upfront = required.RoundUp(2)
			}
		}
		if upfront.GreaterThanOrEqual(req.BookingAmount()) {
			continue
		}
		if cc.MaxUpfront != nil && upfront.GreaterThan(*cc.MaxUpfront) {
			continue
		}

		el := ExpectedLoss(pd, exposure.Sub(upfront), p.constraints.LossGivenDefault)
		if el.GreaterThan(p.constraints.MaxExpectedLoss) {
			continue
		}

		friction := p.friction(upfront, req.BookingAmount(), days)
		if !best.Found || friction < bestFriction {
			best = PlanResult{
				Offer: model.Offer{
					UpfrontAmount:  upfront,
					SettlementDays: days,
					ApprovedAmount: req.BookingAmount(),
				},
				ExpectedLoss: el,
				Found:        true,
			}
			bestFriction = friction
		}
	}
	return best
}

// friction weighs upfront burden against settlement shortening relative to
// the standard horizon.
func (p *NegotiationPlanner) friction(upfront, requested decimal.Decimal, days int) float64 {
	fraction, _ := upfront.Div(requested).Float64()
	shortening := 0.0
	if days < model.StandardHorizonDays {
		shortening = float64(model.StandardHorizonDays-days) / float64(model.StandardHorizonDays)
	}
	return 6.0*fraction + 4.0*shortening
}
