package model

import (
	"fmt"

	"github.com/aeroxpay/credit-service/internal/domain/valueobject"
)

// Probability-of-default horizons supplied by the risk models, in days.
const (
	ShortHorizonDays    = 7
	MediumHorizonDays   = 14
	StandardHorizonDays = 30
)

// ScorePacket carries the upstream risk-model outputs for one request.
// It is produced once by the scoring collaborator and treated as read-only;
// the disposition is always re-derived from the raw scores, never from the
// display category.
type ScorePacket struct {
	IntentScore   float64
	CapacityScore float64
	PD7           float64
	PD14          float64
	PD30          float64

	// Category is a coarse display label. Decision input is the raw scores.
	Category valueobject.RiskCategory
}

// Validate rejects scores outside [0,1].
func (s ScorePacket) Validate() error {
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"intent_score", s.IntentScore},
		{"capacity_score", s.CapacityScore},
		{"pd_7d", s.PD7},
		{"pd_14d", s.PD14},
		{"pd_30d", s.PD30},
	} {
		if p.value < 0 || p.value > 1 {
			return fmt.Errorf("%w: %s %.4f outside [0,1]", ErrInvalidInput, p.name, p.value)
		}
	}
	return nil
}

// PDAt returns the probability of default for an arbitrary settlement
// horizon. Anchor horizons return the model output directly; horizons in
// between are linearly interpolated, and horizons outside the anchor range
// clamp to the nearest anchor.
func (s ScorePacket) PDAt(days int) float64 {
	switch {
	case days <= ShortHorizonDays:
		return s.PD7
	case days == MediumHorizonDays:
		return s.PD14
	case days >= StandardHorizonDays:
		return s.PD30
	case days < MediumHorizonDays:
		return interpolate(s.PD7, s.PD14, ShortHorizonDays, MediumHorizonDays, days)
	default:
		return interpolate(s.PD14, s.PD30, MediumHorizonDays, StandardHorizonDays, days)
	}
}

func interpolate(pdLo, pdHi float64, loDays, hiDays, days int) float64 {
	frac := float64(days-loDays) / float64(hiDays-loDays)
	return pdLo + (pdHi-pdLo)*frac
}
