package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aeroxpay/credit-service/internal/domain/service"
	"github.com/aeroxpay/credit-service/internal/domain/valueobject"
)

func TestDecisionGate_Matrix(t *testing.T) {
	gate := service.NewDecisionGate(service.DefaultGateThresholds())

	cases := []struct {
		name     string
		intent   float64
		capacity float64
		want     valueobject.Disposition
	}{
		{"high intent blocks", 0.85, 0.25, valueobject.DispositionBlock},
		{"high intent blocks regardless of capacity", 0.75, 0.95, valueobject.DispositionBlock},
		{"low intent strong capacity approves", 0.18, 0.92, valueobject.DispositionAutoApprove},
		{"mid capacity negotiates", 0.32, 0.55, valueobject.DispositionNegotiate},
		{"low intent mid capacity negotiates", 0.10, 0.60, valueobject.DispositionNegotiate},
		{"weak capacity goes to review", 0.30, 0.20, valueobject.DispositionManualReview},
		{"mid intent strong capacity goes to review", 0.50, 0.95, valueobject.DispositionManualReview},
		{"mid intent mid capacity goes to review", 0.50, 0.55, valueobject.DispositionManualReview},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := gate.Decide(tc.intent, tc.capacity)
			assert.True(t, got.Equal(tc.want), "Decide(%v, %v) = %s, want %s", tc.intent, tc.capacity, got, tc.want)
		})
	}
}

func TestDecisionGate_Boundaries(t *testing.T) {
	gate := service.NewDecisionGate(service.DefaultGateThresholds())

	// Intent exactly at the block threshold blocks.
	assert.True(t, gate.Decide(0.60, 0.90).Equal(valueobject.DispositionBlock))

	// Intent exactly at the approve threshold is not low enough to approve,
	// and not low enough to negotiate either.
	assert.True(t, gate.Decide(0.40, 0.90).Equal(valueobject.DispositionManualReview))
	assert.True(t, gate.Decide(0.40, 0.55).Equal(valueobject.DispositionManualReview))

	// Capacity exactly at the band edges negotiates.
	assert.True(t, gate.Decide(0.30, 0.70).Equal(valueobject.DispositionNegotiate))
	assert.True(t, gate.Decide(0.30, 0.40).Equal(valueobject.DispositionNegotiate))

	// Capacity just below the band falls through to review.
	assert.True(t, gate.Decide(0.30, 0.39).Equal(valueobject.DispositionManualReview))
}

func TestDecisionGate_Total(t *testing.T) {
	gate := service.NewDecisionGate(service.DefaultGateThresholds())

	// Every score pair on a fine grid classifies into exactly one disposition.
	for i := 0; i <= 50; i++ {
		for j := 0; j <= 50; j++ {
			intent := float64(i) / 50.0
			capacity := float64(j) / 50.0
			got := gate.Decide(intent, capacity)
			assert.False(t, got.IsZero(), "no disposition for (%v, %v)", intent, capacity)
		}
	}
}

func TestDecisionGate_DeriveCategory(t *testing.T) {
	gate := service.NewDecisionGate(service.DefaultGateThresholds())

	assert.True(t, gate.DeriveCategory(0.85, 0.25).Equal(valueobject.RiskCategoryRed))
	assert.True(t, gate.DeriveCategory(0.18, 0.92).Equal(valueobject.RiskCategoryGreen))
	assert.True(t, gate.DeriveCategory(0.32, 0.55).Equal(valueobject.RiskCategoryYellow))
	assert.True(t, gate.DeriveCategory(0.50, 0.95).Equal(valueobject.RiskCategoryYellow))
}
