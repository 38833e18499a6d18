package tests

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeroxpay/credit-service/internal/domain/model"
	"github.com/aeroxpay/credit-service/internal/domain/service"
	"github.com/aeroxpay/credit-service/internal/domain/valueobject"
)

func newBooking(t *testing.T, outstanding, amount int64, days int) model.BookingRequest {
	t.Helper()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	req, err := model.NewBookingRequest(
		"IN-TRV-000123", "Wanderly Trips",
		decimal.NewFromInt(amount), decimal.NewFromInt(outstanding), decimal.NewFromInt(100_000),
		"DEL-BOM", now, days, now,
	)
	require.NoError(t, err)
	return req
}

func greenScores() model.ScorePacket {
	return model.ScorePacket{
		IntentScore: 0.18, CapacityScore: 0.92,
		PD7: 0.01, PD14: 0.03, PD30: 0.08,
		Category: valueobject.RiskCategoryGreen,
	}
}

func yellowScores() model.ScorePacket {
	return model.ScorePacket{
		IntentScore: 0.32, CapacityScore: 0.55,
		PD7: 0.02, PD14: 0.08, PD30: 0.15,
		Category: valueobject.RiskCategoryYellow,
	}
}

func TestExposureCalculator_StandardHorizon(t *testing.T) {
	calc := service.NewExposureCalculator(service.DefaultRiskConstraints())
	req := newBooking(t, 28_000, 35_000, 30)

	record, err := calc.Compute(req, greenScores(), decimal.Zero, 0)
	require.NoError(t, err)

	assert.True(t, record.TotalExposure.Equal(decimal.NewFromInt(63_000)),
		"exposure = %s", record.TotalExposure)
	assert.True(t, record.ExpectedLoss.Equal(decimal.RequireFromString("3528")),
		"expected loss = %s", record.ExpectedLoss)
	assert.Equal(t, 30, record.HorizonDays)
	assert.False(t, record.ExceedsCap)
	assert.True(t, record.ExcessAmount.IsZero())
}

func TestExposureCalculator_UpfrontReducesExposure(t *testing.T) {
	calc := service.NewExposureCalculator(service.DefaultRiskConstraints())
	req := newBooking(t, 28_000, 35_000, 30)

	record, err := calc.Compute(req, greenScores(), decimal.NewFromInt(10_000), 0)
	require.NoError(t, err)
	assert.True(t, record.TotalExposure.Equal(decimal.NewFromInt(53_000)))
}

func TestExposureCalculator_CapBreach(t *testing.T) {
	calc := service.NewExposureCalculator(service.DefaultRiskConstraints())
	req := newBooking(t, 45_000, 50_000, 30)

	record, err := calc.Compute(req, yellowScores(), decimal.Zero, 0)
	require.NoError(t, err)

	// 0.15 × 95000 × 0.70 = 9975, well over the 5000 cap.
	assert.True(t, record.ExpectedLoss.Equal(decimal.RequireFromString("9975")))
	assert.True(t, record.ExceedsCap)
	assert.True(t, record.ExcessAmount.Equal(decimal.RequireFromString("4975")))
}

func TestExposureCalculator_RejectsBadInput(t *testing.T) {
	calc := service.NewExposureCalculator(service.DefaultRiskConstraints())
	req := newBooking(t, 28_000, 35_000, 30)

	_, err := calc.Compute(req, greenScores(), decimal.NewFromInt(-1), 0)
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	bad := greenScores()
	bad.PD30 = 1.5
	_, err = calc.Compute(req, bad, decimal.Zero, 0)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestScorePacket_PDInterpolation(t *testing.T) {
	scores := yellowScores()

	// Anchors are returned exactly.
	assert.InDelta(t, 0.02, scores.PDAt(7), 1e-12)
	assert.InDelta(t, 0.08, scores.PDAt(14), 1e-12)
	assert.InDelta(t, 0.15, scores.PDAt(30), 1e-12)

	// Between anchors the PD is linear.
	assert.InDelta(t, 0.02+(0.08-0.02)*3.0/7.0, scores.PDAt(10), 1e-9)
	assert.InDelta(t, 0.08+(0.15-0.08)*7.0/16.0, scores.PDAt(21), 1e-9)

	// Outside the anchors the PD clamps.
	assert.InDelta(t, 0.02, scores.PDAt(3), 1e-12)
	assert.InDelta(t, 0.15, scores.PDAt(60), 1e-12)
}
