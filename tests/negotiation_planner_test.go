package tests

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeroxpay/credit-service/internal/domain/service"
)

func TestParseCounterMessage(t *testing.T) {
	t.Run("acceptance", func(t *testing.T) {
		for _, msg := range []string{
			"Deal, we accept the 21-day terms.",
			"Agreed!",
			"ok that works for us",
		} {
			cc := service.ParseCounterMessage(msg)
			assert.True(t, cc.Accepted, "message %q", msg)
		}
	})

	t.Run("upfront ceiling with currency symbol", func(t *testing.T) {
		cc := service.ParseCounterMessage("We can pay ₹15,000 upfront but not more.")
		require.NotNil(t, cc.MaxUpfront)
		assert.True(t, cc.MaxUpfront.Equal(decimal.NewFromInt(15_000)))
	})

	t.Run("upfront ceiling with K suffix", func(t *testing.T) {
		cc := service.ParseCounterMessage("Can't do 7 days, and ₹25K upfront is too much.")
		require.NotNil(t, cc.MaxUpfront)
		assert.True(t, cc.MaxUpfront.Equal(decimal.NewFromInt(25_000)))
		require.NotNil(t, cc.MinSettlementDays)
		assert.Equal(t, 7, *cc.MinSettlementDays)
	})

	t.Run("upfront stated after keyword", func(t *testing.T) {
		cc := service.ParseCounterMessage("We could manage an advance payment of Rs. 8000.")
		require.NotNil(t, cc.MaxUpfront)
		assert.True(t, cc.MaxUpfront.Equal(decimal.NewFromInt(8_000)))
	})

	t.Run("days only", func(t *testing.T) {
		cc := service.ParseCounterMessage("We need at least 21 days to settle.")
		assert.Nil(t, cc.MaxUpfront)
		require.NotNil(t, cc.MinSettlementDays)
		assert.Equal(t, 21, *cc.MinSettlementDays)
	})

	t.Run("unparseable", func(t *testing.T) {
		cc := service.ParseCounterMessage("hmm let me check with my CFO")
		assert.False(t, cc.Accepted)
		assert.Nil(t, cc.MaxUpfront)
		assert.Nil(t, cc.MinSettlementDays)
	})
}

func TestNegotiationPlanner_PrefersNoUpfront(t *testing.T) {
	planner := service.NewNegotiationPlanner(service.DefaultRiskConstraints())
	req := newBooking(t, 45_000, 50_000, 30)

	// Unconstrained: a short horizon needs no upfront at all and carries the
	// least friction.
	plan := planner.Plan(req, yellowScores(), service.CounterConstraints{})
	require.True(t, plan.Found)
	assert.True(t, plan.Offer.UpfrontAmount.IsZero())
	assert.Equal(t, 10, plan.Offer.SettlementDays)
	assert.True(t, plan.ExpectedLoss.LessThanOrEqual(decimal.NewFromInt(5_000)))
}

func TestNegotiationPlanner_HonorsMinDays(t *testing.T) {
	planner := service.NewNegotiationPlanner(service.DefaultRiskConstraints())
	req := newBooking(t, 45_000, 50_000, 30)

	minDays := 21
	maxUpfront := decimal.NewFromInt(35_000)
	plan := planner.Plan(req, yellowScores(), service.CounterConstraints{
		MinSettlementDays: &minDays,
		MaxUpfront:        &maxUpfront,
	})
	require.True(t, plan.Found)
	assert.Equal(t, 21, plan.Offer.SettlementDays)
	// The 21-day horizon needs a substantial upfront to stay under the cap.
	assert.True(t, plan.Offer.UpfrontAmount.GreaterThan(decimal.NewFromInt(30_000)))
	assert.True(t, plan.Offer.UpfrontAmount.LessThan(decimal.NewFromInt(31_000)))
	assert.True(t, plan.ExpectedLoss.LessThanOrEqual(decimal.NewFromInt(5_000)))
}

func TestNegotiationPlanner_InfeasibleConstraints(t *testing.T) {
	planner := service.NewNegotiationPlanner(service.DefaultRiskConstraints())
	req := newBooking(t, 45_000, 50_000, 30)

	// 30 days requires roughly ₹47k upfront; a ₹5k ceiling cannot work.
	minDays := 30
	maxUpfront := decimal.NewFromInt(5_000)
	plan := planner.Plan(req, yellowScores(), service.CounterConstraints{
		MinSettlementDays: &minDays,
		MaxUpfront:        &maxUpfront,
	})
	assert.False(t, plan.Found)
}

func TestNegotiationPlanner_HopelessExposure(t *testing.T) {
	planner := service.NewNegotiationPlanner(service.DefaultRiskConstraints())
	req := newBooking(t, 150_000, 100_000, 30)

	plan := planner.Plan(req, redScores(), service.CounterConstraints{})
	assert.False(t, plan.Found)
}
