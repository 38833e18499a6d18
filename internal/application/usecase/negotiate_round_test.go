package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeroxpay/credit-service/internal/application/dto"
	"github.com/aeroxpay/credit-service/internal/application/usecase"
	"github.com/aeroxpay/credit-service/internal/domain/service"
	"github.com/aeroxpay/credit-service/internal/domain/valueobject"
	"github.com/aeroxpay/credit-service/internal/infrastructure/adapter"
	"github.com/aeroxpay/credit-service/internal/infrastructure/memory"
)

func newNegotiateUC(publisher *mockEventPublisher) (*usecase.NegotiateRoundUseCase, *usecase.ResetSessionUseCase) {
	store := memory.NewSessionStore()
	planner := service.NewNegotiationPlanner(service.DefaultRiskConstraints())
	negotiate := usecase.NewNegotiateRoundUseCase(
		store, adapter.NewTemplateComposer(), publisher, planner, 3, time.Second,
	)
	reset := usecase.NewResetSessionUseCase(store)
	return negotiate, reset
}

func turnInput(message string) dto.NegotiationTurnRequest {
	return dto.NegotiationTurnRequest{
		CompanyID:       "IN-TRV-000567",
		CustomerMessage: message,
		Booking: dto.ProcessBookingRequest{
			CompanyID:          "IN-TRV-000567",
			CompanyName:        "Horizon Holidays",
			BookingAmount:      decimal.NewFromInt(50_000),
			CurrentOutstanding: decimal.NewFromInt(45_000),
			CreditLimit:        decimal.NewFromInt(100_000),
			SettlementDays:     30,
		},
		Scores: dto.ScoresResponse{
			IntentScore: 0.32, CapacityScore: 0.55,
			PD7: 0.02, PD14: 0.08, PD30: 0.15,
			RiskCategory: "yellow",
		},
	}
}

func TestNegotiateRound_ThreeRoundsEndInEscalation(t *testing.T) {
	publisher := &mockEventPublisher{}
	negotiate, _ := newNegotiateUC(publisher)
	ctx := context.Background()

	// Round 1: a loose ceiling still admits a zero-upfront short horizon.
	resp, err := negotiate.Execute(ctx, turnInput("Can't do 7 days, and ₹25K upfront is too much."))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Round)
	assert.Equal(t, "OPEN", resp.State)
	assert.False(t, resp.Escalate)
	require.NotNil(t, resp.Offer)
	assert.True(t, resp.Offer.UpfrontAmount.IsZero())
	assert.Equal(t, 10, resp.Offer.SettlementDays)
	assert.NotEmpty(t, resp.Response)

	// Round 2: tighter, but a 21-day offer still fits under the cap.
	resp, err = negotiate.Execute(ctx, turnInput("We need 21 days and can pay ₹35,000 upfront at most."))
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Round)
	assert.Equal(t, "OPEN", resp.State)
	require.NotNil(t, resp.Offer)
	assert.Equal(t, 21, resp.Offer.SettlementDays)

	// Round 3: the stated constraints leave no compliant candidate.
	resp, err = negotiate.Execute(ctx, turnInput("Make it 30 days and no more than ₹5,000 upfront."))
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Round)
	assert.Equal(t, "ESCALATED", resp.State)
	assert.True(t, resp.Escalate)
	assert.Nil(t, resp.Offer)

	// A fourth submission is refused.
	_, err = negotiate.Execute(ctx, turnInput("anyone there?"))
	assert.ErrorIs(t, err, valueobject.ErrSessionTerminal)

	// Two round events plus one escalation event.
	types := make([]string, 0, len(publisher.publishedEvents))
	for _, evt := range publisher.publishedEvents {
		types = append(types, evt.EventType())
	}
	assert.Equal(t, []string{
		"credit.negotiation.round_completed",
		"credit.negotiation.round_completed",
		"credit.negotiation.escalated",
	}, types)
}

func TestNegotiateRound_AcceptanceAgreesOnStandingOffer(t *testing.T) {
	publisher := &mockEventPublisher{}
	negotiate, _ := newNegotiateUC(publisher)
	ctx := context.Background()

	resp, err := negotiate.Execute(ctx, turnInput("We need 21 days and can pay ₹35,000 upfront at most."))
	require.NoError(t, err)
	require.NotNil(t, resp.Offer)
	offered := *resp.Offer

	resp, err = negotiate.Execute(ctx, turnInput("Deal, we accept those terms."))
	require.NoError(t, err)
	assert.Equal(t, "AGREED", resp.State)
	assert.False(t, resp.Escalate)
	require.NotNil(t, resp.Offer)
	assert.True(t, resp.Offer.UpfrontAmount.Equal(offered.UpfrontAmount))
	assert.Equal(t, offered.SettlementDays, resp.Offer.SettlementDays)

	last := publisher.publishedEvents[len(publisher.publishedEvents)-1]
	assert.Equal(t, "credit.negotiation.agreed", last.EventType())

	// Agreed sessions refuse further turns.
	_, err = negotiate.Execute(ctx, turnInput("actually wait"))
	assert.ErrorIs(t, err, valueobject.ErrSessionTerminal)
}

func TestNegotiateRound_FinalRoundCounterCarriesOffer(t *testing.T) {
	publisher := &mockEventPublisher{}
	negotiate, _ := newNegotiateUC(publisher)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := negotiate.Execute(ctx, turnInput("still too much"))
		require.NoError(t, err)
	}

	// The third round finds a compliant offer, but it is the last round: the
	// session escalates with the final offer attached for the credit desk.
	resp, err := negotiate.Execute(ctx, turnInput("hmm"))
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Round)
	assert.Equal(t, "ESCALATED", resp.State)
	assert.True(t, resp.Escalate)
	assert.NotNil(t, resp.Offer)
}

func TestNegotiateRound_InvalidInput(t *testing.T) {
	negotiate, _ := newNegotiateUC(&mockEventPublisher{})

	in := turnInput("hello")
	in.CompanyID = ""
	_, err := negotiate.Execute(context.Background(), in)
	assert.Error(t, err)

	in = turnInput("")
	_, err = negotiate.Execute(context.Background(), in)
	assert.Error(t, err)
}

func TestResetSession_Idempotent(t *testing.T) {
	publisher := &mockEventPublisher{}
	negotiate, reset := newNegotiateUC(publisher)
	ctx := context.Background()

	// Escalate a session to a terminal state.
	for i := 0; i < 3; i++ {
		_, err := negotiate.Execute(ctx, turnInput("no"))
		require.NoError(t, err)
	}
	_, err := negotiate.Execute(ctx, turnInput("no"))
	require.ErrorIs(t, err, valueobject.ErrSessionTerminal)

	// Reset clears it; negotiation starts fresh at round one.
	require.NoError(t, reset.Execute(ctx, "IN-TRV-000567"))
	resp, err := negotiate.Execute(ctx, turnInput("ok let's talk"))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Round)

	// Resetting a missing session succeeds.
	require.NoError(t, reset.Execute(ctx, "IN-TRV-unknown"))
	require.NoError(t, reset.Execute(ctx, "IN-TRV-000567"))
	require.NoError(t, reset.Execute(ctx, "IN-TRV-000567"))
}
