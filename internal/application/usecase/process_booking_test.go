package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeroxpay/credit-service/internal/application/dto"
	"github.com/aeroxpay/credit-service/internal/application/usecase"
	"github.com/aeroxpay/credit-service/internal/domain/event"
	"github.com/aeroxpay/credit-service/internal/domain/model"
	"github.com/aeroxpay/credit-service/internal/domain/service"
	"github.com/aeroxpay/credit-service/internal/domain/valueobject"
	"github.com/aeroxpay/credit-service/internal/infrastructure/adapter"
)

// --- Mock implementations ---

type mockScoreProvider struct {
	getScoresFunc func(ctx context.Context, req model.BookingRequest) (model.ScorePacket, error)
}

func (m *mockScoreProvider) GetScores(ctx context.Context, req model.BookingRequest) (model.ScorePacket, error) {
	if m.getScoresFunc != nil {
		return m.getScoresFunc(ctx, req)
	}
	return model.ScorePacket{}, fmt.Errorf("scores not configured")
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

func (m *mockEventPublisher) Close() error { return nil }

type failingComposer struct{}

func (failingComposer) ComposeOptionsMessage(context.Context, model.BookingRequest, model.ScorePacket, []model.TermOption) (model.CustomerMessage, error) {
	return model.CustomerMessage{}, fmt.Errorf("composer unavailable")
}

func (failingComposer) ComposeNegotiationReply(context.Context, model.NegotiationSession, model.TurnRecord) (string, error) {
	return "", fmt.Errorf("composer unavailable")
}

// --- Fixtures ---

func fixedScores(intent, capacity, pd7, pd14, pd30 float64, cat valueobject.RiskCategory) *mockScoreProvider {
	return &mockScoreProvider{
		getScoresFunc: func(_ context.Context, _ model.BookingRequest) (model.ScorePacket, error) {
			return model.ScorePacket{
				IntentScore: intent, CapacityScore: capacity,
				PD7: pd7, PD14: pd14, PD30: pd30,
				Category: cat,
			}, nil
		},
	}
}

func newProcessUC(scores *mockScoreProvider, publisher *mockEventPublisher) *usecase.ProcessBookingUseCase {
	constraints := service.DefaultRiskConstraints()
	return usecase.NewProcessBookingUseCase(
		scores,
		adapter.NewTemplateComposer(),
		publisher,
		service.NewExposureCalculator(constraints),
		service.NewDecisionGate(service.DefaultGateThresholds()),
		service.NewTermOptimizer(constraints),
		service.NewComplianceMonitor(constraints),
		time.Second, time.Second,
	)
}

func bookingInput(companyID string, outstanding, amount int64) dto.ProcessBookingRequest {
	return dto.ProcessBookingRequest{
		CompanyID:          companyID,
		CompanyName:        "Wanderly Trips",
		BookingAmount:      decimal.NewFromInt(amount),
		CurrentOutstanding: decimal.NewFromInt(outstanding),
		CreditLimit:        decimal.NewFromInt(100_000),
		Route:              "DEL-BOM",
		SettlementDays:     30,
	}
}

// --- Tests ---

func TestProcessBooking_AutoApprove(t *testing.T) {
	publisher := &mockEventPublisher{}
	uc := newProcessUC(fixedScores(0.18, 0.92, 0.01, 0.03, 0.08, valueobject.RiskCategoryGreen), publisher)

	resp, err := uc.Execute(context.Background(), bookingInput("IN-TRV-000123", 28_000, 35_000))
	require.NoError(t, err)

	assert.Equal(t, "AUTO_APPROVE", resp.Decision)
	assert.Equal(t, "green", resp.RiskCategory)
	assert.True(t, resp.Exposure.TotalExposure.Equal(decimal.NewFromInt(63_000)))
	assert.True(t, resp.Exposure.ExpectedLoss.Equal(decimal.RequireFromString("3528")))
	require.NotNil(t, resp.ApprovedAmount)
	assert.True(t, resp.ApprovedAmount.Equal(decimal.NewFromInt(35_000)))
	require.NotNil(t, resp.SettlementDays)
	assert.Equal(t, 30, *resp.SettlementDays)
	assert.Empty(t, resp.Options)

	require.Len(t, publisher.publishedEvents, 1)
	assert.Equal(t, "credit.decision.completed", publisher.publishedEvents[0].EventType())
}

func TestProcessBooking_Block(t *testing.T) {
	publisher := &mockEventPublisher{}
	uc := newProcessUC(fixedScores(0.85, 0.25, 0.25, 0.40, 0.60, valueobject.RiskCategoryRed), publisher)

	resp, err := uc.Execute(context.Background(), bookingInput("IN-TRV-000999", 80_000, 60_000))
	require.NoError(t, err)

	assert.Equal(t, "BLOCK", resp.Decision)
	assert.Equal(t, "red", resp.RiskCategory)
	assert.NotEmpty(t, resp.Reason)
	// A blocked request never carries options or an approval.
	assert.Empty(t, resp.Options)
	assert.Nil(t, resp.ApprovedAmount)
	assert.Nil(t, resp.Message)
}

func TestProcessBooking_NegotiateWithOptions(t *testing.T) {
	publisher := &mockEventPublisher{}
	uc := newProcessUC(fixedScores(0.32, 0.55, 0.02, 0.08, 0.15, valueobject.RiskCategoryYellow), publisher)

	resp, err := uc.Execute(context.Background(), bookingInput("IN-TRV-000567", 45_000, 50_000))
	require.NoError(t, err)

	assert.Equal(t, "NEGOTIATE", resp.Decision)
	require.Len(t, resp.Options, 3)
	assert.Equal(t, "A", resp.Options[0].OptionID)
	require.NotNil(t, resp.Compliance)
	assert.True(t, resp.Compliance.Compliant)
	require.NotNil(t, resp.Message)
	assert.Contains(t, resp.Message.Body, "Option A")
	assert.NotEmpty(t, resp.Message.CTAButtons)

	// Decision event plus options event.
	require.Len(t, publisher.publishedEvents, 2)
	assert.Equal(t, "credit.options.generated", publisher.publishedEvents[0].EventType())
	assert.Equal(t, "credit.decision.completed", publisher.publishedEvents[1].EventType())
}

func TestProcessBooking_NegotiateNoCompliantOptions(t *testing.T) {
	publisher := &mockEventPublisher{}
	uc := newProcessUC(fixedScores(0.32, 0.55, 0.25, 0.40, 0.60, valueobject.RiskCategoryYellow), publisher)

	resp, err := uc.Execute(context.Background(), bookingInput("IN-TRV-000777", 150_000, 100_000))
	require.NoError(t, err)

	assert.Equal(t, "NEGOTIATE", resp.Decision)
	assert.True(t, resp.NoCompliantOptions)
	assert.Empty(t, resp.Options)
	assert.NotEmpty(t, resp.Reason)
}

func TestProcessBooking_ScoreFailureFailsClosed(t *testing.T) {
	publisher := &mockEventPublisher{}
	scores := &mockScoreProvider{
		getScoresFunc: func(_ context.Context, _ model.BookingRequest) (model.ScorePacket, error) {
			return model.ScorePacket{}, fmt.Errorf("upstream timeout")
		},
	}
	uc := newProcessUC(scores, publisher)

	_, err := uc.Execute(context.Background(), bookingInput("IN-TRV-000123", 28_000, 35_000))
	assert.ErrorIs(t, err, model.ErrScoreUnavailable)
	assert.Empty(t, publisher.publishedEvents, "no decision event on failure")
}

func TestProcessBooking_ComposerFailureDoesNotFailDecision(t *testing.T) {
	publisher := &mockEventPublisher{}
	constraints := service.DefaultRiskConstraints()
	uc := usecase.NewProcessBookingUseCase(
		fixedScores(0.32, 0.55, 0.02, 0.08, 0.15, valueobject.RiskCategoryYellow),
		failingComposer{},
		publisher,
		service.NewExposureCalculator(constraints),
		service.NewDecisionGate(service.DefaultGateThresholds()),
		service.NewTermOptimizer(constraints),
		service.NewComplianceMonitor(constraints),
		time.Second, time.Second,
	)

	resp, err := uc.Execute(context.Background(), bookingInput("IN-TRV-000567", 45_000, 50_000))
	require.NoError(t, err)
	assert.Len(t, resp.Options, 3)

	// The customer still gets a deterministic message built from the
	// computed option descriptions.
	require.NotNil(t, resp.Message)
	assert.Contains(t, resp.Message.Body, "Option A")
	assert.Contains(t, resp.Message.Subject, "50000")
	assert.Contains(t, resp.Message.CTAButtons, "Talk to support")
}

func TestProcessBooking_InvalidInput(t *testing.T) {
	uc := newProcessUC(fixedScores(0.18, 0.92, 0.01, 0.03, 0.08, valueobject.RiskCategoryGreen), &mockEventPublisher{})

	in := bookingInput("", 28_000, 35_000)
	_, err := uc.Execute(context.Background(), in)
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	in = bookingInput("IN-TRV-000123", 28_000, 35_000)
	in.BookingAmount = decimal.Zero
	_, err = uc.Execute(context.Background(), in)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}
