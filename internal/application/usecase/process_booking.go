package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aeroxpay/credit-service/internal/application/dto"
	"github.com/aeroxpay/credit-service/internal/domain/event"
	"github.com/aeroxpay/credit-service/internal/domain/model"
	"github.com/aeroxpay/credit-service/internal/domain/port"
	"github.com/aeroxpay/credit-service/internal/domain/service"
	"github.com/aeroxpay/credit-service/internal/domain/valueobject"
)

// ProcessBookingUseCase orchestrates one booking decision: fetch scores,
// derive exposure, gate, and for negotiate dispositions generate, validate
// and present term options. Stateless; every run is independent.
type ProcessBookingUseCase struct {
	scores     port.ScoreProvider
	composer   port.MessageComposer
	publisher  port.EventPublisher
	calculator *service.ExposureCalculator
	gate       *service.DecisionGate
	optimizer  *service.TermOptimizer
	monitor    *service.ComplianceMonitor

	scoreTimeout   time.Duration
	composeTimeout time.Duration
}

// NewProcessBookingUseCase wires the orchestrator.
func NewProcessBookingUseCase(
	scores port.ScoreProvider,
	composer port.MessageComposer,
	publisher port.EventPublisher,
	calculator *service.ExposureCalculator,
	gate *service.DecisionGate,
	optimizer *service.TermOptimizer,
	monitor *service.ComplianceMonitor,
	scoreTimeout, composeTimeout time.Duration,
) *ProcessBookingUseCase {
	return &ProcessBookingUseCase{
		scores:         scores,
		composer:       composer,
		publisher:      publisher,
		calculator:     calculator,
		gate:           gate,
		optimizer:      optimizer,
		monitor:        monitor,
		scoreTimeout:   scoreTimeout,
		composeTimeout: composeTimeout,
	}
}

// Execute runs the decision pipeline for one booking request.
func (uc *ProcessBookingUseCase) Execute(ctx context.Context, in dto.ProcessBookingRequest) (dto.DecisionResponse, error) {
	now := time.Now().UTC()
	req, err := model.NewBookingRequest(
		in.CompanyID, in.CompanyName,
		in.BookingAmount, in.CurrentOutstanding, in.CreditLimit,
		in.Route, in.BookingDate, in.SettlementDays, now,
	)
	if err != nil {
		return dto.DecisionResponse{}, err
	}

	// Fail closed: no scores means no decision.
	scoreCtx, cancel := context.WithTimeout(ctx, uc.scoreTimeout)
	scores, err := uc.scores.GetScores(scoreCtx, req)
	cancel()
	if err != nil {
		return dto.DecisionResponse{}, fmt.Errorf("fetch risk scores: %w", errors.Join(model.ErrScoreUnavailable, err))
	}
	if err := scores.Validate(); err != nil {
		return dto.DecisionResponse{}, fmt.Errorf("risk score packet rejected: %w", err)
	}

	exposure, err := uc.calculator.Compute(req, scores, decimal.Zero, 0)
	if err != nil {
		return dto.DecisionResponse{}, err
	}

	disposition := uc.gate.Decide(scores.IntentScore, scores.CapacityScore)
	category := uc.gate.DeriveCategory(scores.IntentScore, scores.CapacityScore)

	resp := dto.DecisionResponse{
		RequestID:    req.ID(),
		CompanyID:    req.CompanyID(),
		Decision:     disposition.String(),
		RiskCategory: category.String(),
		Scores:       toScoresResponse(scores, category),
		Exposure:     toExposureResponse(exposure),
		DecidedAt:    now,
	}

	switch disposition {
	case valueobject.DispositionAutoApprove:
		approved := req.BookingAmount()
		days := req.SettlementDays()
		resp.ApprovedAmount = &approved
		resp.SettlementDays = &days
		resp.Reason = "low default intent with strong repayment capacity"

	case valueobject.DispositionBlock:
		resp.Reason = fmt.Sprintf("intent score %.2f indicates elevated default intent", scores.IntentScore)

	case valueobject.DispositionManualReview:
		resp.Reason = "score pattern outside automatic handling"

	case valueobject.DispositionNegotiate:
		if err := uc.negotiatePath(ctx, req, scores, &resp); err != nil {
			return dto.DecisionResponse{}, err
		}
	}

	decided := event.NewBookingDecisionCompleted(
		req.ID(), req.CompanyID(), disposition.String(), category.String(),
		scores.IntentScore, scores.CapacityScore,
		exposure.TotalExposure, exposure.ExpectedLoss, exposure.ExceedsCap,
	)
	if err := uc.publisher.Publish(ctx, decided); err != nil {
		return dto.DecisionResponse{}, fmt.Errorf("publish decision event: %w", err)
	}
	return resp, nil
}

// negotiatePath generates the option set, re-validates it and renders the
// customer message. An empty set is a valid terminal outcome; a set the
// monitor rejects is a hard failure because it must never be presented.
func (uc *ProcessBookingUseCase) negotiatePath(
	ctx context.Context,
	req model.BookingRequest,
	scores model.ScorePacket,
	resp *dto.DecisionResponse,
) error {
	options := uc.optimizer.Generate(req, scores)
	if len(options) == 0 {
		resp.NoCompliantOptions = true
		resp.Reason = model.ErrNoCompliantOptions.Error()
		return nil
	}

	compliance := uc.monitor.Validate(options)
	if !compliance.Compliant {
		return fmt.Errorf("%w: %s", model.ErrComplianceViolation, strings.Join(compliance.Violations, "; "))
	}

	resp.Options = toOptionResponses(options)
	cr := toComplianceResponse(compliance)
	resp.Compliance = &cr

	composeCtx, cancel := context.WithTimeout(ctx, uc.composeTimeout)
	message, err := uc.composer.ComposeOptionsMessage(composeCtx, req, scores, options)
	cancel()
	if err != nil || message.Body == "" {
		message = fallbackOptionsMessage(req, options)
	}
	resp.Message = &dto.MessageResponse{
		Subject:    message.Subject,
		Body:       message.Body,
		CTAButtons: message.CTAButtons,
	}

	generated := event.NewCreditOptionsGenerated(req.ID(), req.CompanyID(), len(options))
	if err := uc.publisher.Publish(ctx, generated); err != nil {
		return fmt.Errorf("publish options event: %w", err)
	}
	return nil
}

// fallbackOptionsMessage renders a deterministic message from the computed
// option descriptions. The decision never fails on presentation.
func fallbackOptionsMessage(req model.BookingRequest, options []model.TermOption) model.CustomerMessage {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s, we reviewed your booking of ₹%s and can offer the following terms:",
		req.CompanyName(), req.BookingAmount().StringFixed(0))
	buttons := make([]string, 0, len(options)+1)
	for _, opt := range options {
		fmt.Fprintf(&b, "\nOption %s: %s", opt.ID, opt.Description)
		buttons = append(buttons, "Choose "+opt.ID)
	}
	buttons = append(buttons, "Talk to support")
	return model.CustomerMessage{
		Subject:    fmt.Sprintf("Credit options for your ₹%s booking", req.BookingAmount().StringFixed(0)),
		Body:       b.String(),
		CTAButtons: buttons,
	}
}

// ---------------------------------------------------------------------------
// DTO mapping
// ---------------------------------------------------------------------------

func toScoresResponse(scores model.ScorePacket, category valueobject.RiskCategory) dto.ScoresResponse {
	return dto.ScoresResponse{
		IntentScore:   scores.IntentScore,
		CapacityScore: scores.CapacityScore,
		PD7:           scores.PD7,
		PD14:          scores.PD14,
		PD30:          scores.PD30,
		RiskCategory:  category.String(),
	}
}

func toExposureResponse(exposure model.ExposureRecord) dto.ExposureResponse {
	return dto.ExposureResponse{
		TotalExposure: exposure.TotalExposure,
		ExpectedLoss:  exposure.ExpectedLoss,
		HorizonDays:   exposure.HorizonDays,
		ExceedsCap:    exposure.ExceedsCap,
		ExcessAmount:  exposure.ExcessAmount,
	}
}

func toOptionResponses(options []model.TermOption) []dto.OptionResponse {
	out := make([]dto.OptionResponse, len(options))
	for i, opt := range options {
		out[i] = dto.OptionResponse{
			OptionID:       opt.ID,
			Type:           opt.Type.String(),
			SettlementDays: opt.SettlementDays,
			UpfrontAmount:  opt.UpfrontAmount,
			ApprovedAmount: opt.ApprovedAmount,
			ExpectedLoss:   opt.ExpectedLoss,
			FrictionScore:  opt.FrictionScore,
			Description:    opt.Description,
		}
	}
	return out
}

func toComplianceResponse(result model.ComplianceResult) dto.ComplianceResponse {
	return dto.ComplianceResponse{
		Compliant:    result.Compliant,
		Violations:   result.Violations,
		OptionsCount: result.OptionsCount,
	}
}
