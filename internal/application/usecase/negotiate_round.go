package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aeroxpay/credit-service/internal/application/dto"
	"github.com/aeroxpay/credit-service/internal/domain/model"
	"github.com/aeroxpay/credit-service/internal/domain/port"
	"github.com/aeroxpay/credit-service/internal/domain/service"
	"github.com/aeroxpay/credit-service/internal/domain/valueobject"
)

// NegotiateRoundUseCase handles one counterparty message against the
// company's negotiation session, creating the session on the first turn. The
// whole turn runs under the session store's per-key lock, so concurrent
// submissions for one company are strictly serialized.
type NegotiateRoundUseCase struct {
	store     port.SessionStore
	composer  port.MessageComposer
	publisher port.EventPublisher
	planner   *service.NegotiationPlanner

	maxRounds      int
	composeTimeout time.Duration
}

// NewNegotiateRoundUseCase wires the negotiation handler.
func NewNegotiateRoundUseCase(
	store port.SessionStore,
	composer port.MessageComposer,
	publisher port.EventPublisher,
	planner *service.NegotiationPlanner,
	maxRounds int,
	composeTimeout time.Duration,
) *NegotiateRoundUseCase {
	return &NegotiateRoundUseCase{
		store:          store,
		composer:       composer,
		publisher:      publisher,
		planner:        planner,
		maxRounds:      maxRounds,
		composeTimeout: composeTimeout,
	}
}

// Execute processes one negotiation turn.
func (uc *NegotiateRoundUseCase) Execute(ctx context.Context, in dto.NegotiationTurnRequest) (dto.NegotiationTurnResponse, error) {
	if in.CompanyID == "" {
		return dto.NegotiationTurnResponse{}, fmt.Errorf("%w: company ID is required", model.ErrInvalidInput)
	}
	if in.CustomerMessage == "" {
		return dto.NegotiationTurnResponse{}, fmt.Errorf("%w: customer message is required", model.ErrInvalidInput)
	}

	now := time.Now().UTC()
	session, err := uc.store.Update(ctx, in.CompanyID, func(current *model.NegotiationSession) (model.NegotiationSession, error) {
		if current == nil {
			opened, err := uc.openSession(in, now)
			if err != nil {
				return model.NegotiationSession{}, err
			}
			return uc.applyTurn(opened, in.CustomerMessage, now)
		}
		return uc.applyTurn(*current, in.CustomerMessage, now)
	})
	if err != nil {
		return dto.NegotiationTurnResponse{}, err
	}

	transcript := session.Transcript()
	turn := transcript[len(transcript)-1]

	reply := uc.composeReply(ctx, session, turn)

	if events := session.DomainEvents(); len(events) > 0 {
		if err := uc.publisher.Publish(ctx, events...); err != nil {
			return dto.NegotiationTurnResponse{}, fmt.Errorf("publish negotiation events: %w", err)
		}
	}

	resp := dto.NegotiationTurnResponse{
		SessionID:    session.ID(),
		CompanyID:    session.CompanyID(),
		Round:        turn.Round,
		State:        session.State().String(),
		Response:     reply,
		Escalate:     turn.Escalate,
		ExpectedLoss: turn.ExpectedLoss,
	}
	if turn.Offer != nil {
		resp.Offer = &dto.OfferResponse{
			UpfrontAmount:  turn.Offer.UpfrontAmount,
			SettlementDays: turn.Offer.SettlementDays,
			ApprovedAmount: turn.Offer.ApprovedAmount,
		}
	}
	return resp, nil
}

// openSession builds the frozen session from the seed data on the first turn.
func (uc *NegotiateRoundUseCase) openSession(in dto.NegotiationTurnRequest, now time.Time) (model.NegotiationSession, error) {
	req, err := model.NewBookingRequest(
		in.CompanyID, in.Booking.CompanyName,
		in.Booking.BookingAmount, in.Booking.CurrentOutstanding, in.Booking.CreditLimit,
		in.Booking.Route, in.Booking.BookingDate, in.Booking.SettlementDays, now,
	)
	if err != nil {
		return model.NegotiationSession{}, err
	}

	category, err := valueobject.NewRiskCategory(in.Scores.RiskCategory)
	if err != nil {
		category = valueobject.RiskCategoryYellow
	}
	scores := model.ScorePacket{
		IntentScore:   in.Scores.IntentScore,
		CapacityScore: in.Scores.CapacityScore,
		PD7:           in.Scores.PD7,
		PD14:          in.Scores.PD14,
		PD30:          in.Scores.PD30,
		Category:      category,
	}

	options, err := toTermOptions(in.InitialOptions)
	if err != nil {
		return model.NegotiationSession{}, err
	}
	return model.NewNegotiationSession(req, scores, options, uc.maxRounds, now)
}

// applyTurn parses the message and performs the matching transition.
func (uc *NegotiateRoundUseCase) applyTurn(session model.NegotiationSession, message string, now time.Time) (model.NegotiationSession, error) {
	cc := service.ParseCounterMessage(message)

	if cc.Accepted {
		if offer, el, ok := uc.standingOffer(session); ok {
			return session.RecordAgreement(message, offer, el, now)
		}
		// Nothing on the table to accept; plan as if it were a counter.
	}

	plan := uc.planner.Plan(session.Request(), session.Scores(), cc)
	if !plan.Found {
		return session.RecordEscalation(message, "no candidate satisfies the risk cap within stated constraints", now)
	}
	if cc.Accepted {
		return session.RecordAgreement(message, plan.Offer, plan.ExpectedLoss, now)
	}
	return session.RecordCounterOffer(message, plan.Offer, plan.ExpectedLoss, now)
}

// standingOffer returns what an acceptance refers to: the last counter-offer
// if one exists, otherwise the lowest-friction initial option.
func (uc *NegotiateRoundUseCase) standingOffer(session model.NegotiationSession) (model.Offer, decimal.Decimal, bool) {
	transcript := session.Transcript()
	for i := len(transcript) - 1; i >= 0; i-- {
		if transcript[i].Offer != nil {
			el := decimal.Zero
			if transcript[i].ExpectedLoss != nil {
				el = *transcript[i].ExpectedLoss
			}
			return *transcript[i].Offer, el, true
		}
	}

	options := session.InitialOptions()
	if len(options) == 0 {
		return model.Offer{}, decimal.Zero, false
	}
	best := options[0]
	for _, opt := range options[1:] {
		if opt.FrictionScore < best.FrictionScore {
			best = opt
		}
	}
	offer := model.Offer{
		UpfrontAmount:  best.UpfrontAmount,
		SettlementDays: best.SettlementDays,
		ApprovedAmount: best.ApprovedAmount,
	}
	return offer, best.ExpectedLoss, true
}

func toTermOptions(in []dto.OptionResponse) ([]model.TermOption, error) {
	options := make([]model.TermOption, 0, len(in))
	for _, opt := range in {
		termType, err := valueobject.NewTermType(opt.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: option %s: %s", model.ErrInvalidInput, opt.OptionID, err)
		}
		options = append(options, model.TermOption{
			ID:             opt.OptionID,
			Type:           termType,
			SettlementDays: opt.SettlementDays,
			UpfrontAmount:  opt.UpfrontAmount,
			ApprovedAmount: opt.ApprovedAmount,
			ExpectedLoss:   opt.ExpectedLoss,
			FrictionScore:  opt.FrictionScore,
			Description:    opt.Description,
		})
	}
	return options, nil
}

// composeReply renders the turn reply, degrading to a deterministic line when
// the composer fails. A turn never fails on presentation.
func (uc *NegotiateRoundUseCase) composeReply(ctx context.Context, session model.NegotiationSession, turn model.TurnRecord) string {
	composeCtx, cancel := context.WithTimeout(ctx, uc.composeTimeout)
	defer cancel()
	reply, err := uc.composer.ComposeNegotiationReply(composeCtx, session, turn)
	if err == nil && reply != "" {
		return reply
	}
	return fallbackReply(session, turn)
}

func fallbackReply(session model.NegotiationSession, turn model.TurnRecord) string {
	switch {
	case session.State().Equal(valueobject.SessionStateAgreed) && turn.Offer != nil:
		return fmt.Sprintf(
			"Agreed: ₹%s upfront with settlement in %d days for an approved amount of ₹%s.",
			turn.Offer.UpfrontAmount.StringFixed(2), turn.Offer.SettlementDays, turn.Offer.ApprovedAmount.StringFixed(2),
		)
	case turn.Offer != nil:
		return fmt.Sprintf(
			"Counter-offer: ₹%s upfront with settlement in %d days keeps this within our risk limits.",
			turn.Offer.UpfrontAmount.StringFixed(2), turn.Offer.SettlementDays,
		)
	default:
		return "We could not find terms matching your constraints; this request has been escalated for manual review."
	}
}

// ---------------------------------------------------------------------------
// ResetSessionUseCase
// ---------------------------------------------------------------------------

// ResetSessionUseCase clears any negotiation session for a company.
// Resetting a missing session succeeds; the operation is idempotent.
type ResetSessionUseCase struct {
	store port.SessionStore
}

// NewResetSessionUseCase wires the reset handler.
func NewResetSessionUseCase(store port.SessionStore) *ResetSessionUseCase {
	return &ResetSessionUseCase{store: store}
}

// Execute removes the session for the company, if any.
func (uc *ResetSessionUseCase) Execute(ctx context.Context, companyID string) error {
	if companyID == "" {
		return fmt.Errorf("%w: company ID is required", model.ErrInvalidInput)
	}
	if err := uc.store.Reset(ctx, companyID); err != nil && !errors.Is(err, model.ErrSessionNotFound) {
		return fmt.Errorf("reset negotiation session: %w", err)
	}
	return nil
}
