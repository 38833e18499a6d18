package grpc

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/aeroxpay/credit-service/internal/application/dto"
	"github.com/aeroxpay/credit-service/internal/application/usecase"
	"github.com/aeroxpay/credit-service/internal/domain/model"
	"github.com/aeroxpay/credit-service/internal/domain/valueobject"
)

// CreditHandler exposes the credit decision operations over gRPC.
type CreditHandler struct {
	UnimplementedCreditDecisionServiceServer

	process   *usecase.ProcessBookingUseCase
	negotiate *usecase.NegotiateRoundUseCase
	reset     *usecase.ResetSessionUseCase
}

// NewCreditHandler creates a new handler with all use-case dependencies.
func NewCreditHandler(
	process *usecase.ProcessBookingUseCase,
	negotiate *usecase.NegotiateRoundUseCase,
	reset *usecase.ResetSessionUseCase,
) *CreditHandler {
	return &CreditHandler{
		process:   process,
		negotiate: negotiate,
		reset:     reset,
	}
}

// ProcessBooking runs the decision pipeline for one booking request.
func (h *CreditHandler) ProcessBooking(ctx context.Context, in *ProcessBookingRequest) (*ProcessBookingResponse, error) {
	req, err := toBookingDTO(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	result, err := h.process.Execute(ctx, req)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &ProcessBookingResponse{Result: result}, nil
}

// Negotiate handles one negotiation turn.
func (h *CreditHandler) Negotiate(ctx context.Context, in *NegotiateRequest) (*NegotiateResponse, error) {
	booking, err := toBookingDTO(&in.Booking)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	result, err := h.negotiate.Execute(ctx, dto.NegotiationTurnRequest{
		CompanyID:       in.CompanyId,
		CustomerMessage: in.CustomerMessage,
		Booking:         booking,
		Scores:          in.Scores,
		InitialOptions:  in.InitialOptions,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &NegotiateResponse{Result: result}, nil
}

// ResetSession clears the negotiation session for a company.
func (h *CreditHandler) ResetSession(ctx context.Context, in *ResetSessionRequest) (*ResetSessionResponse, error) {
	if err := h.reset.Execute(ctx, in.CompanyId); err != nil {
		return nil, toStatusError(err)
	}
	return &ResetSessionResponse{CompanyId: in.CompanyId}, nil
}

func toBookingDTO(in *ProcessBookingRequest) (dto.ProcessBookingRequest, error) {
	amount, err := decimal.NewFromString(in.BookingAmount)
	if err != nil {
		return dto.ProcessBookingRequest{}, fmt.Errorf("invalid booking amount: %w", err)
	}
	outstanding := decimal.Zero
	if in.CurrentOutstanding != "" {
		if outstanding, err = decimal.NewFromString(in.CurrentOutstanding); err != nil {
			return dto.ProcessBookingRequest{}, fmt.Errorf("invalid outstanding amount: %w", err)
		}
	}
	limit := decimal.Zero
	if in.CreditLimit != "" {
		if limit, err = decimal.NewFromString(in.CreditLimit); err != nil {
			return dto.ProcessBookingRequest{}, fmt.Errorf("invalid credit limit: %w", err)
		}
	}

	return dto.ProcessBookingRequest{
		CompanyID:          in.CompanyId,
		CompanyName:        in.CompanyName,
		BookingAmount:      amount,
		CurrentOutstanding: outstanding,
		CreditLimit:        limit,
		Route:              in.Route,
		SettlementDays:     int(in.SettlementDays),
	}, nil
}

// toStatusError maps domain errors onto gRPC status codes.
func toStatusError(err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrScoreUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, model.ErrSessionNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, valueobject.ErrSessionTerminal):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, model.ErrComplianceViolation):
		return status.Error(codes.Internal, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
