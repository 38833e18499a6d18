package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/aeroxpay/credit-service/internal/application/dto"
	"github.com/aeroxpay/credit-service/internal/application/usecase"
	"github.com/aeroxpay/credit-service/internal/domain/model"
	"github.com/aeroxpay/credit-service/internal/domain/valueobject"
)

// CreditHandler exposes the credit decision operations over HTTP.
type CreditHandler struct {
	process   *usecase.ProcessBookingUseCase
	negotiate *usecase.NegotiateRoundUseCase
	reset     *usecase.ResetSessionUseCase
	logger    *slog.Logger

	decisions   metric.Int64Counter
	rounds      metric.Int64Counter
	escalations metric.Int64Counter
}

// NewCreditHandler creates the HTTP handler and its instruments.
func NewCreditHandler(
	process *usecase.ProcessBookingUseCase,
	negotiate *usecase.NegotiateRoundUseCase,
	reset *usecase.ResetSessionUseCase,
	logger *slog.Logger,
) *CreditHandler {
	meter := otel.Meter("credit-service")
	decisions, _ := meter.Int64Counter("credit_decisions_total",
		metric.WithDescription("Booking decisions by disposition"))
	rounds, _ := meter.Int64Counter("negotiation_rounds_total",
		metric.WithDescription("Negotiation turns processed"))
	escalations, _ := meter.Int64Counter("negotiation_escalations_total",
		metric.WithDescription("Negotiation sessions escalated to manual review"))

	return &CreditHandler{
		process:     process,
		negotiate:   negotiate,
		reset:       reset,
		logger:      logger,
		decisions:   decisions,
		rounds:      rounds,
		escalations: escalations,
	}
}

// RegisterRoutes attaches the credit API routes to the given mux.
func (h *CreditHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/booking/process", h.processBooking)
	mux.HandleFunc("POST /api/negotiate", h.negotiateRound)
	mux.HandleFunc("POST /api/negotiate/reset", h.resetSession)
}

func (h *CreditHandler) processBooking(w http.ResponseWriter, r *http.Request) {
	var req dto.ProcessBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.process.Execute(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "booking decision failed",
			"company_id", req.CompanyID, "error", err)
		writeDomainError(w, err)
		return
	}

	h.decisions.Add(r.Context(), 1, metric.WithAttributes(
		attribute.String("disposition", result.Decision)))
	writeJSON(w, http.StatusOK, result)
}

func (h *CreditHandler) negotiateRound(w http.ResponseWriter, r *http.Request) {
	var req dto.NegotiationTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.negotiate.Execute(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "negotiation turn failed",
			"company_id", req.CompanyID, "error", err)
		writeDomainError(w, err)
		return
	}

	h.rounds.Add(r.Context(), 1, metric.WithAttributes(
		attribute.String("state", result.State)))
	if result.Escalate {
		h.escalations.Add(r.Context(), 1)
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *CreditHandler) resetSession(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.reset.Execute(r.Context(), req.CompanyID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"company_id": req.CompanyID,
		"status":     "reset",
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps domain errors onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrScoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, model.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, valueobject.ErrSessionTerminal):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
