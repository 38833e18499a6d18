package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
	"time"

	"github.com/aeroxpay/credit-service/internal/domain/model"
	"github.com/aeroxpay/credit-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Risk Model Adapter – structured for real integration
// ---------------------------------------------------------------------------

// RiskModelConfig holds configuration for the risk model adapter.
type RiskModelConfig struct {
	// BaseURL is the base URL for the risk model serving API.
	BaseURL string
	// APIKey is the authentication credential for the serving API.
	APIKey string
	// TimeoutSeconds is the client timeout.
	TimeoutSeconds int
	// MaxRetries is the maximum number of retry attempts on transient failures.
	MaxRetries int
	// RetryBackoffMs is the base backoff duration in milliseconds between retries.
	RetryBackoffMs int
}

// DefaultRiskModelConfig returns sensible defaults for development.
func DefaultRiskModelConfig() RiskModelConfig {
	return RiskModelConfig{
		BaseURL:        "https://scoring.aeroxpay.internal",
		APIKey:         "dev-api-key",
		TimeoutSeconds: 5,
		MaxRetries:     3,
		RetryBackoffMs: 200,
	}
}

// ScoringClient defines the interface for calling the model serving API.
// This enables testing with mock implementations.
type ScoringClient interface {
	// FetchScores retrieves the score packet for a company and amount.
	FetchScores(ctx context.Context, companyID string, bookingAmount string) (model.ScorePacket, error)
}

// RiskModelAdapter implements port.ScoreProvider. With a real ScoringClient
// it calls the serving API with retry logic; without one it returns
// deterministic profiles, with canned packets for the known demo companies
// and hash-derived scores for everything else.
type RiskModelAdapter struct {
	config RiskModelConfig
	client ScoringClient // nil = use simulated responses
}

// NewRiskModelAdapter creates a new adapter with the given configuration.
// If client is nil, simulated responses are used.
func NewRiskModelAdapter(config RiskModelConfig, client ScoringClient) *RiskModelAdapter {
	return &RiskModelAdapter{
		config: config,
		client: client,
	}
}

// cannedProfiles are the fixed demo counterparties. Scores are stable so the
// same company always walks the same decision path.
var cannedProfiles = map[string]model.ScorePacket{
	"IN-TRV-000123": {
		IntentScore:   0.15,
		CapacityScore: 0.85,
		PD7:           0.005,
		PD14:          0.01,
		PD30:          0.03,
		Category:      valueobject.RiskCategoryGreen,
	},
	"IN-TRV-000567": {
		IntentScore:   0.32,
		CapacityScore: 0.55,
		PD7:           0.02,
		PD14:          0.08,
		PD30:          0.15,
		Category:      valueobject.RiskCategoryYellow,
	},
	"IN-TRV-000999": {
		IntentScore:   0.85,
		CapacityScore: 0.25,
		PD7:           0.25,
		PD14:          0.40,
		PD30:          0.60,
		Category:      valueobject.RiskCategoryRed,
	},
}

// GetScores retrieves the risk score packet for the request.
// It implements port.ScoreProvider.
func (a *RiskModelAdapter) GetScores(ctx context.Context, req model.BookingRequest) (model.ScorePacket, error) {
	if req.CompanyID() == "" {
		return model.ScorePacket{}, fmt.Errorf("%w: company ID is required", model.ErrInvalidInput)
	}

	if a.client != nil {
		packet, err := a.fetchWithRetry(ctx, req)
		if err != nil {
			return model.ScorePacket{}, fmt.Errorf("risk model request failed: %w", err)
		}
		return packet, nil
	}

	if packet, ok := cannedProfiles[req.CompanyID()]; ok {
		return packet, nil
	}
	return a.simulateScores(req.CompanyID()), nil
}

// fetchWithRetry calls the serving API with exponential backoff retry logic.
func (a *RiskModelAdapter) fetchWithRetry(ctx context.Context, req model.BookingRequest) (model.ScorePacket, error) {
	var lastErr error

	for attempt := 0; attempt <= a.config.MaxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff with jitter.
			backoff := time.Duration(a.config.RetryBackoffMs) * time.Millisecond * (1 << uint(attempt-1))
			jitter := time.Duration(rand.Int63n(int64(backoff) / 2))
			select {
			case <-ctx.Done():
				return model.ScorePacket{}, ctx.Err()
			case <-time.After(backoff + jitter):
			}
		}

		packet, err := a.client.FetchScores(ctx, req.CompanyID(), req.BookingAmount().String())
		if err == nil {
			return packet, nil
		}
		lastErr = err
	}

	return model.ScorePacket{}, fmt.Errorf("exhausted %d retries: %w", a.config.MaxRetries, lastErr)
}

// simulateScores derives a deterministic score packet from the company ID
// hash, making results reproducible for testing.
func (a *RiskModelAdapter) simulateScores(companyID string) model.ScorePacket {
	h := sha256.Sum256([]byte(companyID))

	intent := float64(binary.BigEndian.Uint16(h[0:2])%900) / 1000.0
	capacity := float64(binary.BigEndian.Uint16(h[2:4])%900)/1000.0 + 0.05
	pd7 := float64(binary.BigEndian.Uint16(h[4:6])%100) / 1000.0
	pd30 := pd7 + float64(binary.BigEndian.Uint16(h[6:8])%300)/1000.0
	pd14 := (pd7 + pd30) / 2

	category := valueobject.RiskCategoryYellow
	if intent >= 0.60 {
		category = valueobject.RiskCategoryRed
	} else if intent < 0.40 && capacity > 0.70 {
		category = valueobject.RiskCategoryGreen
	}

	return model.ScorePacket{
		IntentScore:   intent,
		CapacityScore: capacity,
		PD7:           pd7,
		PD14:          pd14,
		PD30:          pd30,
		Category:      category,
	}
}
