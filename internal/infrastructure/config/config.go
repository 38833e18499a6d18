package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type KafkaConfig struct {
	Brokers []string
}

type DecisionConfig struct {
	BlockIntentThreshold     float64
	ApproveIntentThreshold   float64
	ApproveCapacityThreshold float64
	NegotiateCapacityMin     float64
	NegotiateCapacityMax     float64
}

type RiskConfig struct {
	MaxExpectedLoss          float64
	LossGivenDefault         float64
	SettlementDaysMin        int
	SettlementDaysMax        int
	PartialApprovalFractions []float64
	MaxNegotiationRounds     int
}

type ScoringConfig struct {
	BaseURL        string
	APIKey         string
	TimeoutSeconds int
	MaxRetries     int
	RetryBackoffMs int
}

type ComposerConfig struct {
	APIKey         string
	Model          string
	MaxTokens      int
	TimeoutSeconds int
}

type Config struct {
	GRPCPort    int
	HTTPPort    int
	Kafka       KafkaConfig
	Decision    DecisionConfig
	Risk        RiskConfig
	Scoring     ScoringConfig
	Composer    ComposerConfig
	ServiceName string
}

func (c Config) Validate() {
	if c.Decision.BlockIntentThreshold <= c.Decision.ApproveIntentThreshold {
		panic("BLOCK_INTENT_THRESHOLD must exceed APPROVE_INTENT_THRESHOLD")
	}
	if c.Decision.NegotiateCapacityMin > c.Decision.NegotiateCapacityMax {
		panic("NEGOTIATE_CAPACITY_MIN must not exceed NEGOTIATE_CAPACITY_MAX")
	}
	if c.Risk.MaxExpectedLoss <= 0 {
		panic("MAX_EXPECTED_LOSS must be positive")
	}
	if c.Risk.LossGivenDefault <= 0 || c.Risk.LossGivenDefault > 1 {
		panic("LOSS_GIVEN_DEFAULT must be in (0, 1]")
	}
	if c.Risk.SettlementDaysMin <= 0 || c.Risk.SettlementDaysMin > c.Risk.SettlementDaysMax {
		panic("settlement day bounds are invalid")
	}
	if c.Risk.MaxNegotiationRounds <= 0 {
		panic("MAX_NEGOTIATION_ROUNDS must be positive")
	}
}

func Load() Config {
	return Config{
		GRPCPort: getEnvInt("GRPC_PORT", 9094),
		HTTPPort: getEnvInt("HTTP_PORT", 8094),
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
		},
		Decision: DecisionConfig{
			BlockIntentThreshold:     getEnvFloat("BLOCK_INTENT_THRESHOLD", 0.60),
			ApproveIntentThreshold:   getEnvFloat("APPROVE_INTENT_THRESHOLD", 0.40),
			ApproveCapacityThreshold: getEnvFloat("APPROVE_CAPACITY_THRESHOLD", 0.70),
			NegotiateCapacityMin:     getEnvFloat("NEGOTIATE_CAPACITY_MIN", 0.40),
			NegotiateCapacityMax:     getEnvFloat("NEGOTIATE_CAPACITY_MAX", 0.70),
		},
		Risk: RiskConfig{
			MaxExpectedLoss:          getEnvFloat("MAX_EXPECTED_LOSS", 5000),
			LossGivenDefault:         getEnvFloat("LOSS_GIVEN_DEFAULT", 0.70),
			SettlementDaysMin:        getEnvInt("SETTLEMENT_DAYS_MIN", 7),
			SettlementDaysMax:        getEnvInt("SETTLEMENT_DAYS_MAX", 90),
			PartialApprovalFractions: getEnvFloats("PARTIAL_APPROVAL_FRACTIONS", []float64{0.5, 0.4, 0.3}),
			MaxNegotiationRounds:     getEnvInt("MAX_NEGOTIATION_ROUNDS", 3),
		},
		Scoring: ScoringConfig{
			BaseURL:        getEnv("SCORING_BASE_URL", ""),
			APIKey:         getEnv("SCORING_API_KEY", ""),
			TimeoutSeconds: getEnvInt("SCORING_TIMEOUT_SECONDS", 5),
			MaxRetries:     getEnvInt("SCORING_MAX_RETRIES", 3),
			RetryBackoffMs: getEnvInt("SCORING_RETRY_BACKOFF_MS", 200),
		},
		Composer: ComposerConfig{
			APIKey:         getEnv("ANTHROPIC_API_KEY", ""),
			Model:          getEnv("COMPOSER_MODEL", "claude-sonnet-4-5"),
			MaxTokens:      getEnvInt("COMPOSER_MAX_TOKENS", 1024),
			TimeoutSeconds: getEnvInt("COMPOSER_TIMEOUT_SECONDS", 8),
		},
		ServiceName: "credit-service",
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvFloats(key string, fallback []float64) []float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fallback
		}
		out = append(out, f)
	}
	return out
}
