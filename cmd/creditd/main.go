package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aeroxpay/credit-service/internal/application/usecase"
	"github.com/aeroxpay/credit-service/internal/domain/port"
	"github.com/aeroxpay/credit-service/internal/domain/service"
	"github.com/aeroxpay/credit-service/internal/infrastructure/adapter"
	"github.com/aeroxpay/credit-service/internal/infrastructure/config"
	"github.com/aeroxpay/credit-service/internal/infrastructure/kafka"
	"github.com/aeroxpay/credit-service/internal/infrastructure/memory"
	grpcPresentation "github.com/aeroxpay/credit-service/internal/presentation/grpc"
	"github.com/aeroxpay/credit-service/internal/presentation/rest"
	pkgkafka "github.com/aeroxpay/credit-service/pkg/kafka"
	"github.com/aeroxpay/credit-service/pkg/observability"
	"github.com/shopspring/decimal"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()
	cfg.Validate()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:  "info",
		Format: "json",
	})
	slog.SetDefault(logger)

	logger.Info("starting credit-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Initialize tracing.
	shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdown(ctx) }() //nolint:errcheck // best-effort tracer shutdown
	}

	// Initialize metrics.
	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}

	// Domain services.
	constraints := service.RiskConstraints{
		MaxExpectedLoss:          decimal.NewFromFloat(cfg.Risk.MaxExpectedLoss),
		LossGivenDefault:         cfg.Risk.LossGivenDefault,
		SettlementDaysMin:        cfg.Risk.SettlementDaysMin,
		SettlementDaysMax:        cfg.Risk.SettlementDaysMax,
		PartialApprovalFractions: cfg.Risk.PartialApprovalFractions,
	}
	thresholds := service.GateThresholds{
		BlockIntent:          cfg.Decision.BlockIntentThreshold,
		ApproveIntent:        cfg.Decision.ApproveIntentThreshold,
		ApproveCapacity:      cfg.Decision.ApproveCapacityThreshold,
		NegotiateCapacityMin: cfg.Decision.NegotiateCapacityMin,
		NegotiateCapacityMax: cfg.Decision.NegotiateCapacityMax,
	}
	calculator := service.NewExposureCalculator(constraints)
	gate := service.NewDecisionGate(thresholds)
	optimizer := service.NewTermOptimizer(constraints)
	monitor := service.NewComplianceMonitor(constraints)
	planner := service.NewNegotiationPlanner(constraints)

	// Wire infrastructure adapters.
	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	publisher := kafka.NewKafkaEventPublisher(kafkaProducer, "credit-events", logger)
	defer publisher.Close()

	scoreProvider := adapter.NewRiskModelAdapter(adapter.RiskModelConfig{
		BaseURL:        cfg.Scoring.BaseURL,
		APIKey:         cfg.Scoring.APIKey,
		TimeoutSeconds: cfg.Scoring.TimeoutSeconds,
		MaxRetries:     cfg.Scoring.MaxRetries,
		RetryBackoffMs: cfg.Scoring.RetryBackoffMs,
	}, nil)

	template := adapter.NewTemplateComposer()
	var composer port.MessageComposer = template
	if cfg.Composer.APIKey != "" {
		client := adapter.NewTextClient(adapter.ModelComposerConfig{
			APIKey:    cfg.Composer.APIKey,
			Model:     cfg.Composer.Model,
			MaxTokens: int64(cfg.Composer.MaxTokens),
		})
		composer = adapter.NewModelComposer(client, template, logger)
		logger.Info("model-backed composer enabled", "model", cfg.Composer.Model)
	} else {
		logger.Info("no composer API key, using template composer")
	}

	sessionStore := memory.NewSessionStore()

	// Wire use cases.
	scoreTimeout := time.Duration(cfg.Scoring.TimeoutSeconds) * time.Second
	composeTimeout := time.Duration(cfg.Composer.TimeoutSeconds) * time.Second
	processUC := usecase.NewProcessBookingUseCase(
		scoreProvider, composer, publisher,
		calculator, gate, optimizer, monitor,
		scoreTimeout, composeTimeout,
	)
	negotiateUC := usecase.NewNegotiateRoundUseCase(
		sessionStore, composer, publisher, planner,
		cfg.Risk.MaxNegotiationRounds, composeTimeout,
	)
	resetUC := usecase.NewResetSessionUseCase(sessionStore)

	// gRPC server.
	handler := grpcPresentation.NewCreditHandler(processUC, negotiateUC, resetUC)
	grpcServer := grpcPresentation.NewServer(handler, logger)

	// HTTP server (REST API, health checks, metrics).
	mux := http.NewServeMux()
	rest.NewHealthHandler(logger).RegisterRoutes(mux)
	rest.NewCreditHandler(processUC, negotiateUC, resetUC, logger).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("credit-service stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
