package grpc

import (
	"fmt"
	"log/slog"
	"net"
	"os"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Server wraps a gRPC server with the credit handler registered.
// Authentication and TLS terminate at the platform gateway; the service only
// listens on the internal network.
type Server struct {
	gs      *grpc.Server
	handler *CreditHandler
	logger  *slog.Logger
}

// NewServer creates and configures the gRPC server.
func NewServer(handler *CreditHandler, logger *slog.Logger) *Server {
	gs := grpc.NewServer()

	// Register gRPC health check.
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(gs, healthSrv)
	healthSrv.SetServingStatus("credit-service", healthpb.HealthCheckResponse_SERVING)

	// Only enable reflection when GRPC_REFLECTION=true.
	if os.Getenv("GRPC_REFLECTION") == "true" {
		reflection.Register(gs)
	}

	RegisterCreditDecisionServiceServer(gs, handler)

	return &Server{
		gs:      gs,
		handler: handler,
		logger:  logger,
	}
}

// Serve starts the gRPC server on the specified address.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	s.logger.Info("gRPC server listening", "addr", addr)
	return s.gs.Serve(lis)
}

// GracefulStop stops the server gracefully.
func (s *Server) GracefulStop() {
	s.logger.Info("gRPC server shutting down")
	s.gs.GracefulStop()
}
