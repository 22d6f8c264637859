// Package grpc exposes the standard grpc.health.v1 service so that clients
// can probe server reachability without touching the document API.
package grpc

import (
	"github.com/MKhiriev/go-offline-sync/internal/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health-check service name reported for the document API.
const ServiceName = "offlinesync.Documents"

// Handler is the root gRPC transport handler.
//
// It owns the health server whose status tracks the lifecycle of the process:
// SERVING after [Handler.Register], NOT_SERVING after [Handler.Shutdown].
type Handler struct {
	health *health.Server

	logger *logger.Logger
}

// NewHandler constructs a [Handler]. Nothing is reported as serving until
// Register is called.
func NewHandler(logger *logger.Logger) *Handler {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		health: hs,
		logger: logger,
	}
}

// Register attaches the handler's services to server and marks them serving.
func (h *Handler) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h.health)
	h.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	h.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	h.logger.Debug().Str("func", "grpc.Handler.Register").Msg("health service registered")
}

// Shutdown flips every status to NOT_SERVING so probing clients go offline
// before the listener closes.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
