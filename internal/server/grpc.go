package server

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/alfredjeanlab/jobly/internal/store"
)

// ServiceName is the health-check service name reported for the API.
const ServiceName = "jobly.v1.Jobly"

// NewGRPCServer creates a gRPC server with standard interceptors and
// registers the health service and reflection. Both the overall ("") and
// ServiceName statuses start as NOT_SERVING until MonitorHealth reports in.
func NewGRPCServer(authToken string, hs *health.Server) *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			RecoveryInterceptor,
			LoggingInterceptor,
			AuthInterceptor(authToken),
		),
	)

	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	return srv
}

// MonitorHealth pings the store every interval and mirrors the result into
// hs until ctx is canceled. The first check runs immediately.
func MonitorHealth(ctx context.Context, s store.Store, hs *health.Server, interval time.Duration) {
	check := func() {
		pingCtx, cancel := context.WithTimeout(ctx, healthTimeout)
		defer cancel()

		st := healthpb.HealthCheckResponse_SERVING
		if err := s.Ping(pingCtx); err != nil {
			slog.Warn("database ping failed", "error", err)
			st = healthpb.HealthCheckResponse_NOT_SERVING
		}
		hs.SetServingStatus("", st)
		hs.SetServingStatus(ServiceName, st)
	}

	check()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}
