package server

import (
	"context"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/fuelsupply-server/internal/logger"
)

// ServiceName is the health service name covering the backing stores.
const ServiceName = "fuelsupply"

// Check reports the health of one dependency.
type Check func(ctx context.Context) error

// WatchDependencies runs checks every interval and publishes the combined
// result under ServiceName until ctx is done. The empty service name always
// reports process liveness.
func WatchDependencies(ctx context.Context, hs *health.Server, interval time.Duration, checks map[string]Check, logger *logger.Logger) {
	refresh := func() {
		status := healthpb.HealthCheckResponse_SERVING
		for name, check := range checks {
			cctx, cancel := context.WithTimeout(ctx, interval)
			err := check(cctx)
			cancel()
			if err != nil {
				logger.Warn("health check failed", "dependency", name, "error", err.Error())
				status = healthpb.HealthCheckResponse_NOT_SERVING
			}
		}
		hs.SetServingStatus(ServiceName, status)
	}

	refresh()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refresh()
		}
	}
}
