package router

import (
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/fuelsupply-server/internal/api/grpc/middleware"
	"github.com/dtroode/fuelsupply-server/internal/logger"
)

// Router builds the operational gRPC server.
type Router struct {
	health healthpb.HealthServer
	logger *logger.Logger
}

// New creates new gRPC Router instance serving health.
func New(health healthpb.HealthServer, logger *logger.Logger) *Router {
	return &Router{health: health, logger: logger}
}

// Register creates the gRPC server with logging and panic recovery
// interceptors and registers the health service.
func (r *Router) Register() *grpc.Server {
	logOpts := []logging.Option{
		logging.WithLogOnEvents(logging.FinishCall),
	}
	recoveryOpts := []recovery.Option{
		recovery.WithRecoveryHandlerContext(middleware.RecoveryHandler(r.logger)),
	}
	interceptorLogger := middleware.InterceptorLogger(r.logger)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.UnaryServerInterceptor(interceptorLogger, logOpts...),
			recovery.UnaryServerInterceptor(recoveryOpts...),
		),
		grpc.ChainStreamInterceptor(
			logging.StreamServerInterceptor(interceptorLogger, logOpts...),
			recovery.StreamServerInterceptor(recoveryOpts...),
		),
	)
	healthpb.RegisterHealthServer(s, r.health)

	return s
}
