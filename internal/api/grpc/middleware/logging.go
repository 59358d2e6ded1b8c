package middleware

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/fuelsupply-server/internal/logger"
)

// InterceptorLogger adapts Logger to the logging interceptors. Interceptor
// levels share slog's numeric values.
func InterceptorLogger(l *logger.Logger) logging.Logger {
	return logging.LoggerFunc(func(ctx context.Context, lvl logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}

// RecoveryHandler logs a recovered panic and turns it into codes.Internal.
func RecoveryHandler(l *logger.Logger) func(ctx context.Context, p any) error {
	return func(ctx context.Context, p any) error {
		l.ErrorContext(ctx, "gRPC handler panicked",
			"panic", p,
			"stack", string(debug.Stack()))
		return status.Error(codes.Internal, "internal server error")
	}
}
