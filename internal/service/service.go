package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dtroode/fuelsupply-server/internal/logger"
	"github.com/dtroode/fuelsupply-server/internal/model"
)

var tracer = otel.Tracer("github.com/dtroode/fuelsupply-server/internal/service")

// accessGate is the part of Access used by other services.
type accessGate interface {
	Classify(ctx context.Context, email string) (model.Classification, error)
	Authorize(ctx context.Context, email string) (model.Classification, error)
	RequireAdmin(ctx context.Context, email string) error
}

// storeError keeps domain sentinels intact and marks everything else as upstream.
func storeError(op string, err error) error {
	switch {
	case errors.Is(err, model.ErrNotFound),
		errors.Is(err, model.ErrConflict),
		errors.Is(err, model.ErrValidation):
		return err
	default:
		return fmt.Errorf("failed to %s: %w: %w", op, model.ErrUpstream, err)
	}
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// publish emits an event without affecting the caller's outcome.
func publish(ctx context.Context, events model.EventPublisher, log *logger.Logger, event model.Event) {
	if events == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if err := events.Publish(ctx, event); err != nil {
		log.Warn("failed to publish event",
			"type", event.Type,
			"key", event.Key,
			"error", err.Error())
	}
}
