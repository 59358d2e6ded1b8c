package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/dtroode/fuelsupply-server/internal/logger"
	"github.com/dtroode/fuelsupply-server/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Order places fuel orders and settles them from payment webhooks.
type Order struct {
	store     model.OrderStore
	access    accessGate
	payments  model.PaymentProvider
	documents *Document
	events    model.EventPublisher
	logger    *logger.Logger
}

func NewOrder(
	store model.OrderStore,
	access accessGate,
	payments model.PaymentProvider,
	documents *Document,
	events model.EventPublisher,
	logger *logger.Logger,
) *Order {
	return &Order{
		store:     store,
		access:    access,
		payments:  payments,
		documents: documents,
		events:    events,
		logger:    logger,
	}
}

func validateOrder(p model.OrderParams) error {
	switch {
	case strings.TrimSpace(p.CustomerName) == "":
		return fmt.Errorf("%w: customer name is required", model.ErrValidation)
	case !model.ValidEmail(model.NormalizeEmail(p.Email)):
		return fmt.Errorf("%w: invalid email", model.ErrValidation)
	case !p.Litres.IsPositive():
		return fmt.Errorf("%w: litres must be positive", model.ErrValidation)
	case !p.UnitPrice.IsPositive():
		return fmt.Errorf("%w: unit price must be positive", model.ErrValidation)
	case len(strings.TrimSpace(p.Currency)) != 3:
		return fmt.Errorf("%w: currency must be a 3-letter code", model.ErrValidation)
	}
	return nil
}

// Create stores a pending order and opens a hosted checkout for it.
func (s *Order) Create(ctx context.Context, identity *model.Identity, p model.OrderParams) (model.CheckoutResult, error) {
	ctx, span := tracer.Start(ctx, "Order.Service.Create")
	defer span.End()

	if err := validateOrder(p); err != nil {
		return model.CheckoutResult{}, fail(span, err)
	}
	email := model.NormalizeEmail(p.Email)

	if _, err := s.access.Authorize(ctx, gateEmail(identity, email)); err != nil {
		return model.CheckoutResult{}, fail(span, err)
	}

	order := model.Order{
		ID:              uuid.New(),
		Email:           email,
		CustomerName:    strings.TrimSpace(p.CustomerName),
		Litres:          p.Litres,
		UnitPrice:       p.UnitPrice,
		Currency:        strings.ToUpper(strings.TrimSpace(p.Currency)),
		DeliveryAddress: strings.TrimSpace(p.DeliveryAddress),
		Status:          model.OrderStatusPending,
	}
	if identity != nil && identity.Subject != "" {
		subject := identity.Subject
		order.UserID = &subject
	}

	saved, err := s.store.Create(ctx, order)
	if err != nil {
		s.logger.Error("Order service: failed to create order",
			"email", email,
			"error", err.Error())
		return model.CheckoutResult{}, fail(span, storeError("create order", err))
	}
	span.SetAttributes(attribute.String("order_id", saved.ID.String()))

	session, err := s.payments.CreateCheckout(ctx, model.CheckoutRequest{
		OrderID:     saved.ID,
		Email:       saved.Email,
		Description: fmt.Sprintf("Fuel delivery, %s litres", saved.Litres.StringFixed(2)),
		Currency:    saved.Currency,
		AmountMinor: saved.Total().Mul(hundred).Round(0).IntPart(),
	})
	if err != nil {
		s.logger.Error("Order service: failed to create checkout",
			"order_id", saved.ID,
			"error", err.Error())
		return model.CheckoutResult{}, fail(span, fmt.Errorf("failed to create checkout: %w: %w", model.ErrUpstream, err))
	}

	if err := s.store.SetCheckoutSession(ctx, saved.ID, session.ID); err != nil {
		return model.CheckoutResult{}, fail(span, storeError("save checkout session", err))
	}

	s.logger.Info("Order service: checkout created",
		"order_id", saved.ID,
		"total", model.FormatMoney(saved.Total(), saved.Currency))

	return model.CheckoutResult{OrderID: saved.ID, RedirectURL: session.URL}, nil
}

// HandleWebhook applies a verified payment event. Replays are acknowledged
// without side effects.
func (s *Order) HandleWebhook(ctx context.Context, payload []byte, signature string) (model.WebhookResult, error) {
	ctx, span := tracer.Start(ctx, "Order.Service.HandleWebhook")
	defer span.End()

	event, err := s.payments.ParseWebhook(payload, signature)
	if err != nil {
		s.logger.Warn("Order service: webhook rejected", "error", err.Error())
		return model.WebhookResult{}, fail(span, fmt.Errorf("%w: invalid webhook", model.ErrValidation))
	}

	switch event.Type {
	case model.PaymentSucceeded:
		return s.settle(ctx, event)
	case model.PaymentFailed:
		err := s.store.MarkFailed(ctx, event.OrderID)
		if err != nil && !errors.Is(err, model.ErrConflict) && !errors.Is(err, model.ErrNotFound) {
			return model.WebhookResult{}, fail(span, storeError("mark order failed", err))
		}
		s.logger.Info("Order service: payment failed", "order_id", event.OrderID)
		return model.WebhookResult{OrderID: event.OrderID, Ignored: err != nil}, nil
	default:
		if event.Reason != "" {
			s.logger.Warn("Order service: payment event ignored",
				"session_id", event.SessionID,
				"reason", event.Reason)
		}
		return model.WebhookResult{Ignored: true}, nil
	}
}

func (s *Order) settle(ctx context.Context, event model.PaymentEvent) (model.WebhookResult, error) {
	order, err := s.store.MarkPaid(ctx, event.OrderID)
	if err != nil {
		if errors.Is(err, model.ErrConflict) || errors.Is(err, model.ErrNotFound) {
			s.logger.Info("Order service: payment event ignored",
				"order_id", event.OrderID,
				"reason", err.Error())
			return model.WebhookResult{OrderID: event.OrderID, Ignored: true}, nil
		}
		s.logger.Error("Order service: failed to mark order paid",
			"order_id", event.OrderID,
			"error", err.Error())
		return model.WebhookResult{}, storeError("mark order paid", err)
	}

	s.logger.Info("Order service: order paid", "order_id", order.ID)

	issuedAt := time.Now().UTC()
	if order.PaidAt != nil {
		issuedAt = order.PaidAt.UTC()
	}
	invoice, err := s.documents.SendInvoice(ctx, model.InvoiceRequest{
		To: order.Email,
		Payload: model.InvoicePayload{
			Number:        "INV-" + strings.ToUpper(order.ID.String()[:8]),
			CustomerName:  order.CustomerName,
			CustomerEmail: order.Email,
			Currency:      order.Currency,
			IssuedAt:      issuedAt,
			Items: []model.LineItem{{
				Description: "Fuel delivery (litres)",
				Quantity:    order.Litres,
				UnitPrice:   order.UnitPrice,
			}},
			Notes: order.DeliveryAddress,
		},
	})
	if err != nil {
		s.logger.Error("Order service: failed to send invoice",
			"order_id", order.ID,
			"error", err.Error())
	}

	publish(ctx, s.events, s.logger, model.Event{
		Type: model.EventOrderPaid,
		Key:  order.ID.String(),
		Payload: map[string]any{
			"order_id": order.ID,
			"email":    order.Email,
			"total":    model.FormatMoney(order.Total(), order.Currency),
		},
	})

	return model.WebhookResult{OrderID: order.ID, Emailed: invoice.Emailed}, nil
}
