package model

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus enumerates order payment states.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusFailed  OrderStatus = "failed"
)

// Order is a fuel delivery request paid through hosted checkout.
type Order struct {
	ID                uuid.UUID
	UserID            *string
	Email             string
	CustomerName      string
	Litres            decimal.Decimal
	UnitPrice         decimal.Decimal
	Currency          string
	DeliveryAddress   string
	Status            OrderStatus
	CheckoutSessionID string
	CreatedAt         time.Time
	PaidAt            *time.Time
}

// Total returns litres multiplied by unit price.
func (o Order) Total() decimal.Decimal {
	return o.Litres.Mul(o.UnitPrice)
}

// OrderParams contains parameters to place an order.
type OrderParams struct {
	CustomerName    string
	Email           string
	Litres          decimal.Decimal
	UnitPrice       decimal.Decimal
	Currency        string
	DeliveryAddress string
}

// CheckoutResult is returned after an order was placed.
type CheckoutResult struct {
	OrderID     uuid.UUID
	RedirectURL string
}

// OrderStore persists orders.
type OrderStore interface {
	Create(ctx context.Context, order Order) (Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (Order, error)
	SetCheckoutSession(ctx context.Context, id uuid.UUID, sessionID string) error
	// MarkPaid moves a pending order to paid. Returns ErrConflict otherwise.
	MarkPaid(ctx context.Context, id uuid.UUID) (Order, error)
	// MarkFailed moves a pending order to failed. Returns ErrConflict otherwise.
	MarkFailed(ctx context.Context, id uuid.UUID) error
}

// CheckoutRequest describes a hosted checkout session to create.
type CheckoutRequest struct {
	OrderID     uuid.UUID
	Email       string
	Description string
	Currency    string
	AmountMinor int64
}

// CheckoutSession is the provider side of a checkout.
type CheckoutSession struct {
	ID  string
	URL string
}

// PaymentEventType enumerates webhook outcomes relevant to orders.
type PaymentEventType string

const (
	PaymentSucceeded PaymentEventType = "succeeded"
	PaymentFailed    PaymentEventType = "failed"
	PaymentIgnored   PaymentEventType = "ignored"
)

// PaymentEvent is a verified webhook event. Reason explains an ignored
// event that looked relevant but could not be applied.
type PaymentEvent struct {
	Type      PaymentEventType
	OrderID   uuid.UUID
	SessionID string
	Reason    string
}

// PaymentProvider creates checkouts and verifies webhooks.
type PaymentProvider interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (CheckoutSession, error)
	ParseWebhook(payload []byte, signature string) (PaymentEvent, error)
}

// WebhookResult reports how a webhook was handled.
type WebhookResult struct {
	OrderID uuid.UUID
	Ignored bool
	Emailed bool
}
