package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/dtroode/fuelsupply-server/internal/model"
)

const orderIDKey = "order_id"

var _ model.PaymentProvider = (*Provider)(nil)

type sessionCreator interface {
	Create(ctx context.Context, params *stripe.CheckoutSessionCreateParams) (*stripe.CheckoutSession, error)
}

// Provider creates hosted checkout sessions and verifies webhook payloads.
type Provider struct {
	sessions      sessionCreator
	webhookSecret string
	successURL    string
	cancelURL     string
}

// NewProvider creates Provider backed by the Stripe API.
func NewProvider(secretKey, webhookSecret, successURL, cancelURL string) *Provider {
	sc := stripe.NewClient(secretKey)
	return &Provider{
		sessions:      sc.V1CheckoutSessions,
		webhookSecret: webhookSecret,
		successURL:    successURL,
		cancelURL:     cancelURL,
	}
}

// CreateCheckout opens a one-line payment session for an order.
func (p *Provider) CreateCheckout(ctx context.Context, req model.CheckoutRequest) (model.CheckoutSession, error) {
	params := &stripe.CheckoutSessionCreateParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(p.successURL),
		CancelURL:         stripe.String(p.cancelURL),
		ClientReferenceID: stripe.String(req.OrderID.String()),
		CustomerEmail:     stripe.String(req.Email),
		Metadata:          map[string]string{orderIDKey: req.OrderID.String()},
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(req.Currency)),
					UnitAmount: stripe.Int64(req.AmountMinor),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
				},
			},
		},
	}

	s, err := p.sessions.Create(ctx, params)
	if err != nil {
		return model.CheckoutSession{}, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return model.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// ParseWebhook verifies the signature header and maps the event onto an
// order outcome. Event types unrelated to checkout are reported as ignored.
func (p *Provider) ParseWebhook(payload []byte, signature string) (model.PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, p.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return model.PaymentEvent{}, fmt.Errorf("failed to verify webhook: %w", err)
	}

	var outcome model.PaymentEventType
	switch event.Type {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		outcome = model.PaymentSucceeded
	case "checkout.session.async_payment_failed", "checkout.session.expired":
		outcome = model.PaymentFailed
	default:
		return model.PaymentEvent{Type: model.PaymentIgnored}, nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return model.PaymentEvent{}, fmt.Errorf("failed to decode checkout session: %w", err)
	}

	// completed fires for delayed methods too, before funds arrive
	if event.Type == "checkout.session.completed" && session.PaymentStatus == stripe.CheckoutSessionPaymentStatusUnpaid {
		return model.PaymentEvent{Type: model.PaymentIgnored, SessionID: session.ID}, nil
	}

	ref := session.Metadata[orderIDKey]
	if ref == "" {
		ref = session.ClientReferenceID
	}
	// a verified event that names no order of ours is acknowledged so that
	// it is not redelivered
	if ref == "" {
		return model.PaymentEvent{Type: model.PaymentIgnored, SessionID: session.ID, Reason: "no order reference"}, nil
	}
	orderID, err := uuid.Parse(ref)
	if err != nil {
		return model.PaymentEvent{Type: model.PaymentIgnored, SessionID: session.ID, Reason: "malformed order reference"}, nil
	}

	return model.PaymentEvent{Type: outcome, OrderID: orderID, SessionID: session.ID}, nil
}
