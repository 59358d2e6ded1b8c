package stripe

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/dtroode/fuelsupply-server/internal/model"
)

const testSecret = "whsec_test"

type fakeSessions struct {
	params *stripe.CheckoutSessionCreateParams
	err    error
}

func (f *fakeSessions) Create(_ context.Context, params *stripe.CheckoutSessionCreateParams) (*stripe.CheckoutSession, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return &stripe.CheckoutSession{ID: "cs_1", URL: "https://checkout.example/cs_1"}, nil
}

func newTestProvider(s sessionCreator) *Provider {
	return &Provider{
		sessions:      s,
		webhookSecret: testSecret,
		successURL:    "https://app/success",
		cancelURL:     "https://app/cancel",
	}
}

func signed(t *testing.T, payload string) ([]byte, string) {
	t.Helper()
	sp := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload: []byte(payload),
		Secret:  testSecret,
	})
	return sp.Payload, sp.Header
}

func eventJSON(eventType, object string) string {
	return fmt.Sprintf(`{"id":"evt_1","object":"event","type":%q,"data":{"object":%s}}`, eventType, object)
}

func TestProvider_CreateCheckout(t *testing.T) {
	fake := &fakeSessions{}
	p := newTestProvider(fake)
	orderID := uuid.New()

	got, err := p.CreateCheckout(context.Background(), model.CheckoutRequest{
		OrderID:     orderID,
		Email:       "ana@example.com",
		Description: "Diesel 100 L",
		Currency:    "EUR",
		AmountMinor: 15050,
	})

	require.NoError(t, err)
	assert.Equal(t, model.CheckoutSession{ID: "cs_1", URL: "https://checkout.example/cs_1"}, got)
	require.NotNil(t, fake.params)
	assert.Equal(t, "payment", *fake.params.Mode)
	assert.Equal(t, orderID.String(), fake.params.Metadata[orderIDKey])
	assert.Equal(t, orderID.String(), *fake.params.ClientReferenceID)
	require.Len(t, fake.params.LineItems, 1)
	assert.Equal(t, "eur", *fake.params.LineItems[0].PriceData.Currency)
	assert.Equal(t, int64(15050), *fake.params.LineItems[0].PriceData.UnitAmount)
}

func TestProvider_CreateCheckoutError(t *testing.T) {
	p := newTestProvider(&fakeSessions{err: errors.New("declined")})

	_, err := p.CreateCheckout(context.Background(), model.CheckoutRequest{OrderID: uuid.New(), Currency: "EUR"})
	require.Error(t, err)
}

func TestProvider_ParseWebhook(t *testing.T) {
	orderID := uuid.New()
	session := func(status string) string {
		return fmt.Sprintf(`{"id":"cs_1","object":"checkout.session","payment_status":%q,"metadata":{"order_id":%q}}`,
			status, orderID.String())
	}

	tests := []struct {
		name     string
		payload  string
		expected model.PaymentEvent
	}{
		{
			name:     "completed and paid",
			payload:  eventJSON("checkout.session.completed", session("paid")),
			expected: model.PaymentEvent{Type: model.PaymentSucceeded, OrderID: orderID, SessionID: "cs_1"},
		},
		{
			name:     "completed but unpaid",
			payload:  eventJSON("checkout.session.completed", session("unpaid")),
			expected: model.PaymentEvent{Type: model.PaymentIgnored, SessionID: "cs_1"},
		},
		{
			name:     "async failure",
			payload:  eventJSON("checkout.session.async_payment_failed", session("unpaid")),
			expected: model.PaymentEvent{Type: model.PaymentFailed, OrderID: orderID, SessionID: "cs_1"},
		},
		{
			name:     "expired",
			payload:  eventJSON("checkout.session.expired", session("unpaid")),
			expected: model.PaymentEvent{Type: model.PaymentFailed, OrderID: orderID, SessionID: "cs_1"},
		},
		{
			name:     "unrelated event",
			payload:  eventJSON("customer.created", `{"id":"cus_1","object":"customer"}`),
			expected: model.PaymentEvent{Type: model.PaymentIgnored},
		},
		{
			name: "client reference fallback",
			payload: eventJSON("checkout.session.completed",
				fmt.Sprintf(`{"id":"cs_1","object":"checkout.session","payment_status":"paid","client_reference_id":%q}`, orderID.String())),
			expected: model.PaymentEvent{Type: model.PaymentSucceeded, OrderID: orderID, SessionID: "cs_1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := newTestProvider(&fakeSessions{})
			payload, header := signed(t, tt.payload)

			got, err := p.ParseWebhook(payload, header)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestProvider_ParseWebhookRejects(t *testing.T) {
	p := newTestProvider(&fakeSessions{})

	t.Run("bad signature", func(t *testing.T) {
		payload := []byte(eventJSON("checkout.session.completed", `{"id":"cs_1"}`))
		_, err := p.ParseWebhook(payload, "t=1,v1=deadbeef")
		require.Error(t, err)
	})
}

func TestProvider_ParseWebhookUnreferencedSession(t *testing.T) {
	p := newTestProvider(&fakeSessions{})

	tests := []struct {
		name    string
		session string
		reason  string
	}{
		{
			name:    "missing order reference",
			session: `{"id":"cs_1","object":"checkout.session","payment_status":"paid"}`,
			reason:  "no order reference",
		},
		{
			name:    "malformed order reference",
			session: `{"id":"cs_1","object":"checkout.session","payment_status":"paid","metadata":{"order_id":"nope"}}`,
			reason:  "malformed order reference",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, header := signed(t, eventJSON("checkout.session.completed", tt.session))

			got, err := p.ParseWebhook(payload, header)

			require.NoError(t, err)
			assert.Equal(t, model.PaymentIgnored, got.Type)
			assert.Equal(t, "cs_1", got.SessionID)
			assert.Equal(t, tt.reason, got.Reason)
		})
	}
}
