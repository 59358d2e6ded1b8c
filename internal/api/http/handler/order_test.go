package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/fuelsupply-server/internal/mocks"
	"github.com/dtroode/fuelsupply-server/internal/model"
	"github.com/dtroode/fuelsupply-server/internal/testutil"
)

func TestOrder_Create(t *testing.T) {
	t.Parallel()

	orderID := uuid.New()
	svc := mocks.NewOrderService(t)
	svc.On("Create", mock.Anything, (*model.Identity)(nil), mock.MatchedBy(func(p model.OrderParams) bool {
		return p.Litres.Equal(decimal.NewFromInt(500)) &&
			p.UnitPrice.Equal(decimal.RequireFromString("1.459")) &&
			p.Currency == "EUR"
	})).Return(model.CheckoutResult{OrderID: orderID, RedirectURL: "https://checkout.example/cs"}, nil)
	h := NewOrder(svc, contextManager, testutil.MakeNoopLogger())

	body := `{"customer_name":"Ana","email":"ana@example.com","litres":500,"unit_price":"1.459","currency":"EUR","delivery_address":"Main st 1"}`
	rec := httptest.NewRecorder()
	h.Create(rec, newRequest(http.MethodPost, "/api/orders", body, nil, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"`+orderID.String()+`","url":"https://checkout.example/cs"}`, rec.Body.String())
}

func TestOrder_Create_Blocked(t *testing.T) {
	t.Parallel()

	svc := mocks.NewOrderService(t)
	svc.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(model.CheckoutResult{}, model.ErrBlocked)
	h := NewOrder(svc, contextManager, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.Create(rec, newRequest(http.MethodPost, "/api/orders", `{"email":"eve@example.com","litres":1,"unit_price":1,"currency":"EUR"}`, nil, nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"blocked"}`, rec.Body.String())
}

func TestOrder_Webhook(t *testing.T) {
	t.Parallel()

	payload := `{"id":"evt_1"}`

	t.Run("applied", func(t *testing.T) {
		svc := mocks.NewOrderService(t)
		svc.On("HandleWebhook", mock.Anything, []byte(payload), "t=1,v1=abc").
			Return(model.WebhookResult{OrderID: uuid.New(), Emailed: true}, nil)
		h := NewOrder(svc, contextManager, testutil.MakeNoopLogger())

		r := newRequest(http.MethodPost, "/api/webhooks/payment", payload, nil, nil)
		r.Header.Set(SignatureHeader, "t=1,v1=abc")
		rec := httptest.NewRecorder()
		h.Webhook(rec, r)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"received":true,"emailed":true}`, rec.Body.String())
	})

	t.Run("bad signature", func(t *testing.T) {
		svc := mocks.NewOrderService(t)
		svc.On("HandleWebhook", mock.Anything, []byte(payload), "").
			Return(model.WebhookResult{}, fmt.Errorf("%w: invalid webhook", model.ErrValidation))
		h := NewOrder(svc, contextManager, testutil.MakeNoopLogger())

		rec := httptest.NewRecorder()
		h.Webhook(rec, newRequest(http.MethodPost, "/api/webhooks/payment", payload, nil, nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"validation failed: invalid webhook"}`, rec.Body.String())
	})
}
