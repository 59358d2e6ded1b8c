package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dtroode/fuelsupply-server/internal/logger"
	"github.com/dtroode/fuelsupply-server/internal/model"
)

// SignatureHeader carries the payment provider's webhook signature.
const SignatureHeader = "Stripe-Signature"

// OrderService places orders and applies payment webhooks.
type OrderService interface {
	Create(ctx context.Context, identity *model.Identity, p model.OrderParams) (model.CheckoutResult, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) (model.WebhookResult, error)
}

// Order handles checkout and payment webhook endpoints.
type Order struct {
	orderService   OrderService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewOrder creates a new Order handler.
func NewOrder(orderService OrderService, contextManager model.ContextManager, logger *logger.Logger) *Order {
	return &Order{
		orderService:   orderService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type orderRequest struct {
	CustomerName    string          `json:"customer_name"`
	Email           string          `json:"email"`
	Litres          decimal.Decimal `json:"litres"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Currency        string          `json:"currency"`
	DeliveryAddress string          `json:"delivery_address"`
}

type orderResponse struct {
	ID  uuid.UUID `json:"id"`
	URL string    `json:"url"`
}

type webhookResponse struct {
	Received bool `json:"received"`
	Emailed  bool `json:"emailed"`
}

// Create places an order and returns the hosted checkout URL.
func (h *Order) Create(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.orderService.Create(r.Context(), optionalIdentity(r.Context(), h.contextManager), model.OrderParams{
		CustomerName:    req.CustomerName,
		Email:           req.Email,
		Litres:          req.Litres,
		UnitPrice:       req.UnitPrice,
		Currency:        req.Currency,
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, orderResponse{ID: res.OrderID, URL: res.RedirectURL})
}

// Webhook verifies and applies a payment provider event. The raw body is
// required for signature verification.
func (h *Order) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.logger.Warn("Order handler: failed to read webhook body", "error", err.Error())
		WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "unreadable body"})
		return
	}

	res, err := h.orderService.HandleWebhook(r.Context(), payload, r.Header.Get(SignatureHeader))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, webhookResponse{Received: true, Emailed: res.Emailed})
}
