package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/dtroode/fuelsupply-server/internal/logger"
	"github.com/dtroode/fuelsupply-server/internal/model"
)

// DocumentService sends invoices and serves archived documents.
type DocumentService interface {
	SendInvoice(ctx context.Context, req model.InvoiceRequest) (model.InvoiceResult, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
}

// Document handles the admin document endpoints.
type Document struct {
	documentService DocumentService
	logger          *logger.Logger
}

// NewDocument creates a new Document handler.
func NewDocument(documentService DocumentService, logger *logger.Logger) *Document {
	return &Document{documentService: documentService, logger: logger}
}

type lineItemRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type invoiceRequest struct {
	Number        string            `json:"number"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email"`
	Currency      string            `json:"currency"`
	IssuedAt      *time.Time        `json:"issued_at"`
	Items         []lineItemRequest `json:"items"`
	Notes         string            `json:"notes"`
	To            string            `json:"to"`
	Subject       string            `json:"subject"`
}

type invoiceResponse struct {
	OK         bool   `json:"ok"`
	Emailed    bool   `json:"emailed"`
	Filename   string `json:"filename"`
	Total      string `json:"total"`
	ArchiveKey string `json:"archive_key,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// SendInvoice renders and emails an ad-hoc invoice.
func (h *Document) SendInvoice(w http.ResponseWriter, r *http.Request) {
	var req invoiceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	payload := model.InvoicePayload{
		Number:        req.Number,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Currency:      req.Currency,
		IssuedAt:      time.Now().UTC(),
		Notes:         req.Notes,
	}
	if req.IssuedAt != nil {
		payload.IssuedAt = req.IssuedAt.UTC()
	}
	for _, item := range req.Items {
		payload.Items = append(payload.Items, model.LineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	res, err := h.documentService.SendInvoice(r.Context(), model.InvoiceRequest{
		Payload: payload,
		To:      req.To,
		Subject: req.Subject,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, invoiceResponse{
		OK:         true,
		Emailed:    res.Emailed,
		Filename:   res.Filename,
		Total:      res.Total,
		ArchiveKey: res.ArchiveKey,
		Reason:     res.Reason,
	})
}

// Download streams an archived PDF.
func (h *Document) Download(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	rc, err := h.documentService.Download(r.Context(), key)
	if err != nil {
		WriteError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", path.Base(key)))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Warn("Document handler: failed to stream document",
			"key", key,
			"error", err.Error())
	}
}
