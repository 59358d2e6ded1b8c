package model

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is a single invoice position.
type LineItem struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// Amount returns quantity multiplied by unit price.
func (i LineItem) Amount() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// InvoicePayload is the input of invoice rendering.
type InvoicePayload struct {
	Number        string
	CustomerName  string
	CustomerEmail string
	Currency      string
	IssuedAt      time.Time
	Items         []LineItem
	Notes         string
}

// Validate checks that the payload can be rendered.
func (p InvoicePayload) Validate() error {
	if len(p.Items) == 0 {
		return fmt.Errorf("%w: invoice has no items", ErrValidation)
	}
	if len(p.Currency) != 3 {
		return fmt.Errorf("%w: currency must be a 3-letter code", ErrValidation)
	}
	for i, item := range p.Items {
		if !item.Quantity.IsPositive() {
			return fmt.Errorf("%w: item %d quantity must be positive", ErrValidation, i)
		}
		if item.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: item %d unit price must not be negative", ErrValidation, i)
		}
	}
	return nil
}

// Total returns the sum of all line amounts.
func (p InvoicePayload) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range p.Items {
		total = total.Add(item.Amount())
	}
	return total
}

// FormatMoney renders an amount with two decimals and its currency code.
func FormatMoney(amount decimal.Decimal, currency string) string {
	return fmt.Sprintf("%s %s", amount.StringFixed(2), currency)
}

// Document is a rendered artifact ready for archive or attachment.
type Document struct {
	Content     []byte
	Filename    string
	ContentType string
	Total       decimal.Decimal
	Currency    string
}

// Renderer produces PDF bytes. Identical input yields identical bytes.
type Renderer interface {
	RenderInvoice(payload InvoicePayload) ([]byte, error)
	RenderContract(contract Contract, acceptance *Acceptance) ([]byte, error)
}

// Attachment is a message attachment given either as raw bytes or base64.
type Attachment struct {
	Filename      string
	ContentType   string
	Content       []byte
	ContentBase64 string
}

// Message is an outgoing email.
type Message struct {
	To          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// DeliveryResult reports the outcome of a single dispatch attempt.
type DeliveryResult struct {
	Delivered bool
	MessageID string
	Reason    string
}

// Mailer hands a message to the email provider.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// InvoiceRequest asks the pipeline to render and send an invoice.
type InvoiceRequest struct {
	Payload InvoicePayload
	To      string
	Subject string
}

// InvoiceResult reports what the invoice pipeline did.
type InvoiceResult struct {
	Filename   string
	Total      string
	ArchiveKey string
	Emailed    bool
	Reason     string
}
