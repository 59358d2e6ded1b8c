package service

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/fuelsupply-server/internal/mocks"
	"github.com/dtroode/fuelsupply-server/internal/model"
	"github.com/dtroode/fuelsupply-server/internal/testutil"
)

func invoicePayload() model.InvoicePayload {
	return model.InvoicePayload{
		Number:        "INV-1",
		CustomerName:  "Ana",
		CustomerEmail: "ana@example.com",
		Currency:      "EUR",
		IssuedAt:      time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
		Items: []model.LineItem{
			{Description: "Diesel", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("10.00")},
			{Description: "Delivery", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("5.50")},
		},
	}
}

func TestDocument_RenderInvoice(t *testing.T) {
	d := NewDocument(stubRenderer{}, nil, nil, testutil.MakeNoopLogger())

	first, err := d.RenderInvoice(invoicePayload())
	require.NoError(t, err)
	second, err := d.RenderInvoice(invoicePayload())
	require.NoError(t, err)

	assert.Equal(t, first.Content, second.Content)
	assert.NotEqual(t, first.Filename, second.Filename)
	assert.True(t, strings.HasPrefix(first.Filename, "invoice-20260304-"))
	assert.True(t, strings.HasSuffix(first.Filename, ".pdf"))
	assert.Equal(t, "25.50 EUR", model.FormatMoney(first.Total, first.Currency))
}

func TestDocument_RenderInvoice_Validation(t *testing.T) {
	d := NewDocument(stubRenderer{}, nil, nil, testutil.MakeNoopLogger())

	empty := invoicePayload()
	empty.Items = nil
	_, err := d.RenderInvoice(empty)
	assert.ErrorIs(t, err, model.ErrValidation)

	negative := invoicePayload()
	negative.Items[0].UnitPrice = decimal.NewFromInt(-1)
	_, err = d.RenderInvoice(negative)
	assert.ErrorIs(t, err, model.ErrValidation)

	zero := invoicePayload()
	zero.Items[1].Quantity = decimal.Zero
	_, err = d.RenderInvoice(zero)
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestDocument_Dispatch(t *testing.T) {
	t.Run("delivered", func(t *testing.T) {
		mailer := mocks.NewMailer(t)
		mailer.On("Send", mock.Anything, mock.Anything).Return("msg-1", nil).Once()

		d := NewDocument(stubRenderer{}, mailer, nil, testutil.MakeNoopLogger())
		res := d.Dispatch(context.Background(), model.Message{To: []string{"a@example.com"}, Subject: "s"})

		assert.Equal(t, model.DeliveryResult{Delivered: true, MessageID: "msg-1"}, res)
	})

	t.Run("provider failure", func(t *testing.T) {
		mailer := mocks.NewMailer(t)
		mailer.On("Send", mock.Anything, mock.Anything).Return("", errors.New("401")).Once()

		d := NewDocument(stubRenderer{}, mailer, nil, testutil.MakeNoopLogger())
		res := d.Dispatch(context.Background(), model.Message{To: []string{"a@example.com"}})

		assert.False(t, res.Delivered)
		assert.NotEmpty(t, res.Reason)
	})

	t.Run("provider panic", func(t *testing.T) {
		mailer := mocks.NewMailer(t)
		mailer.On("Send", mock.Anything, mock.Anything).Run(func(mock.Arguments) { panic("boom") }).Return("", nil).Once()

		d := NewDocument(stubRenderer{}, mailer, nil, testutil.MakeNoopLogger())
		res := d.Dispatch(context.Background(), model.Message{To: []string{"a@example.com"}})

		assert.False(t, res.Delivered)
	})

	t.Run("base64 attachment is decoded", func(t *testing.T) {
		mailer := mocks.NewMailer(t)
		mailer.On("Send", mock.Anything, mock.MatchedBy(func(m model.Message) bool {
			a := m.Attachments[0]
			return string(a.Content) == "%PDF" && a.ContentBase64 == "" && a.ContentType == "application/pdf"
		})).Return("msg-2", nil).Once()

		d := NewDocument(stubRenderer{}, mailer, nil, testutil.MakeNoopLogger())
		res := d.Dispatch(context.Background(), model.Message{
			To:          []string{"a@example.com"},
			Attachments: []model.Attachment{{Filename: "x.pdf", ContentBase64: base64.StdEncoding.EncodeToString([]byte("%PDF"))}},
		})

		assert.True(t, res.Delivered)
	})

	t.Run("invalid base64 attachment", func(t *testing.T) {
		d := NewDocument(stubRenderer{}, mocks.NewMailer(t), nil, testutil.MakeNoopLogger())
		res := d.Dispatch(context.Background(), model.Message{
			To:          []string{"a@example.com"},
			Attachments: []model.Attachment{{Filename: "x.pdf", ContentBase64: "***"}},
		})

		assert.False(t, res.Delivered)
		assert.Equal(t, "invalid attachment encoding", res.Reason)
	})

	t.Run("no mailer", func(t *testing.T) {
		d := NewDocument(stubRenderer{}, nil, nil, testutil.MakeNoopLogger())
		res := d.Dispatch(context.Background(), model.Message{To: []string{"a@example.com"}})
		assert.False(t, res.Delivered)
	})
}

func TestDocument_SendInvoice(t *testing.T) {
	mailer := mocks.NewMailer(t)
	storage := mocks.NewStorage(t)
	d := NewDocument(stubRenderer{}, mailer, storage, testutil.MakeNoopLogger())

	storage.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "invoices/invoice-20260304-")
	}), mock.Anything, int64(len("%PDF-invoice-INV-1")), "application/pdf").Return(nil)
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(m model.Message) bool {
		return m.To[0] == "ana@example.com" && m.Subject == "Invoice INV-1" && strings.Contains(m.HTML, "25.50 EUR")
	})).Return("msg", nil)

	res, err := d.SendInvoice(context.Background(), model.InvoiceRequest{Payload: invoicePayload()})
	require.NoError(t, err)
	assert.True(t, res.Emailed)
	assert.Equal(t, "25.50 EUR", res.Total)
	assert.Equal(t, "invoices/"+res.Filename, res.ArchiveKey)
}

func TestDocument_SendInvoice_ArchiveAndMailFailures(t *testing.T) {
	mailer := mocks.NewMailer(t)
	storage := mocks.NewStorage(t)
	d := NewDocument(stubRenderer{}, mailer, storage, testutil.MakeNoopLogger())

	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("s3 down"))
	mailer.On("Send", mock.Anything, mock.Anything).Return("", errors.New("rejected"))

	res, err := d.SendInvoice(context.Background(), model.InvoiceRequest{Payload: invoicePayload(), To: "bo@example.com"})
	require.NoError(t, err)
	assert.False(t, res.Emailed)
	assert.Empty(t, res.ArchiveKey)
	assert.NotEmpty(t, res.Reason)
}

func TestDocument_SendInvoice_InvalidRecipient(t *testing.T) {
	d := NewDocument(stubRenderer{}, nil, nil, testutil.MakeNoopLogger())
	p := invoicePayload()
	p.CustomerEmail = ""

	_, err := d.SendInvoice(context.Background(), model.InvoiceRequest{Payload: p})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestDocument_Download(t *testing.T) {
	storage := mocks.NewStorage(t)
	d := NewDocument(stubRenderer{}, nil, storage, testutil.MakeNoopLogger())
	ctx := context.Background()

	// a single storage round-trip per download; Exists is never consulted
	storage.On("Download", mock.Anything, "invoices/a.pdf").Return(io.NopCloser(strings.NewReader("%PDF")), nil).Once()
	storage.On("Download", mock.Anything, "invoices/missing.pdf").Return(nil, model.ErrNotFound).Once()
	storage.On("Download", mock.Anything, "contracts/x/b.pdf").Return(nil, errors.New("connection reset")).Once()

	rc, err := d.Download(ctx, "invoices/a.pdf")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "%PDF", string(body))

	_, err = d.Download(ctx, "invoices/missing.pdf")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = d.Download(ctx, "contracts/x/b.pdf")
	assert.ErrorIs(t, err, model.ErrUpstream)
	storage.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)

	for _, key := range []string{"../etc/passwd", "invoices/../secret", "other/a.pdf", "/invoices/a.pdf"} {
		_, err = d.Download(ctx, key)
		assert.ErrorIs(t, err, model.ErrValidation, key)
	}
}
