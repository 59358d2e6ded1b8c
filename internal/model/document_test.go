package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(qty, price string) LineItem {
	return LineItem{
		Description: "diesel",
		Quantity:    decimal.RequireFromString(qty),
		UnitPrice:   decimal.RequireFromString(price),
	}
}

func TestInvoicePayload_Validate(t *testing.T) {
	tests := []struct {
		name    string
		payload InvoicePayload
		wantErr string
	}{
		{
			name:    "valid",
			payload: InvoicePayload{Currency: "EUR", Items: []LineItem{item("10", "1.5")}},
		},
		{
			name:    "free item",
			payload: InvoicePayload{Currency: "EUR", Items: []LineItem{item("1", "0")}},
		},
		{
			name:    "no items",
			payload: InvoicePayload{Currency: "EUR"},
			wantErr: "invoice has no items",
		},
		{
			name:    "bad currency",
			payload: InvoicePayload{Currency: "EURO", Items: []LineItem{item("1", "1")}},
			wantErr: "currency must be a 3-letter code",
		},
		{
			name:    "zero quantity",
			payload: InvoicePayload{Currency: "EUR", Items: []LineItem{item("0", "1")}},
			wantErr: "item 0 quantity must be positive",
		},
		{
			name:    "negative price",
			payload: InvoicePayload{Currency: "EUR", Items: []LineItem{item("1", "1"), item("1", "-2")}},
			wantErr: "item 1 unit price must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.payload.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInvoicePayload_Total(t *testing.T) {
	p := InvoicePayload{Items: []LineItem{item("1000", "1.234"), item("2.5", "4")}}

	assert.True(t, decimal.RequireFromString("1244").Equal(p.Total()))
	assert.True(t, decimal.Zero.Equal(InvoicePayload{}.Total()))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "1234.50 EUR", FormatMoney(decimal.RequireFromString("1234.5"), "EUR"))
	assert.Equal(t, "0.01 USD", FormatMoney(decimal.RequireFromString("0.006"), "USD"))
}
