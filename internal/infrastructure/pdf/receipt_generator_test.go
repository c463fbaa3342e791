package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Hoteleria-api/internal/application/ports"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "USD 1,234,567.50", FormatMoney(decimal.RequireFromString("1234567.5"), "USD"))
	assert.Equal(t, "999.00", FormatMoney(decimal.NewFromInt(999), ""))
	assert.Equal(t, "-1,000.10", FormatMoney(decimal.RequireFromString("-1000.1"), ""))
}

func TestGenerateReceipt(t *testing.T) {
	order := &entity.RestaurantOrder{
		ID:          12,
		TableNumber: "T1",
		Status:      entity.OrderPaid,
		Items: []entity.OrderItem{
			{ProductName: "Café", Quantity: 2, UnitPrice: decimal.NewFromInt(3), Subtotal: decimal.NewFromInt(6)},
		},
		Total: decimal.NewFromInt(6),
		Audit: entity.NewAudit(1, 1, time.Now()),
	}
	data := ports.ReceiptData{
		Company:  &entity.Company{ID: 1, Name: "Hotel Central", TaxID: "900123", Currency: "USD"},
		Order:    order,
		Payments: []*entity.Payment{{Amount: decimal.NewFromInt(6), Method: entity.PaymentCash}},
	}

	pdf, err := NewMarotoReceiptGenerator().GenerateReceipt(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	_, err = NewMarotoReceiptGenerator().GenerateReceipt(context.Background(), ports.ReceiptData{})
	assert.Error(t, err)
}
