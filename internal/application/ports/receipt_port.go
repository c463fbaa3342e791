package ports

import (
	"context"

	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
)

// ReceiptData datos necesarios para el comprobante de una orden.
type ReceiptData struct {
	Company  *entity.Company
	Order    *entity.RestaurantOrder
	Payments []*entity.Payment
}

// ReceiptGenerator genera el comprobante imprimible (PDF) de una orden.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, data ReceiptData) ([]byte, error)
}
