package restaurant

import (
	"context"
	"fmt"

	"github.com/jhoicas/Hoteleria-api/internal/application/ports"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

// ReceiptUseCase arma el comprobante PDF de una orden.
type ReceiptUseCase struct {
	orders    repository.RestaurantOrderRepository
	payments  repository.PaymentRepository
	companies repository.CompanyRepository
	generator ports.ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	orders repository.RestaurantOrderRepository,
	payments repository.PaymentRepository,
	companies repository.CompanyRepository,
	generator ports.ReceiptGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{orders: orders, payments: payments, companies: companies, generator: generator}
}

// Download devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *ReceiptUseCase) Download(ctx context.Context, companyID, orderID int64) ([]byte, string, error) {
	order, err := uc.orders.GetByID(ctx, companyID, orderID)
	if err != nil {
		return nil, "", err
	}
	if order == nil {
		return nil, "", domain.NotFound("orden")
	}
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", err
	}
	if company == nil {
		return nil, "", domain.NotFound("empresa")
	}
	payments, err := uc.payments.ListByOrder(ctx, companyID, orderID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateReceipt(ctx, ports.ReceiptData{Company: company, Order: order, Payments: payments})
	if err != nil {
		return nil, "", fmt.Errorf("generar comprobante: %w", err)
	}
	return pdf, fmt.Sprintf("orden-%d.pdf", order.ID), nil
}
