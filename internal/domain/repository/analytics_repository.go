package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
)

// AnalyticsRepository consultas de solo lectura para rentabilidad del restaurante.
// Solo cuentan órdenes PAID activas cuyo paid_at cae en [from, to].
type AnalyticsRepository interface {
	// SalesByPaymentMethod ordenado por ingresos descendente.
	SalesByPaymentMethod(ctx context.Context, companyID int64, from, to time.Time) ([]entity.MethodSales, error)
	// ProductMargins devuelve hasta limit productos ordenados por utilidad bruta descendente.
	ProductMargins(ctx context.Context, companyID int64, from, to time.Time, limit int) ([]entity.ProductMargin, error)
}
