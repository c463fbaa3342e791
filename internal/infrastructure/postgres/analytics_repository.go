package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para rentabilidad del restaurante.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// paidItems líneas de órdenes pagadas del período. El costo sale de products aunque el producto
// esté eliminado; la línea conserva precio y nombre congelados.
const paidItems = `
	FROM restaurant_orders o
	JOIN order_items i ON i.order_id = o.id
	LEFT JOIN products p ON p.id = i.product_id
	WHERE o.company_id = $1
	  AND o.deleted_at IS NULL
	  AND o.status = 'PAID'
	  AND o.paid_at BETWEEN $2 AND $3`

// SalesByPaymentMethod agrupa ingresos y COGS por método de pago.
func (r *AnalyticsRepo) SalesByPaymentMethod(ctx context.Context, companyID int64, from, to time.Time) ([]entity.MethodSales, error) {
	query := `
	SELECT
	    o.payment_method,
	    COUNT(DISTINCT o.id),
	    COALESCE(SUM(i.subtotal), 0)                         AS revenue,
	    COALESCE(SUM(i.quantity * COALESCE(p.cost, 0)), 0)   AS cogs` + paidItems + `
	GROUP BY o.payment_method
	ORDER BY revenue DESC, o.payment_method`

	rows, err := r.q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.SalesByPaymentMethod: %w", err)
	}
	defer rows.Close()

	out := []entity.MethodSales{}
	for rows.Next() {
		var m entity.MethodSales
		if err := rows.Scan(&m.Method, &m.Orders, &m.Revenue, &m.COGS); err != nil {
			return nil, fmt.Errorf("analytics.SalesByPaymentMethod scan: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ProductMargins ranking de productos por utilidad bruta (ingresos - unidades × costo).
func (r *AnalyticsRepo) ProductMargins(ctx context.Context, companyID int64, from, to time.Time, limit int) ([]entity.ProductMargin, error) {
	query := `
	SELECT
	    i.product_id,
	    COALESCE(p.name, MAX(i.product_name)),
	    SUM(i.quantity)::BIGINT,
	    SUM(i.subtotal)                                AS revenue,
	    SUM(i.quantity) * COALESCE(p.cost, 0)          AS cogs` + paidItems + `
	GROUP BY i.product_id, p.name, p.cost
	ORDER BY SUM(i.subtotal) - SUM(i.quantity) * COALESCE(p.cost, 0) DESC, i.product_id
	LIMIT $4`

	rows, err := r.q.Query(ctx, query, companyID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.ProductMargins: %w", err)
	}
	defer rows.Close()

	out := []entity.ProductMargin{}
	for rows.Next() {
		var m entity.ProductMargin
		if err := rows.Scan(&m.ProductID, &m.ProductName, &m.UnitsSold, &m.Revenue, &m.COGS); err != nil {
			return nil, fmt.Errorf("analytics.ProductMargins scan: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
