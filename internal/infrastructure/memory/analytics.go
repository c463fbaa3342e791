package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregados de rentabilidad calculados sobre el almacén.
type AnalyticsRepo struct{ c conn }

func NewAnalyticsRepository(s *Store) *AnalyticsRepo { return &AnalyticsRepo{conn{s: s}} }

// paidOrders recorre las órdenes pagadas activas del período.
func (d *data) paidOrders(companyID int64, from, to time.Time, fn func(o *entity.RestaurantOrder)) {
	for _, o := range d.orders.rows {
		if !visible(&o.Audit, companyID) || o.Status != entity.OrderPaid || o.PaidAt == nil {
			continue
		}
		if o.PaidAt.Before(from) || o.PaidAt.After(to) {
			continue
		}
		fn(&o)
	}
}

// unitCost costo actual del producto, aunque esté eliminado.
func (d *data) unitCost(productID int64) decimal.Decimal {
	if p, ok := d.products.rows[productID]; ok {
		return p.Cost
	}
	return decimal.Zero
}

func (r *AnalyticsRepo) SalesByPaymentMethod(_ context.Context, companyID int64, from, to time.Time) ([]entity.MethodSales, error) {
	d, unlock := r.c.lock()
	defer unlock()
	byMethod := make(map[string]*entity.MethodSales)
	d.paidOrders(companyID, from, to, func(o *entity.RestaurantOrder) {
		m := byMethod[o.PaymentMethod]
		if m == nil {
			m = &entity.MethodSales{Method: o.PaymentMethod, Revenue: decimal.Zero, COGS: decimal.Zero}
			byMethod[o.PaymentMethod] = m
		}
		m.Orders++
		for _, it := range o.Items {
			m.Revenue = m.Revenue.Add(it.Subtotal)
			m.COGS = m.COGS.Add(d.unitCost(it.ProductID).Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	})
	out := make([]entity.MethodSales, 0, len(byMethod))
	for _, m := range byMethod {
		out = append(out, *m)
	}
	slices.SortFunc(out, func(a, b entity.MethodSales) int {
		if c := b.Revenue.Cmp(a.Revenue); c != 0 {
			return c
		}
		return cmp.Compare(a.Method, b.Method)
	})
	return out, nil
}

func (r *AnalyticsRepo) ProductMargins(_ context.Context, companyID int64, from, to time.Time, limit int) ([]entity.ProductMargin, error) {
	d, unlock := r.c.lock()
	defer unlock()
	byProduct := make(map[int64]*entity.ProductMargin)
	d.paidOrders(companyID, from, to, func(o *entity.RestaurantOrder) {
		for _, it := range o.Items {
			m := byProduct[it.ProductID]
			if m == nil {
				m = &entity.ProductMargin{ProductID: it.ProductID, ProductName: it.ProductName, Revenue: decimal.Zero, COGS: decimal.Zero}
				if p, ok := d.products.rows[it.ProductID]; ok {
					m.ProductName = p.Name
				}
				byProduct[it.ProductID] = m
			}
			m.UnitsSold += int64(it.Quantity)
			m.Revenue = m.Revenue.Add(it.Subtotal)
			m.COGS = m.COGS.Add(d.unitCost(it.ProductID).Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	})
	out := make([]entity.ProductMargin, 0, len(byProduct))
	for _, m := range byProduct {
		out = append(out, *m)
	}
	slices.SortFunc(out, func(a, b entity.ProductMargin) int {
		if c := b.GrossProfit().Cmp(a.GrossProfit()); c != 0 {
			return c
		}
		return cmp.Compare(a.ProductID, b.ProductID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
