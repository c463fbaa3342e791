package entity

import "github.com/shopspring/decimal"

// Product artículo del inventario (insumos, bebidas, platos).
// Stock se modifica solo con incrementos atómicos (AdjustStock) o desde órdenes.
type Product struct {
	ID           int64
	Name         string
	SKU          string
	Description  string
	CategoryID   *int64
	CategoryName string // expandido
	Price        decimal.Decimal
	Cost         decimal.Decimal
	Stock        int
	MinStock     int
	Unit         string
	Audit
}

// LowStock informa si el stock está en o por debajo del mínimo.
func (p *Product) LowStock() bool { return p.Stock <= p.MinStock }
