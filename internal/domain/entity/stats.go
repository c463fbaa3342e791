package entity

import "github.com/shopspring/decimal"

// Agregados crudos devueltos por los repositorios; los promedios se calculan en los casos de uso.

// RoomTypeAggregate totales de tipos de habitación de un tenant.
type RoomTypeAggregate struct {
	TotalTypes   int64
	TotalRooms   int64
	SumBasePrice decimal.Decimal
}

// CategoryAggregate totales de categorías.
type CategoryAggregate struct {
	TotalCategories int64
	TotalProducts   int64 // productos activos con categoría
}

// ProductAggregate totales de productos.
type ProductAggregate struct {
	TotalProducts  int64
	LowStock       int64
	InventoryValue decimal.Decimal // Σ cost * stock
	SumPrice       decimal.Decimal
}

// OrderAggregate totales de órdenes.
type OrderAggregate struct {
	TotalOrders int64
	OpenOrders  int64
	PaidOrders  int64
	Revenue     decimal.Decimal // Σ total de órdenes pagadas
}

// MethodSales ventas de órdenes pagadas agrupadas por método de pago.
type MethodSales struct {
	Method  string
	Orders  int64
	Revenue decimal.Decimal // Σ subtotales de las líneas (precio congelado al ordenar)
	COGS    decimal.Decimal // Σ quantity * products.cost
}

// ProductMargin ventas y costo de un producto en órdenes pagadas.
// Un producto eliminado sigue apareciendo con el nombre congelado en la línea.
type ProductMargin struct {
	ProductID   int64
	ProductName string
	UnitsSold   int64
	Revenue     decimal.Decimal
	COGS        decimal.Decimal
}

// GrossProfit ingresos menos costo.
func (m ProductMargin) GrossProfit() decimal.Decimal { return m.Revenue.Sub(m.COGS) }
