package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de orden.
const (
	OrderPending   = "PENDING"
	OrderPreparing = "PREPARING"
	OrderServed    = "SERVED"
	OrderPaid      = "PAID"
	OrderCancelled = "CANCELLED"
)

// Métodos de pago.
const (
	PaymentCash       = "CASH"
	PaymentCard       = "CARD"
	PaymentTransfer   = "TRANSFER"
	PaymentRoomCharge = "ROOM_CHARGE"
)

// orderTransitions transiciones manuales permitidas; PAID solo se alcanza con un pago.
var orderTransitions = map[string][]string{
	OrderPending:   {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderServed, OrderCancelled},
	OrderServed:    {OrderCancelled},
}

// RestaurantOrder orden de consumo, opcionalmente asociada a mesa y cliente.
type RestaurantOrder struct {
	ID            int64
	TableID       *int64
	TableNumber   string // expandido
	ClientID      *int64
	ClientName    string // expandido
	Status        string
	Items         []OrderItem
	Total         decimal.Decimal
	Notes         string
	PaymentMethod string
	PaidAt        *time.Time
	Audit
}

// OrderItem línea de la orden; el precio se congela al crearla.
type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// Payment pago registrado sobre una orden.
type Payment struct {
	ID        int64
	OrderID   int64
	Amount    decimal.Decimal
	Method    string
	Reference string
	Audit
}

// IsOpen informa si la orden aún no está cerrada (pagada o cancelada).
func (o *RestaurantOrder) IsOpen() bool {
	return o.Status != OrderPaid && o.Status != OrderCancelled
}

// CanTransition informa si el cambio manual de estado está permitido.
func (o *RestaurantOrder) CanTransition(to string) bool {
	for _, s := range orderTransitions[o.Status] {
		if s == to {
			return true
		}
	}
	return false
}

// ComputeTotal recalcula subtotales y total a partir de las líneas.
func (o *RestaurantOrder) ComputeTotal() {
	total := decimal.Zero
	for i := range o.Items {
		it := &o.Items[i]
		it.Subtotal = it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(it.Subtotal)
	}
	o.Total = total
}
