package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTableRequest entrada para crear una mesa.
type CreateTableRequest struct {
	Number   string `json:"number"`
	Capacity int    `json:"capacity"`
	Location string `json:"location"`
	Status   string `json:"status"`
}

// UpdateTableRequest solo se aplican los campos presentes.
type UpdateTableRequest struct {
	Number   *string `json:"number"`
	Capacity *int    `json:"capacity"`
	Location *string `json:"location"`
	Status   *string `json:"status"`
}

// TableResponse salida de una mesa.
type TableResponse struct {
	ID       int64  `json:"id"`
	Number   string `json:"number"`
	Capacity int    `json:"capacity"`
	Location string `json:"location"`
	Status   string `json:"status"`
	AuditResponse
}

// OrderItemRequest línea solicitada.
type OrderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CreateOrderRequest entrada para abrir una orden.
type CreateOrderRequest struct {
	TableID  *int64             `json:"table_id"`
	ClientID *int64             `json:"client_id"`
	Notes    string             `json:"notes"`
	Items    []OrderItemRequest `json:"items"`
}

// UpdateOrderRequest cambios de cabecera de una orden abierta.
type UpdateOrderRequest struct {
	TableID  *int64  `json:"table_id"`
	ClientID *int64  `json:"client_id"`
	Notes    *string `json:"notes"`
}

// PayOrderRequest registro del pago de una orden.
type PayOrderRequest struct {
	Method    string `json:"method"`
	Reference string `json:"reference"`
}

// OrderItemResponse línea de la orden.
type OrderItemResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID            int64               `json:"id"`
	TableID       *int64              `json:"table_id"`
	TableNumber   string              `json:"table_number,omitempty"`
	ClientID      *int64              `json:"client_id"`
	ClientName    string              `json:"client_name,omitempty"`
	Status        string              `json:"status"`
	Items         []OrderItemResponse `json:"items"`
	Total         decimal.Decimal     `json:"total"`
	Notes         string              `json:"notes"`
	PaymentMethod string              `json:"payment_method,omitempty"`
	PaidAt        *time.Time          `json:"paid_at,omitempty"`
	AuditResponse
}

// PaymentResponse pago registrado.
type PaymentResponse struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference"`
	CreatedAt time.Time       `json:"created_at"`
}

// PayOrderResponse orden pagada + pago.
type PayOrderResponse struct {
	Order   OrderResponse   `json:"order"`
	Payment PaymentResponse `json:"payment"`
}

// OrderStats agregados de órdenes.
type OrderStats struct {
	TotalOrders int64           `json:"total_orders"`
	OpenOrders  int64           `json:"open_orders"`
	PaidOrders  int64           `json:"paid_orders"`
	Revenue     decimal.Decimal `json:"revenue"`
	AvgTicket   decimal.Decimal `json:"avg_ticket"`
}
