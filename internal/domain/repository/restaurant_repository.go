package repository

import (
	"context"

	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
)

// RestaurantTableRepository define el puerto de persistencia para mesas.
type RestaurantTableRepository interface {
	Create(ctx context.Context, table *entity.RestaurantTable) error
	GetByID(ctx context.Context, companyID, id int64) (*entity.RestaurantTable, error)
	GetByNumber(ctx context.Context, companyID int64, number string) (*entity.RestaurantTable, error)
	List(ctx context.Context, companyID int64, q ListQuery) ([]*entity.RestaurantTable, int64, error)
	Update(ctx context.Context, table *entity.RestaurantTable) error
	UpdateStatus(ctx context.Context, companyID, id int64, status string, actorID int64) error
	SoftDelete(ctx context.Context, companyID, id, actorID int64) error
}

// RestaurantOrderRepository define el puerto de persistencia para órdenes y sus líneas.
// ListQuery.ParentID filtra por table_id y Status por estado.
type RestaurantOrderRepository interface {
	// Create inserta la orden y sus líneas; asigna IDs.
	Create(ctx context.Context, order *entity.RestaurantOrder) error
	// GetByID devuelve la orden con sus líneas.
	GetByID(ctx context.Context, companyID, id int64) (*entity.RestaurantOrder, error)
	// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción.
	// Fuera de una tx se comporta como GetByID.
	GetForUpdate(ctx context.Context, companyID, id int64) (*entity.RestaurantOrder, error)
	List(ctx context.Context, companyID int64, q ListQuery) ([]*entity.RestaurantOrder, int64, error)
	// Update persiste cabecera (mesa, cliente, notas, estado, pago); no toca las líneas.
	Update(ctx context.Context, order *entity.RestaurantOrder) error
	SoftDelete(ctx context.Context, companyID, id, actorID int64) error
	CountOpenByTable(ctx context.Context, companyID, tableID int64) (int64, error)
	CountOpenByClient(ctx context.Context, companyID, clientID int64) (int64, error)
	Aggregate(ctx context.Context, companyID int64) (*entity.OrderAggregate, error)
}

// PaymentRepository define el puerto de persistencia para pagos (sin borrado).
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	ListByOrder(ctx context.Context, companyID, orderID int64) ([]*entity.Payment, error)
}
