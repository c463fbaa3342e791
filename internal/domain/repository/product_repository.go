package repository

import (
	"context"

	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, companyID, id int64) (*entity.Category, error)
	GetByName(ctx context.Context, companyID int64, name string) (*entity.Category, error)
	List(ctx context.Context, companyID int64, q ListQuery) ([]*entity.Category, int64, error)
	Update(ctx context.Context, category *entity.Category) error
	SoftDelete(ctx context.Context, companyID, id, actorID int64) error
	CountProducts(ctx context.Context, companyID, categoryID int64) (int64, error)
	Aggregate(ctx context.Context, companyID int64) (*entity.CategoryAggregate, error)
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// ListQuery.ParentID filtra por category_id; Status "low_stock" filtra stock <= min_stock.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, companyID, id int64) (*entity.Product, error)
	GetByName(ctx context.Context, companyID int64, name string) (*entity.Product, error)
	List(ctx context.Context, companyID int64, q ListQuery) ([]*entity.Product, int64, error)
	// Update no modifica stock: solo AdjustStock lo cambia.
	Update(ctx context.Context, product *entity.Product) error
	// AdjustStock aplica stock = stock + delta en una sola sentencia, solo si el resultado es >= 0.
	// Devuelve domain.ErrInsufficientStock si la condición no se cumple.
	AdjustStock(ctx context.Context, companyID, id int64, delta int, actorID int64) (int, error)
	SoftDelete(ctx context.Context, companyID, id, actorID int64) error
	Aggregate(ctx context.Context, companyID int64) (*entity.ProductAggregate, error)
}

// StatusFilterLowStock valor especial de ListQuery.Status para productos.
const StatusFilterLowStock = "low_stock"
