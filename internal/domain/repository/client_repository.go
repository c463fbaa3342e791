package repository

import (
	"context"

	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
// ListQuery.Status filtra por client_type.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, companyID, id int64) (*entity.Client, error)
	GetByEmail(ctx context.Context, companyID int64, email string) (*entity.Client, error)
	List(ctx context.Context, companyID int64, q ListQuery) ([]*entity.Client, int64, error)
	Update(ctx context.Context, client *entity.Client) error
	SoftDelete(ctx context.Context, companyID, id, actorID int64) error
	CountByType(ctx context.Context, companyID int64) (map[string]int64, error)
}
