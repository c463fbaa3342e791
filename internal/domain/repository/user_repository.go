package repository

import (
	"context"

	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos de lectura devuelven (nil, nil) si no hay fila activa.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, companyID, id int64) (*entity.User, error)
	// FindByEmail busca en todos los tenants: el email es único global.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, companyID int64, q ListQuery) ([]*entity.User, int64, error)
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, companyID, id int64, hash string, actorID int64) error
	SoftDelete(ctx context.Context, companyID, id, actorID int64) error
}

// InvitationRepository define el puerto de persistencia para Invitation.
type InvitationRepository interface {
	Create(ctx context.Context, inv *entity.Invitation) error
	GetByID(ctx context.Context, companyID, id int64) (*entity.Invitation, error)
	GetByToken(ctx context.Context, token string) (*entity.Invitation, error)
	FindPendingByEmail(ctx context.Context, companyID int64, email string) (*entity.Invitation, error)
	List(ctx context.Context, companyID int64, q ListQuery) ([]*entity.Invitation, int64, error)
	Update(ctx context.Context, inv *entity.Invitation) error
}
