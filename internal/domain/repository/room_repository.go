package repository

import (
	"context"

	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
)

// RoomTypeRepository define el puerto de persistencia para RoomType.
type RoomTypeRepository interface {
	Create(ctx context.Context, rt *entity.RoomType) error
	GetByID(ctx context.Context, companyID, id int64) (*entity.RoomType, error)
	// GetByName compara sin distinguir mayúsculas.
	GetByName(ctx context.Context, companyID int64, name string) (*entity.RoomType, error)
	List(ctx context.Context, companyID int64, q ListQuery) ([]*entity.RoomType, int64, error)
	Update(ctx context.Context, rt *entity.RoomType) error
	SoftDelete(ctx context.Context, companyID, id, actorID int64) error
	CountRooms(ctx context.Context, companyID, roomTypeID int64) (int64, error)
	Aggregate(ctx context.Context, companyID int64) (*entity.RoomTypeAggregate, error)
}

// RoomRepository define el puerto de persistencia para Room.
// ListQuery.ParentID filtra por room_type_id y Status por estado.
type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	GetByID(ctx context.Context, companyID, id int64) (*entity.Room, error)
	GetByNumber(ctx context.Context, companyID int64, number string) (*entity.Room, error)
	List(ctx context.Context, companyID int64, q ListQuery) ([]*entity.Room, int64, error)
	Update(ctx context.Context, room *entity.Room) error
	UpdateStatus(ctx context.Context, companyID, id int64, status string, actorID int64) error
	SoftDelete(ctx context.Context, companyID, id, actorID int64) error
	CountByStatus(ctx context.Context, companyID int64) (map[string]int64, error)
}
