package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

var _ repository.RoomTypeRepository = (*RoomTypeRepo)(nil)

// RoomTypeRepo implementación del puerto RoomTypeRepository sobre PostgreSQL.
type RoomTypeRepo struct {
	q Querier
}

// NewRoomTypeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRoomTypeRepository(q Querier) *RoomTypeRepo {
	return &RoomTypeRepo{q: q}
}

var roomTypeSelect = `
	SELECT rt.id, rt.name, rt.description, rt.base_price, rt.max_occupancy, rt.amenities,
		(SELECT COUNT(*) FROM rooms r WHERE r.room_type_id = rt.id AND ` + activeScope("r") + `),
		` + auditColumns("rt") + `
	FROM room_types rt ` + creatorJoin("rt")

func scanRoomType(row scanner) (*entity.RoomType, error) {
	var rt entity.RoomType
	dest := append([]any{&rt.ID, &rt.Name, &rt.Description, &rt.BasePrice, &rt.MaxOccupancy, &rt.Amenities, &rt.RoomCount},
		auditDest(&rt.Audit)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if rt.Amenities == nil {
		rt.Amenities = []string{}
	}
	return &rt, nil
}

// Create inserta el tipo de habitación.
func (r *RoomTypeRepo) Create(ctx context.Context, rt *entity.RoomType) error {
	query := `
		INSERT INTO room_types (company_id, name, description, base_price, max_occupancy, amenities,
			created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		rt.CompanyID, rt.Name, rt.Description, rt.BasePrice, rt.MaxOccupancy, amenities(rt.Amenities),
		rt.CreatedBy, rt.UpdatedBy, rt.CreatedAt, rt.UpdatedAt,
	).Scan(&rt.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("tipo de habitación", "name", rt.Name)
		}
		return fmt.Errorf("insert room type: %w", err)
	}
	return nil
}

func (r *RoomTypeRepo) getOne(ctx context.Context, where string, args ...any) (*entity.RoomType, error) {
	rt, err := scanRoomType(r.q.QueryRow(ctx, roomTypeSelect+" WHERE "+where+" AND "+activeScope("rt"), args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get room type: %w", err)
	}
	return rt, nil
}

// GetByID obtiene un tipo de habitación activo del tenant.
func (r *RoomTypeRepo) GetByID(ctx context.Context, companyID, id int64) (*entity.RoomType, error) {
	return r.getOne(ctx, "rt.id = $1 AND rt.company_id = $2", id, companyID)
}

// GetByName busca por nombre sin distinguir mayúsculas.
func (r *RoomTypeRepo) GetByName(ctx context.Context, companyID int64, name string) (*entity.RoomType, error) {
	return r.getOne(ctx, "rt.company_id = $1 AND lower(rt.name) = lower($2)", companyID, name)
}

// List lista tipos de habitación con búsqueda por nombre y descripción.
func (r *RoomTypeRepo) List(ctx context.Context, companyID int64, q repository.ListQuery) ([]*entity.RoomType, int64, error) {
	b := newListBuilder("rt", companyID)
	b.search(q.Search, "rt.name", "rt.description")
	total, err := b.count(ctx, r.q, "room_types rt")
	if err != nil {
		return nil, 0, fmt.Errorf("count room types: %w", err)
	}
	page, args := b.pageSQL(q, repository.RoomTypeSort)
	rows, err := r.q.Query(ctx, roomTypeSelect+b.whereSQL()+page, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list room types: %w", err)
	}
	defer rows.Close()
	var list []*entity.RoomType
	for rows.Next() {
		rt, err := scanRoomType(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan room type: %w", err)
		}
		list = append(list, rt)
	}
	return list, total, rows.Err()
}

// Update actualiza el tipo de habitación.
func (r *RoomTypeRepo) Update(ctx context.Context, rt *entity.RoomType) error {
	query := `
		UPDATE room_types SET name = $3, description = $4, base_price = $5, max_occupancy = $6, amenities = $7,
			updated_by = $8, updated_at = $9
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL`
	cmd, err := r.q.Exec(ctx, query,
		rt.ID, rt.CompanyID, rt.Name, rt.Description, rt.BasePrice, rt.MaxOccupancy, amenities(rt.Amenities),
		rt.UpdatedBy, rt.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("tipo de habitación", "name", rt.Name)
		}
		return fmt.Errorf("update room type: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca el tipo como eliminado.
func (r *RoomTypeRepo) SoftDelete(ctx context.Context, companyID, id, actorID int64) error {
	return softDelete(ctx, r.q, "room_types", companyID, id, actorID)
}

// CountRooms cuenta habitaciones activas del tipo.
func (r *RoomTypeRepo) CountRooms(ctx context.Context, companyID, roomTypeID int64) (int64, error) {
	return countActive(ctx, r.q, "rooms", "room_type_id", companyID, roomTypeID, "")
}

// Aggregate totales del catálogo de habitaciones.
func (r *RoomTypeRepo) Aggregate(ctx context.Context, companyID int64) (*entity.RoomTypeAggregate, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(rt.base_price), 0),
			(SELECT COUNT(*) FROM rooms r JOIN room_types x ON x.id = r.room_type_id
			 WHERE r.company_id = $1 AND ` + activeScope("r") + ` AND ` + activeScope("x") + `)
		FROM room_types rt WHERE rt.company_id = $1 AND ` + activeScope("rt")
	var a entity.RoomTypeAggregate
	if err := r.q.QueryRow(ctx, query, companyID).Scan(&a.TotalTypes, &a.SumBasePrice, &a.TotalRooms); err != nil {
		return nil, fmt.Errorf("aggregate room types: %w", err)
	}
	return &a, nil
}

func amenities(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
