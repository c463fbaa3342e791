package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

var _ repository.RoomRepository = (*RoomRepo)(nil)

// RoomRepo implementación del puerto RoomRepository sobre PostgreSQL.
type RoomRepo struct {
	q Querier
}

// NewRoomRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRoomRepository(q Querier) *RoomRepo {
	return &RoomRepo{q: q}
}

var roomSelect = `
	SELECT r.id, r.number, r.floor, r.room_type_id, COALESCE(rt.name, ''), r.status, r.notes, ` + auditColumns("r") + `
	FROM rooms r
	LEFT JOIN room_types rt ON rt.id = r.room_type_id ` + creatorJoin("r")

func scanRoom(row scanner) (*entity.Room, error) {
	var rm entity.Room
	dest := append([]any{&rm.ID, &rm.Number, &rm.Floor, &rm.RoomTypeID, &rm.RoomTypeName, &rm.Status, &rm.Notes},
		auditDest(&rm.Audit)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &rm, nil
}

// Create inserta la habitación.
func (r *RoomRepo) Create(ctx context.Context, rm *entity.Room) error {
	query := `
		INSERT INTO rooms (company_id, number, floor, room_type_id, status, notes, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		rm.CompanyID, rm.Number, rm.Floor, rm.RoomTypeID, rm.Status, rm.Notes,
		rm.CreatedBy, rm.UpdatedBy, rm.CreatedAt, rm.UpdatedAt,
	).Scan(&rm.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("habitación", "number", rm.Number)
		}
		return fmt.Errorf("insert room: %w", err)
	}
	return nil
}

func (r *RoomRepo) getOne(ctx context.Context, where string, args ...any) (*entity.Room, error) {
	rm, err := scanRoom(r.q.QueryRow(ctx, roomSelect+" WHERE "+where+" AND "+activeScope("r"), args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return rm, nil
}

// GetByID obtiene una habitación activa del tenant.
func (r *RoomRepo) GetByID(ctx context.Context, companyID, id int64) (*entity.Room, error) {
	return r.getOne(ctx, "r.id = $1 AND r.company_id = $2", id, companyID)
}

// GetByNumber busca por número exacto.
func (r *RoomRepo) GetByNumber(ctx context.Context, companyID int64, number string) (*entity.Room, error) {
	return r.getOne(ctx, "r.company_id = $1 AND r.number = $2", companyID, number)
}

// List lista habitaciones; ParentID filtra por tipo y Status por estado.
func (r *RoomRepo) List(ctx context.Context, companyID int64, q repository.ListQuery) ([]*entity.Room, int64, error) {
	b := newListBuilder("r", companyID)
	b.search(q.Search, "r.number", "r.notes")
	if q.ParentID > 0 {
		b.add("r.room_type_id = ?", q.ParentID)
	}
	if q.Status != "" {
		b.add("r.status = ?", q.Status)
	}
	total, err := b.count(ctx, r.q, "rooms r")
	if err != nil {
		return nil, 0, fmt.Errorf("count rooms: %w", err)
	}
	page, args := b.pageSQL(q, repository.RoomSort)
	rows, err := r.q.Query(ctx, roomSelect+b.whereSQL()+page, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()
	var list []*entity.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan room: %w", err)
		}
		list = append(list, rm)
	}
	return list, total, rows.Err()
}

// Update actualiza la habitación.
func (r *RoomRepo) Update(ctx context.Context, rm *entity.Room) error {
	query := `
		UPDATE rooms SET number = $3, floor = $4, room_type_id = $5, status = $6, notes = $7,
			updated_by = $8, updated_at = $9
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL`
	cmd, err := r.q.Exec(ctx, query,
		rm.ID, rm.CompanyID, rm.Number, rm.Floor, rm.RoomTypeID, rm.Status, rm.Notes, rm.UpdatedBy, rm.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("habitación", "number", rm.Number)
		}
		return fmt.Errorf("update room: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia solo el estado operativo.
func (r *RoomRepo) UpdateStatus(ctx context.Context, companyID, id int64, status string, actorID int64) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE rooms SET status = $3, updated_by = $4, updated_at = now()
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL`,
		id, companyID, status, actorID,
	)
	if err != nil {
		return fmt.Errorf("update room status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca la habitación como eliminada.
func (r *RoomRepo) SoftDelete(ctx context.Context, companyID, id, actorID int64) error {
	return softDelete(ctx, r.q, "rooms", companyID, id, actorID)
}

// CountByStatus conteo de habitaciones activas por estado.
func (r *RoomRepo) CountByStatus(ctx context.Context, companyID int64) (map[string]int64, error) {
	return countGrouped(ctx, r.q, "rooms", "status", companyID)
}
