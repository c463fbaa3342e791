package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

var _ repository.RestaurantTableRepository = (*RestaurantTableRepo)(nil)

// RestaurantTableRepo implementación del puerto RestaurantTableRepository sobre PostgreSQL.
type RestaurantTableRepo struct {
	q Querier
}

// NewRestaurantTableRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRestaurantTableRepository(q Querier) *RestaurantTableRepo {
	return &RestaurantTableRepo{q: q}
}

var tableSelect = `
	SELECT t.id, t.number, t.capacity, t.location, t.status, ` + auditColumns("t") + `
	FROM restaurant_tables t ` + creatorJoin("t")

func scanTable(row scanner) (*entity.RestaurantTable, error) {
	var t entity.RestaurantTable
	dest := append([]any{&t.ID, &t.Number, &t.Capacity, &t.Location, &t.Status}, auditDest(&t.Audit)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *RestaurantTableRepo) Create(ctx context.Context, t *entity.RestaurantTable) error {
	query := `
		INSERT INTO restaurant_tables (company_id, number, capacity, location, status, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		t.CompanyID, t.Number, t.Capacity, t.Location, t.Status, t.CreatedBy, t.UpdatedBy, t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("mesa", "number", t.Number)
		}
		return fmt.Errorf("insert restaurant table: %w", err)
	}
	return nil
}

func (r *RestaurantTableRepo) getOne(ctx context.Context, where string, args ...any) (*entity.RestaurantTable, error) {
	t, err := scanTable(r.q.QueryRow(ctx, tableSelect+" WHERE "+where+" AND "+activeScope("t"), args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get restaurant table: %w", err)
	}
	return t, nil
}

func (r *RestaurantTableRepo) GetByID(ctx context.Context, companyID, id int64) (*entity.RestaurantTable, error) {
	return r.getOne(ctx, "t.id = $1 AND t.company_id = $2", id, companyID)
}

func (r *RestaurantTableRepo) GetByNumber(ctx context.Context, companyID int64, number string) (*entity.RestaurantTable, error) {
	return r.getOne(ctx, "t.company_id = $1 AND t.number = $2", companyID, number)
}

// List lista mesas; Status filtra por estado.
func (r *RestaurantTableRepo) List(ctx context.Context, companyID int64, q repository.ListQuery) ([]*entity.RestaurantTable, int64, error) {
	b := newListBuilder("t", companyID)
	b.search(q.Search, "t.number", "t.location")
	if q.Status != "" {
		b.add("t.status = ?", q.Status)
	}
	total, err := b.count(ctx, r.q, "restaurant_tables t")
	if err != nil {
		return nil, 0, fmt.Errorf("count restaurant tables: %w", err)
	}
	page, args := b.pageSQL(q, repository.TableSort)
	rows, err := r.q.Query(ctx, tableSelect+b.whereSQL()+page, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list restaurant tables: %w", err)
	}
	defer rows.Close()
	var list []*entity.RestaurantTable
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan restaurant table: %w", err)
		}
		list = append(list, t)
	}
	return list, total, rows.Err()
}

func (r *RestaurantTableRepo) Update(ctx context.Context, t *entity.RestaurantTable) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE restaurant_tables SET number = $3, capacity = $4, location = $5, status = $6, updated_by = $7, updated_at = $8
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL`,
		t.ID, t.CompanyID, t.Number, t.Capacity, t.Location, t.Status, t.UpdatedBy, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("mesa", "number", t.Number)
		}
		return fmt.Errorf("update restaurant table: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia solo el estado (ocupación por órdenes o cambio manual).
func (r *RestaurantTableRepo) UpdateStatus(ctx context.Context, companyID, id int64, status string, actorID int64) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE restaurant_tables SET status = $3, updated_by = $4, updated_at = now()
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL`,
		id, companyID, status, actorID,
	)
	if err != nil {
		return fmt.Errorf("update restaurant table status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RestaurantTableRepo) SoftDelete(ctx context.Context, companyID, id, actorID int64) error {
	return softDelete(ctx, r.q, "restaurant_tables", companyID, id, actorID)
}
