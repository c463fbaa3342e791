package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación del puerto ClientRepository sobre PostgreSQL.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

var clientSelect = `
	SELECT cl.id, cl.first_name, cl.last_name, cl.email, cl.phone, cl.client_type, cl.company_name, cl.notes,
		` + auditColumns("cl") + `
	FROM clients cl ` + creatorJoin("cl")

func scanClient(row scanner) (*entity.Client, error) {
	var c entity.Client
	dest := append([]any{&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Type, &c.CompanyName, &c.Notes},
		auditDest(&c.Audit)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserta el cliente. El email, si viene, es único dentro del tenant.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (company_id, first_name, last_name, email, phone, client_type, company_name, notes,
			created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		c.CompanyID, c.FirstName, c.LastName, c.Email, c.Phone, c.Type, c.CompanyName, c.Notes,
		c.CreatedBy, c.UpdatedBy, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("cliente", "email", c.Email)
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepo) getOne(ctx context.Context, where string, args ...any) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, clientSelect+" WHERE "+where+" AND "+activeScope("cl"), args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// GetByID obtiene un cliente activo del tenant.
func (r *ClientRepo) GetByID(ctx context.Context, companyID, id int64) (*entity.Client, error) {
	return r.getOne(ctx, "cl.id = $1 AND cl.company_id = $2", id, companyID)
}

// GetByEmail busca por email (ya normalizado en minúsculas).
func (r *ClientRepo) GetByEmail(ctx context.Context, companyID int64, email string) (*entity.Client, error) {
	return r.getOne(ctx, "cl.company_id = $1 AND cl.email = $2", companyID, email)
}

// List lista clientes; Status filtra por tipo de cliente.
func (r *ClientRepo) List(ctx context.Context, companyID int64, q repository.ListQuery) ([]*entity.Client, int64, error) {
	b := newListBuilder("cl", companyID)
	b.search(q.Search, "cl.first_name", "cl.last_name", "cl.email", "cl.phone", "cl.company_name")
	if q.Status != "" {
		b.add("cl.client_type = ?", q.Status)
	}
	total, err := b.count(ctx, r.q, "clients cl")
	if err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}
	page, args := b.pageSQL(q, repository.ClientSort)
	rows, err := r.q.Query(ctx, clientSelect+b.whereSQL()+page, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// Update actualiza los datos del cliente.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clients SET first_name = $3, last_name = $4, email = $5, phone = $6, client_type = $7,
			company_name = $8, notes = $9, updated_by = $10, updated_at = $11
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL`
	cmd, err := r.q.Exec(ctx, query,
		c.ID, c.CompanyID, c.FirstName, c.LastName, c.Email, c.Phone, c.Type, c.CompanyName, c.Notes,
		c.UpdatedBy, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("cliente", "email", c.Email)
		}
		return fmt.Errorf("update client: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca el cliente como eliminado.
func (r *ClientRepo) SoftDelete(ctx context.Context, companyID, id, actorID int64) error {
	return softDelete(ctx, r.q, "clients", companyID, id, actorID)
}

// CountByType conteo de clientes activos por tipo.
func (r *ClientRepo) CountByType(ctx context.Context, companyID int64) (map[string]int64, error) {
	return countGrouped(ctx, r.q, "clients", "client_type", companyID)
}
