package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

var userSelect = `
	SELECT u.id, u.email, u.password_hash, u.first_name, u.last_name, u.phone, u.role, u.status, ` + auditColumns("u") + `
	FROM users u ` + creatorJoin("u")

func scanUser(row scanner) (*entity.User, error) {
	var u entity.User
	dest := append([]any{&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.Role, &u.Status},
		auditDest(&u.Audit)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserta el usuario. Un email repetido (único global) devuelve ErrEmailAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (company_id, email, password_hash, first_name, last_name, phone, role, status,
			created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		u.CompanyID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.Role, u.Status,
		u.CreatedBy, u.UpdatedBy, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario activo del tenant.
func (r *UserRepo) GetByID(ctx context.Context, companyID, id int64) (*entity.User, error) {
	query := userSelect + ` WHERE u.id = $1 AND u.company_id = $2 AND ` + activeScope("u")
	u, err := scanUser(r.q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// FindByEmail busca por email sin distinguir mayúsculas, en todos los tenants.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := userSelect + ` WHERE lower(u.email) = lower($1) AND ` + activeScope("u")
	u, err := scanUser(r.q.QueryRow(ctx, query, email))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// List lista usuarios del tenant. Status filtra por rol.
func (r *UserRepo) List(ctx context.Context, companyID int64, q repository.ListQuery) ([]*entity.User, int64, error) {
	b := newListBuilder("u", companyID)
	b.search(q.Search, "u.email", "u.first_name", "u.last_name")
	if q.Status != "" {
		b.add("u.role = ?", q.Status)
	}
	total, err := b.count(ctx, r.q, "users u")
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	page, args := b.pageSQL(q, repository.UserSort)
	rows, err := r.q.Query(ctx, userSelect+b.whereSQL()+page, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, total, rows.Err()
}

// Update actualiza perfil, rol y estado. El password se cambia con UpdatePassword.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users SET first_name = $3, last_name = $4, phone = $5, role = $6, status = $7,
			updated_by = $8, updated_at = $9
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL`
	cmd, err := r.q.Exec(ctx, query,
		u.ID, u.CompanyID, u.FirstName, u.LastName, u.Phone, u.Role, u.Status, u.UpdatedBy, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePassword reemplaza el hash del password.
func (r *UserRepo) UpdatePassword(ctx context.Context, companyID, id int64, hash string, actorID int64) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE users SET password_hash = $3, updated_by = $4, updated_at = now()
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL`,
		id, companyID, hash, actorID,
	)
	if err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca el usuario como eliminado.
func (r *UserRepo) SoftDelete(ctx context.Context, companyID, id, actorID int64) error {
	return softDelete(ctx, r.q, "users", companyID, id, actorID)
}
