package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

var _ repository.InvitationRepository = (*InvitationRepo)(nil)

// InvitationRepo implementación del puerto InvitationRepository sobre PostgreSQL.
type InvitationRepo struct {
	q Querier
}

// NewInvitationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvitationRepository(q Querier) *InvitationRepo {
	return &InvitationRepo{q: q}
}

var invitationSelect = `
	SELECT i.id, i.email, i.role, i.token, i.status, i.expires_at, i.accepted_at, ` + auditColumns("i") + `
	FROM invitations i ` + creatorJoin("i")

func scanInvitation(row scanner) (*entity.Invitation, error) {
	var inv entity.Invitation
	dest := append([]any{&inv.ID, &inv.Email, &inv.Role, &inv.Token, &inv.Status, &inv.ExpiresAt, &inv.AcceptedAt},
		auditDest(&inv.Audit)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create inserta la invitación. Otra PENDING para el mismo email en el tenant es ErrDuplicate.
func (r *InvitationRepo) Create(ctx context.Context, inv *entity.Invitation) error {
	query := `
		INSERT INTO invitations (company_id, email, role, token, status, expires_at, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		inv.CompanyID, inv.Email, inv.Role, inv.Token, inv.Status, inv.ExpiresAt,
		inv.CreatedBy, inv.UpdatedBy, inv.CreatedAt, inv.UpdatedAt,
	).Scan(&inv.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("invitación", "email", inv.Email)
		}
		return fmt.Errorf("insert invitation: %w", err)
	}
	return nil
}

func (r *InvitationRepo) getOne(ctx context.Context, where string, args ...any) (*entity.Invitation, error) {
	inv, err := scanInvitation(r.q.QueryRow(ctx, invitationSelect+" WHERE "+where+" AND "+activeScope("i"), args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	return inv, nil
}

// GetByID obtiene una invitación del tenant.
func (r *InvitationRepo) GetByID(ctx context.Context, companyID, id int64) (*entity.Invitation, error) {
	return r.getOne(ctx, "i.id = $1 AND i.company_id = $2", id, companyID)
}

// GetByToken busca por token en todos los tenants (el token identifica la empresa).
func (r *InvitationRepo) GetByToken(ctx context.Context, token string) (*entity.Invitation, error) {
	return r.getOne(ctx, "i.token = $1", token)
}

// FindPendingByEmail devuelve la invitación PENDING del email en el tenant, vencida o no.
func (r *InvitationRepo) FindPendingByEmail(ctx context.Context, companyID int64, email string) (*entity.Invitation, error) {
	return r.getOne(ctx, "i.company_id = $1 AND lower(i.email) = lower($2) AND i.status = $3",
		companyID, email, entity.InvitationPending)
}

// List lista invitaciones del tenant. Status filtra por estado persistido.
func (r *InvitationRepo) List(ctx context.Context, companyID int64, q repository.ListQuery) ([]*entity.Invitation, int64, error) {
	b := newListBuilder("i", companyID)
	b.search(q.Search, "i.email")
	if q.Status != "" {
		b.add("i.status = ?", q.Status)
	}
	total, err := b.count(ctx, r.q, "invitations i")
	if err != nil {
		return nil, 0, fmt.Errorf("count invitations: %w", err)
	}
	page, args := b.pageSQL(q, repository.InvitationSort)
	rows, err := r.q.Query(ctx, invitationSelect+b.whereSQL()+page, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list invitations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan invitation: %w", err)
		}
		list = append(list, inv)
	}
	return list, total, rows.Err()
}

// Update persiste estado, rol, token y vencimiento.
func (r *InvitationRepo) Update(ctx context.Context, inv *entity.Invitation) error {
	query := `
		UPDATE invitations SET role = $3, token = $4, status = $5, expires_at = $6, accepted_at = $7,
			updated_by = $8, updated_at = $9
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL`
	cmd, err := r.q.Exec(ctx, query,
		inv.ID, inv.CompanyID, inv.Role, inv.Token, inv.Status, inv.ExpiresAt, inv.AcceptedAt,
		inv.UpdatedBy, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("invitación", "email", inv.Email)
		}
		return fmt.Errorf("update invitation: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
