package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository    = (*CompanyRepo)(nil)
	_ repository.UserRepository       = (*UserRepo)(nil)
	_ repository.InvitationRepository = (*InvitationRepo)(nil)
)

// CompanyRepo empresas en memoria.
type CompanyRepo struct{ c conn }

func NewCompanyRepository(s *Store) *CompanyRepo { return &CompanyRepo{conn{s: s}} }

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	d, unlock := r.c.lock()
	defer unlock()
	c.ID = d.companies.next()
	d.companies.rows[c.ID] = *c
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id int64) (*entity.Company, error) {
	d, unlock := r.c.lock()
	defer unlock()
	c, ok := d.companies.rows[id]
	if !ok || c.Deleted != nil {
		return nil, nil
	}
	return &c, nil
}

func (r *CompanyRepo) Update(_ context.Context, c *entity.Company) error {
	d, unlock := r.c.lock()
	defer unlock()
	cur, ok := d.companies.rows[c.ID]
	if err := notFoundIfMissing(ok && cur.Deleted == nil); err != nil {
		return err
	}
	upd := *c
	upd.CreatedAt = cur.CreatedAt
	d.companies.rows[c.ID] = upd
	return nil
}

// UserRepo usuarios en memoria. El email es único entre todos los tenants.
type UserRepo struct{ c conn }

func NewUserRepository(s *Store) *UserRepo { return &UserRepo{conn{s: s}} }

func (d *data) userByEmail(email string) (entity.User, bool) {
	for _, u := range d.users.rows {
		if u.IsActive() && strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return entity.User{}, false
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	d, unlock := r.c.lock()
	defer unlock()
	if _, ok := d.userByEmail(u.Email); ok {
		return domain.ErrEmailAlreadyExists
	}
	u.ID = d.users.next()
	d.users.rows[u.ID] = *u
	d.creatorName(&u.Audit)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, companyID, id int64) (*entity.User, error) {
	d, unlock := r.c.lock()
	defer unlock()
	u, ok := d.users.rows[id]
	if !ok || !visible(&u.Audit, companyID) {
		return nil, nil
	}
	d.creatorName(&u.Audit)
	return &u, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	d, unlock := r.c.lock()
	defer unlock()
	u, ok := d.userByEmail(email)
	if !ok {
		return nil, nil
	}
	d.creatorName(&u.Audit)
	return &u, nil
}

func (r *UserRepo) List(_ context.Context, companyID int64, q repository.ListQuery) ([]*entity.User, int64, error) {
	d, unlock := r.c.lock()
	defer unlock()
	var rows []entity.User
	for _, u := range d.users.rows {
		if !visible(&u.Audit, companyID) || !matches(q.Search, u.Email, u.FirstName, u.LastName) {
			continue
		}
		if q.Status != "" && u.Role != q.Status {
			continue
		}
		rows = append(rows, u)
	}
	total := int64(len(rows))
	rows = page(rows, q, repository.UserSort, func(u entity.User, col string) any {
		switch col {
		case "email":
			return u.Email
		case "first_name":
			return u.FirstName
		case "last_name":
			return u.LastName
		case "role":
			return u.Role
		}
		v, _ := auditKey(&u.Audit, col)
		return v
	}, func(u entity.User) int64 { return u.ID })
	out := make([]*entity.User, len(rows))
	for i := range rows {
		u := rows[i]
		d.creatorName(&u.Audit)
		out[i] = &u
	}
	return out, total, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	d, unlock := r.c.lock()
	defer unlock()
	cur, ok := d.users.rows[u.ID]
	if err := notFoundIfMissing(ok && visible(&cur.Audit, u.CompanyID)); err != nil {
		return err
	}
	cur.FirstName, cur.LastName, cur.Phone = u.FirstName, u.LastName, u.Phone
	cur.Role, cur.Status = u.Role, u.Status
	cur.UpdatedBy, cur.UpdatedAt = u.UpdatedBy, u.UpdatedAt
	d.users.rows[u.ID] = cur
	return nil
}

func (r *UserRepo) UpdatePassword(_ context.Context, companyID, id int64, hash string, actorID int64) error {
	d, unlock := r.c.lock()
	defer unlock()
	cur, ok := d.users.rows[id]
	if err := notFoundIfMissing(ok && visible(&cur.Audit, companyID)); err != nil {
		return err
	}
	cur.PasswordHash = hash
	cur.Touch(actorID, now())
	d.users.rows[id] = cur
	return nil
}

func (r *UserRepo) SoftDelete(_ context.Context, companyID, id, actorID int64) error {
	d, unlock := r.c.lock()
	defer unlock()
	return softDelete(&d.users, companyID, id, actorID, func(x *entity.User) *entity.Audit { return &x.Audit })
}

// InvitationRepo invitaciones en memoria. Solo una PENDING por email y tenant.
type InvitationRepo struct{ c conn }

func NewInvitationRepository(s *Store) *InvitationRepo { return &InvitationRepo{conn{s: s}} }

func (d *data) pendingInvitation(companyID int64, email string, except int64) (entity.Invitation, bool) {
	for _, inv := range d.invitations.rows {
		if inv.ID != except && visible(&inv.Audit, companyID) && inv.Status == entity.InvitationPending &&
			strings.EqualFold(inv.Email, email) {
			return inv, true
		}
	}
	return entity.Invitation{}, false
}

func (r *InvitationRepo) Create(_ context.Context, inv *entity.Invitation) error {
	d, unlock := r.c.lock()
	defer unlock()
	if inv.Status == entity.InvitationPending {
		if _, ok := d.pendingInvitation(inv.CompanyID, inv.Email, 0); ok {
			return domain.Duplicate("invitación", "email", inv.Email)
		}
	}
	inv.ID = d.invitations.next()
	d.invitations.rows[inv.ID] = *inv
	return nil
}

func (r *InvitationRepo) get(match func(*entity.Invitation) bool) *entity.Invitation {
	d, unlock := r.c.lock()
	defer unlock()
	for _, inv := range d.invitations.rows {
		if inv.IsActive() && match(&inv) {
			d.creatorName(&inv.Audit)
			return &inv
		}
	}
	return nil
}

func (r *InvitationRepo) GetByID(_ context.Context, companyID, id int64) (*entity.Invitation, error) {
	return r.get(func(i *entity.Invitation) bool { return i.ID == id && i.CompanyID == companyID }), nil
}

func (r *InvitationRepo) GetByToken(_ context.Context, token string) (*entity.Invitation, error) {
	return r.get(func(i *entity.Invitation) bool { return i.Token == token }), nil
}

func (r *InvitationRepo) FindPendingByEmail(_ context.Context, companyID int64, email string) (*entity.Invitation, error) {
	return r.get(func(i *entity.Invitation) bool {
		return i.CompanyID == companyID && i.Status == entity.InvitationPending && strings.EqualFold(i.Email, email)
	}), nil
}

func (r *InvitationRepo) List(_ context.Context, companyID int64, q repository.ListQuery) ([]*entity.Invitation, int64, error) {
	d, unlock := r.c.lock()
	defer unlock()
	var rows []entity.Invitation
	for _, inv := range d.invitations.rows {
		if !visible(&inv.Audit, companyID) || !matches(q.Search, inv.Email) {
			continue
		}
		if q.Status != "" && inv.Status != q.Status {
			continue
		}
		rows = append(rows, inv)
	}
	total := int64(len(rows))
	rows = page(rows, q, repository.InvitationSort, func(i entity.Invitation, col string) any {
		switch col {
		case "email":
			return i.Email
		case "status":
			return i.Status
		case "expires_at":
			return i.ExpiresAt
		}
		v, _ := auditKey(&i.Audit, col)
		return v
	}, func(i entity.Invitation) int64 { return i.ID })
	out := make([]*entity.Invitation, len(rows))
	for i := range rows {
		inv := rows[i]
		d.creatorName(&inv.Audit)
		out[i] = &inv
	}
	return out, total, nil
}

func (r *InvitationRepo) Update(_ context.Context, inv *entity.Invitation) error {
	d, unlock := r.c.lock()
	defer unlock()
	cur, ok := d.invitations.rows[inv.ID]
	if err := notFoundIfMissing(ok && visible(&cur.Audit, inv.CompanyID)); err != nil {
		return err
	}
	if inv.Status == entity.InvitationPending {
		if _, dup := d.pendingInvitation(inv.CompanyID, inv.Email, inv.ID); dup {
			return domain.Duplicate("invitación", "email", inv.Email)
		}
	}
	cur.Role, cur.Token, cur.Status = inv.Role, inv.Token, inv.Status
	cur.ExpiresAt, cur.AcceptedAt = inv.ExpiresAt, inv.AcceptedAt
	cur.UpdatedBy, cur.UpdatedAt = inv.UpdatedBy, inv.UpdatedAt
	d.invitations.rows[inv.ID] = cur
	return nil
}
