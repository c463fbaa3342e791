package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/lookup"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

// InvitationUseCase gestiona invitaciones de usuarios al tenant.
type InvitationUseCase struct {
	repo  repository.InvitationRepository
	users repository.UserRepository
	ttl   time.Duration
}

// DefaultInvitationTTL vigencia usada cuando no se configura una positiva.
const DefaultInvitationTTL = 72 * time.Hour

// NewInvitationUseCase construye el caso de uso. ttl es la vigencia de cada token; ttl <= 0 usa DefaultInvitationTTL.
func NewInvitationUseCase(repo repository.InvitationRepository, users repository.UserRepository, ttl time.Duration) *InvitationUseCase {
	if ttl <= 0 {
		ttl = DefaultInvitationTTL
	}
	return &InvitationUseCase{repo: repo, users: users, ttl: ttl}
}

// Create invita a un email con un rol. Falla si el email ya es usuario o si ya hay una invitación vigente.
// actorRole es el rol de quien invita: no puede otorgar uno superior al suyo.
func (uc *InvitationUseCase) Create(ctx context.Context, companyID, actorID int64, actorRole string, in dto.CreateInvitationRequest) (*dto.InvitationResponse, error) {
	email, err := NormalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	role, err := lookup.ValidateRole(in.Role)
	if err != nil {
		return nil, err
	}
	if err := ensureCanGrant(actorRole, role); err != nil {
		return nil, err
	}
	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	now := time.Now()
	pending, err := uc.repo.FindPendingByEmail(ctx, companyID, email)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		if pending.State(now) == entity.InvitationPending {
			return nil, domain.Duplicate("invitación", "email", email)
		}
		// Vencida: se materializa el estado para liberar el email.
		pending.Status = entity.InvitationExpired
		pending.Touch(actorID, now)
		if err := uc.repo.Update(ctx, pending); err != nil {
			return nil, err
		}
	}
	inv := &entity.Invitation{
		Email:     email,
		Role:      role,
		Token:     uuid.NewString(),
		Status:    entity.InvitationPending,
		ExpiresAt: now.Add(uc.ttl),
		Audit:     entity.NewAudit(companyID, actorID, now),
	}
	if err := uc.repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return toInvitationResponse(inv, now, true), nil
}

// List lista invitaciones del tenant. Status filtra por estado persistido.
func (uc *InvitationUseCase) List(ctx context.Context, companyID int64, p dto.ListParams) (*dto.ListResponse[dto.InvitationResponse], error) {
	q, err := p.Normalize(repository.InvitationSort)
	if err != nil {
		return nil, err
	}
	if q.Status != "" {
		if q.Status, err = lookup.Validate(lookup.FieldInvitationStatus, q.Status); err != nil {
			return nil, err
		}
	}
	list, total, err := uc.repo.List(ctx, companyID, q)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	items := make([]dto.InvitationResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInvitationResponse(inv, now, false))
	}
	resp := dto.NewListResponse(items, total, p)
	return &resp, nil
}

// Cancel anula una invitación vigente.
func (uc *InvitationUseCase) Cancel(ctx context.Context, companyID, actorID, id int64) (*dto.InvitationResponse, error) {
	inv, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if inv.State(now) != entity.InvitationPending {
		return nil, domain.ErrInvalidTransition
	}
	inv.Status = entity.InvitationCancelled
	inv.Touch(actorID, now)
	if err := uc.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return toInvitationResponse(inv, now, false), nil
}

// Resend renueva token y vencimiento de una invitación pendiente o vencida.
// Solo quien podría otorgar el rol invitado puede reenviarla.
func (uc *InvitationUseCase) Resend(ctx context.Context, companyID, actorID int64, actorRole string, id int64) (*dto.InvitationResponse, error) {
	inv, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := ensureCanGrant(actorRole, inv.Role); err != nil {
		return nil, err
	}
	now := time.Now()
	switch inv.State(now) {
	case entity.InvitationPending, entity.InvitationExpired:
	default:
		return nil, domain.ErrInvalidTransition
	}
	if inv.Status == entity.InvitationExpired {
		other, err := uc.repo.FindPendingByEmail(ctx, companyID, inv.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != inv.ID && other.State(now) == entity.InvitationPending {
			return nil, domain.Duplicate("invitación", "email", inv.Email)
		}
	}
	inv.Token = uuid.NewString()
	inv.Status = entity.InvitationPending
	inv.ExpiresAt = now.Add(uc.ttl)
	inv.Touch(actorID, now)
	if err := uc.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return toInvitationResponse(inv, now, true), nil
}

func (uc *InvitationUseCase) get(ctx context.Context, companyID, id int64) (*entity.Invitation, error) {
	inv, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.NotFound("invitación")
	}
	return inv, nil
}

// toInvitationResponse solo expone el token al crear o reenviar.
func toInvitationResponse(inv *entity.Invitation, now time.Time, withToken bool) *dto.InvitationResponse {
	out := &dto.InvitationResponse{
		ID:            inv.ID,
		Email:         inv.Email,
		Role:          inv.Role,
		Status:        inv.State(now),
		ExpiresAt:     inv.ExpiresAt,
		AcceptedAt:    inv.AcceptedAt,
		AuditResponse: ToAudit(inv.Audit),
	}
	if withToken {
		out.Token = inv.Token
	}
	return out
}

func ensureCanGrant(actorRole, role string) error {
	if !entity.CanGrantRole(actorRole, role) {
		return fmt.Errorf("%w: el rol %s no puede invitar usuarios %s", domain.ErrForbidden, actorRole, role)
	}
	return nil
}
