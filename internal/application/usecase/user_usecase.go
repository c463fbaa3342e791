package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/lookup"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

// UserUseCase administración de usuarios del tenant.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List lista usuarios activos del tenant. Status filtra por rol.
func (uc *UserUseCase) List(ctx context.Context, companyID int64, p dto.ListParams) (*dto.ListResponse[dto.UserResponse], error) {
	q, err := p.Normalize(repository.UserSort)
	if err != nil {
		return nil, err
	}
	if q.Status != "" {
		if q.Status, err = lookup.ValidateRole(q.Status); err != nil {
			return nil, err
		}
	}
	list, total, err := uc.repo.List(ctx, companyID, q)
	if err != nil {
		return nil, err
	}
	resp := dto.NewListResponse(mapList(list, ToUserResponse), total, p)
	return &resp, nil
}

// GetByID obtiene un usuario del tenant.
func (uc *UserUseCase) GetByID(ctx context.Context, companyID, id int64) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("usuario")
	}
	return ToUserResponse(u), nil
}

// Update cambia datos, rol o estado de un usuario.
func (uc *UserUseCase) Update(ctx context.Context, companyID, actorID, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("usuario")
	}
	if err := applyText("first_name", &u.FirstName, in.FirstName); err != nil {
		return nil, err
	}
	applyOptional(&u.LastName, in.LastName)
	applyOptional(&u.Phone, in.Phone)
	if in.Role != nil {
		if u.Role, err = lookup.ValidateRole(*in.Role); err != nil {
			return nil, err
		}
	}
	if in.Status != nil {
		if u.Status, err = lookup.ValidateUserStatus(*in.Status); err != nil {
			return nil, err
		}
	}
	if id == actorID && (in.Role != nil || in.Status != nil) {
		return nil, domain.ErrForbidden
	}
	u.Touch(actorID, time.Now())
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, companyID, id)
}

// Delete elimina lógicamente un usuario. Un usuario no puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, companyID, actorID, id int64) error {
	if id == actorID {
		return domain.ErrForbidden
	}
	u, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.NotFound("usuario")
	}
	return uc.repo.SoftDelete(ctx, companyID, id, actorID)
}
