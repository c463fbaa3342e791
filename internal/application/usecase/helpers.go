package usecase

import (
	"net/mail"
	"strings"

	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
)

// MinPasswordLength longitud mínima de contraseña.
const MinPasswordLength = 8

// RequireText recorta v y falla si queda vacío.
func RequireText(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", domain.Invalid("%s es requerido", field)
	}
	return v, nil
}

// NormalizeEmail recorta, pasa a minúsculas y valida el formato.
func NormalizeEmail(v string) (string, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return "", domain.Invalid("email es requerido")
	}
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Address != v {
		return "", domain.Invalid("email %q inválido", v)
	}
	return v, nil
}

// ValidatePassword aplica la política mínima de contraseñas.
func ValidatePassword(p string) error {
	if len(p) < MinPasswordLength {
		return domain.Invalid("la contraseña debe tener al menos %d caracteres", MinPasswordLength)
	}
	return nil
}

// ToAudit mapea la auditoría de una entidad a su forma JSON.
func ToAudit(a entity.Audit) dto.AuditResponse {
	return dto.AuditResponse{
		CompanyID:     a.CompanyID,
		CreatedBy:     a.CreatedBy,
		CreatedByName: a.CreatedByName,
		UpdatedBy:     a.UpdatedBy,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// ToUserResponse mapea un usuario sin exponer el hash.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		FullName:      u.FullName(),
		Phone:         u.Phone,
		Role:          u.Role,
		Status:        u.Status,
		AuditResponse: ToAudit(u.Audit),
	}
}

// ToCompanyResponse mapea la empresa.
func ToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Currency:  c.Currency,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// mapList aplica f a cada elemento.
func mapList[E any, R any](list []*E, f func(*E) *R) []R {
	out := make([]R, 0, len(list))
	for _, e := range list {
		out = append(out, *f(e))
	}
	return out
}

// applyText asigna *src a dst si viene presente, validando que no quede vacío.
func applyText(field string, dst *string, src *string) error {
	if src == nil {
		return nil
	}
	v, err := RequireText(field, *src)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// applyOptional asigna *src recortado a dst si viene presente (puede quedar vacío).
func applyOptional(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
