package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio sobre la empresa del usuario autenticado.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// GetCurrent obtiene la empresa del tenant.
func (uc *CompanyUseCase) GetCurrent(ctx context.Context, companyID int64) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.NotFound("empresa")
	}
	return ToCompanyResponse(company), nil
}

// Update actualiza los datos de la empresa.
func (uc *CompanyUseCase) Update(ctx context.Context, companyID, actorID int64, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.NotFound("empresa")
	}
	if err := applyText("name", &company.Name, in.Name); err != nil {
		return nil, err
	}
	applyOptional(&company.TaxID, in.TaxID)
	applyOptional(&company.Phone, in.Phone)
	applyOptional(&company.Address, in.Address)
	if in.Email != nil {
		company.Email = ""
		if strings.TrimSpace(*in.Email) != "" {
			email, err := NormalizeEmail(*in.Email)
			if err != nil {
				return nil, err
			}
			company.Email = email
		}
	}
	if in.Currency != nil {
		cur, err := NormalizeCurrency(*in.Currency)
		if err != nil {
			return nil, err
		}
		company.Currency = cur
	}
	company.UpdatedBy = actorID
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return ToCompanyResponse(company), nil
}

// NormalizeCurrency valida un código ISO 4217 (tres letras).
func NormalizeCurrency(v string) (string, error) {
	v = strings.ToUpper(strings.TrimSpace(v))
	if len(v) != 3 {
		return "", domain.Invalid("currency debe ser un código ISO de 3 letras")
	}
	for _, r := range v {
		if r < 'A' || r > 'Z' {
			return "", domain.Invalid("currency debe ser un código ISO de 3 letras")
		}
	}
	return v, nil
}
