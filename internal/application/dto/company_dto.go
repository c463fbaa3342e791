package dto

import "time"

// CompanyResponse salida de la empresa (tenant).
type CompanyResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateCompanyRequest campos editables de la empresa.
type UpdateCompanyRequest struct {
	Name     *string `json:"name"`
	TaxID    *string `json:"tax_id"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Currency *string `json:"currency"`
}
