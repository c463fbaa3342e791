package entity

import "time"

// Company representa una organización/tenant del sistema (hotel o restaurante).
type Company struct {
	ID        int64
	Name      string
	TaxID     string
	Email     string
	Phone     string
	Address   string
	Currency  string // código ISO 4217
	UpdatedBy int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Deleted   *Deletion
}

// DefaultCurrency moneda asignada al crear la empresa si no se indica.
const DefaultCurrency = "USD"
