package dto

// CreateClientRequest entrada para crear un cliente.
type CreateClientRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ClientType  string `json:"client_type"`
	CompanyName string `json:"company_name"`
	Notes       string `json:"notes"`
}

// UpdateClientRequest solo se aplican los campos presentes.
type UpdateClientRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	ClientType  *string `json:"client_type"`
	CompanyName *string `json:"company_name"`
	Notes       *string `json:"notes"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ClientType  string `json:"client_type"`
	CompanyName string `json:"company_name"`
	Notes       string `json:"notes"`
	AuditResponse
}

// ClientStats clientes por tipo.
type ClientStats struct {
	Total  int64            `json:"total"`
	ByType map[string]int64 `json:"by_type"`
}
