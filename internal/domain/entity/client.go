package entity

// Tipos de cliente.
const (
	ClientIndividual = "INDIVIDUAL"
	ClientCorporate  = "CORPORATE"
	ClientWalkIn     = "WALK_IN"
)

// Client huésped o comensal registrado.
type Client struct {
	ID          int64
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Type        string
	CompanyName string
	Notes       string
	Audit
}

// FullName nombre para mostrar.
func (c *Client) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
