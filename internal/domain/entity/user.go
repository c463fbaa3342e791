package entity

// Roles válidos para User.
const (
	RoleAdmin        = "ADMIN"
	RoleManager      = "MANAGER"
	RoleReceptionist = "RECEPTIONIST"
	RoleWaiter       = "WAITER"
	RoleStaff        = "STAFF"
)

var roleRank = map[string]int{
	RoleAdmin:        3,
	RoleManager:      2,
	RoleReceptionist: 1,
	RoleWaiter:       1,
	RoleStaff:        1,
}

// CanGrantRole informa si un usuario con rol actor puede otorgar target. Nadie otorga un rol superior al suyo.
func CanGrantRole(actor, target string) bool {
	a, t := roleRank[actor], roleRank[target]
	return a > 0 && t > 0 && t <= a
}

// Estados de usuario.
const (
	UserActive   = "ACTIVE"
	UserInactive = "INACTIVE"
)

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           int64
	Email        string
	PasswordHash string // bcrypt, nunca se serializa
	FirstName    string
	LastName     string
	Phone        string
	Role         string
	Status       string
	Audit
}

// FullName nombre para mostrar.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
