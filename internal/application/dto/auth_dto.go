package dto

// SignupRequest alta de empresa con su primer administrador.
type SignupRequest struct {
	CompanyName    string `json:"company_name"`
	CompanyTaxID   string `json:"company_tax_id"`
	CompanyPhone   string `json:"company_phone"`
	CompanyAddress string `json:"company_address"`
	Currency       string `json:"currency"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"phone"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AcceptInvitationRequest entrada para aceptar una invitación.
type AcceptInvitationRequest struct {
	Token     string `json:"token"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

// UpdateProfileRequest datos personales editables por el propio usuario.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
}

// ChangePasswordRequest cambio de contraseña del propio usuario.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// AuthResponse token de sesión + usuario sin password + empresa.
type AuthResponse struct {
	Token   string          `json:"token"`
	User    UserResponse    `json:"user"`
	Company CompanyResponse `json:"company"`
}

// ProfileResponse usuario con su empresa expandida.
type ProfileResponse struct {
	User    UserResponse    `json:"user"`
	Company CompanyResponse `json:"company"`
}
