package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/application/ports"
	"github.com/jhoicas/Hoteleria-api/internal/application/usecase"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
	"github.com/jhoicas/Hoteleria-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Errores propios del flujo de invitaciones.
var (
	ErrInvitationUsed    = fmt.Errorf("%w: la invitación ya fue utilizada o cancelada", domain.ErrConflict)
	ErrInvitationExpired = fmt.Errorf("%w: la invitación está vencida", domain.ErrConflict)
)

// AuthUseCase casos de uso de autenticación: alta de empresa, login, invitaciones y perfil.
type AuthUseCase struct {
	tx          ports.TxRunner
	users       repository.UserRepository
	companies   repository.CompanyRepository
	invitations repository.InvitationRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	tx ports.TxRunner,
	users repository.UserRepository,
	companies repository.CompanyRepository,
	invitations repository.InvitationRepository,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{tx: tx, users: users, companies: companies, invitations: invitations, jwtCfg: jwtCfg}
}

// SignupCompany crea la empresa y su administrador en una sola transacción y devuelve la sesión.
// El email es único entre todos los tenants.
func (uc *AuthUseCase) SignupCompany(ctx context.Context, in dto.SignupRequest) (*dto.AuthResponse, error) {
	companyName, err := usecase.RequireText("company_name", in.CompanyName)
	if err != nil {
		return nil, err
	}
	email, err := usecase.NormalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if err := usecase.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	currency := entity.DefaultCurrency
	if strings.TrimSpace(in.Currency) != "" {
		if currency, err = usecase.NormalizeCurrency(in.Currency); err != nil {
			return nil, err
		}
	}
	existing, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	company := &entity.Company{
		Name:      companyName,
		TaxID:     strings.TrimSpace(in.CompanyTaxID),
		Email:     email,
		Phone:     strings.TrimSpace(in.CompanyPhone),
		Address:   strings.TrimSpace(in.CompanyAddress),
		Currency:  currency,
		CreatedAt: now,
		UpdatedAt: now,
	}
	firstName := strings.TrimSpace(in.FirstName)
	if firstName == "" {
		firstName = "Admin"
	}
	user := &entity.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     strings.TrimSpace(in.LastName),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         entity.RoleAdmin,
		Status:       entity.UserActive,
	}
	// El administrador se crea a sí mismo: no hay actor previo (0 = sistema).
	err = uc.tx.Run(ctx, func(repos ports.TxRepos) error {
		if err := repos.Companies.Create(ctx, company); err != nil {
			return err
		}
		user.Audit = entity.NewAudit(company.ID, 0, now)
		return repos.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return uc.session(user, company)
}

// Login verifica email/password y devuelve la sesión.
// Email desconocido y password incorrecto devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if user.Status != entity.UserActive {
		return nil, fmt.Errorf("%w: usuario inactivo", domain.ErrForbidden)
	}
	company, err := uc.companies.GetByID(ctx, user.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrInvalidCredentials
	}
	return uc.session(user, company)
}

// AcceptInvitation crea el usuario invitado y marca la invitación aceptada en una transacción.
func (uc *AuthUseCase) AcceptInvitation(ctx context.Context, in dto.AcceptInvitationRequest) (*dto.AuthResponse, error) {
	token, err := usecase.RequireText("token", in.Token)
	if err != nil {
		return nil, err
	}
	firstName, err := usecase.RequireText("first_name", in.FirstName)
	if err != nil {
		return nil, err
	}
	if err := usecase.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	inv, err := uc.invitations.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.NotFound("invitación")
	}
	now := time.Now()
	switch inv.State(now) {
	case entity.InvitationPending:
	case entity.InvitationExpired:
		return nil, ErrInvitationExpired
	default:
		return nil, ErrInvitationUsed
	}
	existing, err := uc.users.FindByEmail(ctx, inv.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Email:        inv.Email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     strings.TrimSpace(in.LastName),
		Role:         inv.Role,
		Status:       entity.UserActive,
		Audit:        entity.NewAudit(inv.CompanyID, inv.CreatedBy, now),
	}
	var company *entity.Company
	err = uc.tx.Run(ctx, func(repos ports.TxRepos) error {
		if err := repos.Users.Create(ctx, user); err != nil {
			return err
		}
		inv.Status = entity.InvitationAccepted
		inv.AcceptedAt = &now
		inv.Touch(user.ID, now)
		if err := repos.Invitations.Update(ctx, inv); err != nil {
			return err
		}
		company, err = repos.Companies.GetByID(ctx, inv.CompanyID)
		if err != nil {
			return err
		}
		if company == nil {
			return domain.NotFound("empresa")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.session(user, company)
}

// GetProfile devuelve el usuario autenticado con su empresa.
func (uc *AuthUseCase) GetProfile(ctx context.Context, companyID, userID int64) (*dto.ProfileResponse, error) {
	user, err := uc.users.GetByID(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound("usuario")
	}
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.NotFound("empresa")
	}
	return &dto.ProfileResponse{User: *usecase.ToUserResponse(user), Company: *usecase.ToCompanyResponse(company)}, nil
}

// UpdateProfile actualiza los datos personales del propio usuario.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, companyID, userID int64, in dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	user, err := uc.users.GetByID(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound("usuario")
	}
	if in.FirstName != nil {
		if user.FirstName, err = usecase.RequireText("first_name", *in.FirstName); err != nil {
			return nil, err
		}
	}
	if in.LastName != nil {
		user.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Phone != nil {
		user.Phone = strings.TrimSpace(*in.Phone)
	}
	user.Touch(userID, time.Now())
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return uc.GetProfile(ctx, companyID, userID)
}

// ChangePassword verifica la contraseña actual y guarda la nueva.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, companyID, userID int64, in dto.ChangePasswordRequest) error {
	user, err := uc.users.GetByID(ctx, companyID, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.NotFound("usuario")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}
	if err := usecase.ValidatePassword(in.NewPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.users.UpdatePassword(ctx, companyID, userID, string(hash), userID)
}

func (uc *AuthUseCase) session(user *entity.User, company *entity.Company) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Session{
		UserID:    user.ID,
		Email:     user.Email,
		CompanyID: user.CompanyID,
		Role:      user.Role,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token:   token,
		User:    *usecase.ToUserResponse(user),
		Company: *usecase.ToCompanyResponse(company),
	}, nil
}
