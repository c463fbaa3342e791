package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Hoteleria-api/internal/application/auth"
	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/application/usecase"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/Hoteleria-api/pkg/jwt"
)

const testSecret = "auth-usecase-test-secret"

type fixture struct {
	store *memory.Store
	users *memory.UserRepo
	auth  *auth.AuthUseCase
}

func newFixture() *fixture {
	s := memory.NewStore()
	users := memory.NewUserRepository(s)
	uc := auth.NewAuthUseCase(
		memory.NewTxRunner(s),
		users,
		memory.NewCompanyRepository(s),
		memory.NewInvitationRepository(s),
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"},
	)
	return &fixture{store: s, users: users, auth: uc}
}

func (f *fixture) invitations(ttl time.Duration) *usecase.InvitationUseCase {
	return usecase.NewInvitationUseCase(memory.NewInvitationRepository(f.store), f.users, ttl)
}

func signupReq(email string) dto.SignupRequest {
	return dto.SignupRequest{CompanyName: "Hotel Sol", Email: email, Password: "password-123", FirstName: "Ana"}
}

func TestSignup_CreaEmpresaYAdmin(t *testing.T) {
	f := newFixture()
	out, err := f.auth.SignupCompany(context.Background(), signupReq("  Ana@Sol.Test "))
	require.NoError(t, err)

	assert.Equal(t, "ana@sol.test", out.User.Email)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)
	assert.Equal(t, entity.DefaultCurrency, out.Company.Currency)
	assert.Equal(t, out.Company.ID, out.User.CompanyID)

	claims, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.UserID)
	assert.Equal(t, out.Company.ID, claims.CompanyID)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
}

func TestSignup_EmailDuplicadoNoCreaEmpresa(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.auth.SignupCompany(ctx, signupReq("ana@sol.test"))
	require.NoError(t, err)

	_, err = f.auth.SignupCompany(ctx, signupReq("ANA@sol.test"))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Equal(t, 1, f.store.Counts()["companies"])
	assert.Equal(t, 1, f.store.Counts()["users"])
}

func TestSignup_PasswordCorta(t *testing.T) {
	f := newFixture()
	req := signupReq("ana@sol.test")
	req.Password = "corta"
	_, err := f.auth.SignupCompany(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, f.store.Counts()["companies"])
}

func TestLogin_MismoErrorParaEmailDesconocidoYPasswordIncorrecto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.auth.SignupCompany(ctx, signupReq("ana@sol.test"))
	require.NoError(t, err)

	_, errUnknown := f.auth.Login(ctx, dto.LoginRequest{Email: "nadie@sol.test", Password: "password-123"})
	_, errWrong := f.auth.Login(ctx, dto.LoginRequest{Email: "ana@sol.test", Password: "otra-password"})

	require.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	require.ErrorIs(t, errWrong, domain.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())

	out, err := f.auth.Login(ctx, dto.LoginRequest{Email: " ANA@sol.test", Password: "password-123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	out, err := f.auth.SignupCompany(ctx, signupReq("ana@sol.test"))
	require.NoError(t, err)

	u, err := f.users.GetByID(ctx, out.Company.ID, out.User.ID)
	require.NoError(t, err)
	u.Status = entity.UserInactive
	require.NoError(t, f.users.Update(ctx, u))

	_, err = f.auth.Login(ctx, dto.LoginRequest{Email: "ana@sol.test", Password: "password-123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAcceptInvitation_CreaUsuarioEnLaEmpresaQueInvita(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	admin, err := f.auth.SignupCompany(ctx, signupReq("ana@sol.test"))
	require.NoError(t, err)

	inv, err := f.invitations(time.Hour).Create(ctx, admin.Company.ID, admin.User.ID, admin.User.Role,
		dto.CreateInvitationRequest{Email: "luis@sol.test", Role: "WAITER"})
	require.NoError(t, err)

	out, err := f.auth.AcceptInvitation(ctx, dto.AcceptInvitationRequest{Token: inv.Token, FirstName: "Luis", Password: "password-456"})
	require.NoError(t, err)
	assert.Equal(t, admin.Company.ID, out.User.CompanyID)
	assert.Equal(t, entity.RoleWaiter, out.User.Role)
	assert.Equal(t, admin.User.ID, out.User.CreatedBy)

	_, err = f.auth.AcceptInvitation(ctx, dto.AcceptInvitationRequest{Token: inv.Token, FirstName: "Luis", Password: "password-456"})
	assert.ErrorIs(t, err, auth.ErrInvitationUsed)

	_, err = f.auth.Login(ctx, dto.LoginRequest{Email: "luis@sol.test", Password: "password-456"})
	assert.NoError(t, err)
}

func TestAcceptInvitation_VencidaNoCreaUsuario(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	admin, err := f.auth.SignupCompany(ctx, signupReq("ana@sol.test"))
	require.NoError(t, err)

	inv, err := f.invitations(time.Hour).Create(ctx, admin.Company.ID, admin.User.ID, admin.User.Role,
		dto.CreateInvitationRequest{Email: "luis@sol.test", Role: "STAFF"})
	require.NoError(t, err)

	invRepo := memory.NewInvitationRepository(f.store)
	stored, err := invRepo.FindPendingByEmail(ctx, admin.Company.ID, "luis@sol.test")
	require.NoError(t, err)
	require.NotNil(t, stored)
	stored.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, invRepo.Update(ctx, stored))

	_, err = f.auth.AcceptInvitation(ctx, dto.AcceptInvitationRequest{Token: inv.Token, FirstName: "Luis", Password: "password-456"})
	assert.ErrorIs(t, err, auth.ErrInvitationExpired)
	assert.Equal(t, 1, f.store.Counts()["users"])
}

func TestAcceptInvitation_TokenDesconocido(t *testing.T) {
	f := newFixture()
	_, err := f.auth.AcceptInvitation(context.Background(), dto.AcceptInvitationRequest{Token: "no-existe", FirstName: "X", Password: "password-456"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChangePassword(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	admin, err := f.auth.SignupCompany(ctx, signupReq("ana@sol.test"))
	require.NoError(t, err)
	companyID, userID := admin.Company.ID, admin.User.ID

	err = f.auth.ChangePassword(ctx, companyID, userID, dto.ChangePasswordRequest{CurrentPassword: "mala-password", NewPassword: "nueva-password"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	require.NoError(t, f.auth.ChangePassword(ctx, companyID, userID, dto.ChangePasswordRequest{CurrentPassword: "password-123", NewPassword: "nueva-password"}))

	_, err = f.auth.Login(ctx, dto.LoginRequest{Email: "ana@sol.test", Password: "password-123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = f.auth.Login(ctx, dto.LoginRequest{Email: "ana@sol.test", Password: "nueva-password"})
	assert.NoError(t, err)
}

func TestProfile_OtroTenantNoEncuentraUsuario(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	admin, err := f.auth.SignupCompany(ctx, signupReq("ana@sol.test"))
	require.NoError(t, err)

	_, err = f.auth.GetProfile(ctx, admin.Company.ID+1, admin.User.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	name := "Ana María"
	out, err := f.auth.UpdateProfile(ctx, admin.Company.ID, admin.User.ID, dto.UpdateProfileRequest{FirstName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, out.User.FirstName)
	assert.Equal(t, "Hotel Sol", out.Company.Name)
}
