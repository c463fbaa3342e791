package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/application/usecase"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/infrastructure/memory"
)

const (
	tenantA int64 = 1
	tenantB int64 = 2
	actor   int64 = 10
)

type CatalogSuite struct {
	suite.Suite
	ctx        context.Context
	store      *memory.Store
	roomTypes  *usecase.RoomTypeUseCase
	rooms      *usecase.RoomUseCase
	categories *usecase.CategoryUseCase
	products   *usecase.ProductUseCase
	clients    *usecase.ClientUseCase
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogSuite))
}

func (s *CatalogSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	roomTypeRepo := memory.NewRoomTypeRepository(s.store)
	categoryRepo := memory.NewCategoryRepository(s.store)
	s.roomTypes = usecase.NewRoomTypeUseCase(roomTypeRepo, nil)
	s.rooms = usecase.NewRoomUseCase(memory.NewRoomRepository(s.store), roomTypeRepo, nil)
	s.categories = usecase.NewCategoryUseCase(categoryRepo, nil)
	s.products = usecase.NewProductUseCase(memory.NewProductRepository(s.store), categoryRepo, nil)
	s.clients = usecase.NewClientUseCase(memory.NewClientRepository(s.store), memory.NewRestaurantOrderRepository(s.store), nil)
}

func (s *CatalogSuite) roomType(companyID int64, name string) *dto.RoomTypeResponse {
	out, err := s.roomTypes.Create(s.ctx, companyID, actor, dto.CreateRoomTypeRequest{
		Name: name, BasePrice: decimal.NewFromInt(100), MaxOccupancy: 2,
	})
	s.Require().NoError(err)
	return out
}

func (s *CatalogSuite) TestPaginacion_TerceraPagina() {
	for i := range 25 {
		s.roomType(tenantA, fmt.Sprintf("Tipo %02d", i))
	}
	out, err := s.roomTypes.List(s.ctx, tenantA, dto.ListParams{Page: 3, Limit: 10, SortBy: "name", SortOrder: "asc"})
	s.Require().NoError(err)

	s.Len(out.Data, 5)
	s.Equal(int64(25), out.Meta.Total)
	s.Equal(3, out.Meta.TotalPages)
	s.Equal(3, out.Meta.Page)
	s.Equal("Tipo 20", out.Data[0].Name)
}

func (s *CatalogSuite) TestList_ValoresPorDefectoYLimiteMaximo() {
	s.roomType(tenantA, "Suite")
	out, err := s.roomTypes.List(s.ctx, tenantA, dto.ListParams{Limit: 500})
	s.Require().NoError(err)
	s.Equal(1, out.Meta.Page)
	s.Equal(dto.MaxLimit, out.Meta.Limit)
}

func (s *CatalogSuite) TestList_SortByNoPermitido() {
	_, err := s.roomTypes.List(s.ctx, tenantA, dto.ListParams{SortBy: "password_hash"})
	s.ErrorIs(err, domain.ErrInvalidInput)
}

func (s *CatalogSuite) TestAislamientoDeTenant() {
	rt := s.roomType(tenantA, "Suite")

	_, err := s.roomTypes.GetByID(s.ctx, tenantB, rt.ID)
	s.ErrorIs(err, domain.ErrNotFound, "otro tenant ve lo mismo que un id inexistente")
	_, err = s.roomTypes.GetByID(s.ctx, tenantB, 9999)
	s.ErrorIs(err, domain.ErrNotFound)

	err = s.roomTypes.Delete(s.ctx, tenantB, actor, rt.ID)
	s.ErrorIs(err, domain.ErrNotFound)

	list, err := s.roomTypes.List(s.ctx, tenantB, dto.ListParams{})
	s.Require().NoError(err)
	s.Empty(list.Data)
	s.Equal(int64(0), list.Meta.Total)
}

func (s *CatalogSuite) TestNombreDuplicado_MismoTenantConflicto_OtroTenantPermitido() {
	s.roomType(tenantA, "Suite")

	_, err := s.roomTypes.Create(s.ctx, tenantA, actor, dto.CreateRoomTypeRequest{Name: "  suite ", MaxOccupancy: 2})
	s.ErrorIs(err, domain.ErrConflict)

	other := s.roomType(tenantB, "Suite")
	s.Equal(tenantB, other.CompanyID)
}

func (s *CatalogSuite) TestBorradoLogico_LiberaElNombre() {
	rt := s.roomType(tenantA, "Suite")
	s.Require().NoError(s.roomTypes.Delete(s.ctx, tenantA, actor, rt.ID))

	_, err := s.roomTypes.GetByID(s.ctx, tenantA, rt.ID)
	s.ErrorIs(err, domain.ErrNotFound)

	again := s.roomType(tenantA, "Suite")
	s.NotEqual(rt.ID, again.ID)
}

func (s *CatalogSuite) TestBorradoBloqueado_TipoConHabitaciones() {
	rt := s.roomType(tenantA, "Doble")
	for _, n := range []string{"101", "102"} {
		_, err := s.rooms.Create(s.ctx, tenantA, actor, dto.CreateRoomRequest{Number: n, Floor: 1, RoomTypeID: rt.ID})
		s.Require().NoError(err)
	}

	err := s.roomTypes.Delete(s.ctx, tenantA, actor, rt.ID)
	s.ErrorIs(err, domain.ErrForbidden)
	s.Contains(err.Error(), "2 habitaciones")

	got, err := s.roomTypes.GetByID(s.ctx, tenantA, rt.ID)
	s.Require().NoError(err)
	s.Equal(int64(2), got.RoomCount)
}

func (s *CatalogSuite) TestHabitacion_TipoDeOtroTenant() {
	rt := s.roomType(tenantB, "Suite")
	_, err := s.rooms.Create(s.ctx, tenantA, actor, dto.CreateRoomRequest{Number: "201", RoomTypeID: rt.ID})
	s.ErrorIs(err, domain.ErrInvalidInput)
}

func (s *CatalogSuite) TestHabitacion_EstadoSeNormaliza() {
	rt := s.roomType(tenantA, "Suite")
	room, err := s.rooms.Create(s.ctx, tenantA, actor, dto.CreateRoomRequest{Number: "301", RoomTypeID: rt.ID})
	s.Require().NoError(err)
	s.Equal(entity.RoomAvailable, room.Status)

	room, err = s.rooms.UpdateStatus(s.ctx, tenantA, actor, room.ID, " cleaning ")
	s.Require().NoError(err)
	s.Equal(entity.RoomCleaning, room.Status)

	_, err = s.rooms.UpdateStatus(s.ctx, tenantA, actor, room.ID, "BROKEN")
	s.ErrorIs(err, domain.ErrInvalidInput)

	stats, err := s.rooms.Stats(s.ctx, tenantA)
	s.Require().NoError(err)
	s.Equal(int64(1), stats.Total)
	s.Equal(int64(1), stats.ByStatus[entity.RoomCleaning])
}

func (s *CatalogSuite) TestAjusteDeStock_NuncaNegativo() {
	p, err := s.products.Create(s.ctx, tenantA, actor, dto.CreateProductRequest{
		Name: "Agua", Price: decimal.RequireFromString("2.50"), Stock: 3, MinStock: 5,
	})
	s.Require().NoError(err)
	s.True(p.LowStock)

	_, err = s.products.AdjustStock(s.ctx, tenantA, actor, p.ID, -4)
	s.ErrorIs(err, domain.ErrInsufficientStock)

	out, err := s.products.AdjustStock(s.ctx, tenantA, actor, p.ID, 10)
	s.Require().NoError(err)
	s.Equal(13, out.Stock)
	s.False(out.LowStock)
}

func (s *CatalogSuite) TestProducto_UpdateNoTocaStock() {
	p, err := s.products.Create(s.ctx, tenantA, actor, dto.CreateProductRequest{Name: "Café", Stock: 7})
	s.Require().NoError(err)

	name := "Café americano"
	out, err := s.products.Update(s.ctx, tenantA, actor, p.ID, dto.UpdateProductRequest{Name: &name})
	s.Require().NoError(err)
	s.Equal(name, out.Name)
	s.Equal(7, out.Stock)
}

func (s *CatalogSuite) TestCategoria_BorradoBloqueadoPorProductos() {
	cat, err := s.categories.Create(s.ctx, tenantA, actor, dto.CreateCategoryRequest{Name: "Bebidas"})
	s.Require().NoError(err)
	_, err = s.products.Create(s.ctx, tenantA, actor, dto.CreateProductRequest{Name: "Jugo", CategoryID: &cat.ID})
	s.Require().NoError(err)

	err = s.categories.Delete(s.ctx, tenantA, actor, cat.ID)
	s.ErrorIs(err, domain.ErrForbidden)
}

func (s *CatalogSuite) TestCliente_TipoYEmailUnicoPorTenant() {
	c, err := s.clients.Create(s.ctx, tenantA, actor, dto.CreateClientRequest{FirstName: "Ana", LastName: "Paz", Email: "ANA@mail.test"})
	s.Require().NoError(err)
	s.Equal(entity.ClientIndividual, c.ClientType)
	s.Equal("ana@mail.test", c.Email)
	s.Equal("Ana Paz", c.FullName)

	_, err = s.clients.Create(s.ctx, tenantA, actor, dto.CreateClientRequest{FirstName: "Otra", Email: "ana@mail.test"})
	s.ErrorIs(err, domain.ErrConflict)

	_, err = s.clients.Create(s.ctx, tenantB, actor, dto.CreateClientRequest{FirstName: "Ana", Email: "ana@mail.test"})
	s.NoError(err)

	_, err = s.clients.Create(s.ctx, tenantA, actor, dto.CreateClientRequest{FirstName: "Luis", ClientType: "REGULAR"})
	s.ErrorIs(err, domain.ErrInvalidInput)
}

func TestNormalizeEmail(t *testing.T) {
	got, err := usecase.NormalizeEmail("  Admin@Hotel.Test ")
	require.NoError(t, err)
	assert.Equal(t, "admin@hotel.test", got)

	for _, bad := range []string{"", "sin-arroba", "Nombre <a@b.c>"} {
		_, err := usecase.NormalizeEmail(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, bad)
	}
}

func TestInvitaciones(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	uc := usecase.NewInvitationUseCase(memory.NewInvitationRepository(store), users, time.Hour)

	require.NoError(t, users.Create(ctx, &entity.User{
		Email: "ya@hotel.test", Role: entity.RoleAdmin, Status: entity.UserActive,
		Audit: entity.NewAudit(tenantA, 0, time.Now()),
	}))

	inv, err := uc.Create(ctx, tenantA, actor, entity.RoleAdmin, dto.CreateInvitationRequest{Email: "Nuevo@Hotel.test", Role: "waiter"})
	require.NoError(t, err)
	assert.Equal(t, "nuevo@hotel.test", inv.Email)
	assert.Equal(t, entity.RoleWaiter, inv.Role)
	assert.Equal(t, entity.InvitationPending, inv.Status)
	assert.NotEmpty(t, inv.Token)

	_, err = uc.Create(ctx, tenantA, actor, entity.RoleAdmin, dto.CreateInvitationRequest{Email: "nuevo@hotel.test", Role: "STAFF"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "solo una invitación pendiente por email")

	_, err = uc.Create(ctx, tenantA, actor, entity.RoleAdmin, dto.CreateInvitationRequest{Email: "ya@hotel.test", Role: "STAFF"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	cancelled, err := uc.Cancel(ctx, tenantA, actor, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvitationCancelled, cancelled.Status)
	assert.Empty(t, cancelled.Token)

	_, err = uc.Cancel(ctx, tenantA, actor, inv.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	again, err := uc.Create(ctx, tenantA, actor, entity.RoleAdmin, dto.CreateInvitationRequest{Email: "nuevo@hotel.test", Role: "STAFF"})
	require.NoError(t, err)

	resent, err := uc.Resend(ctx, tenantA, actor, entity.RoleAdmin, again.ID)
	require.NoError(t, err)
	assert.NotEqual(t, again.Token, resent.Token)

	_, err = uc.Resend(ctx, tenantB, actor, entity.RoleAdmin, again.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvitaciones_NoOtorgaRolSuperior(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := usecase.NewInvitationUseCase(memory.NewInvitationRepository(store), memory.NewUserRepository(store), time.Hour)

	_, err := uc.Create(ctx, tenantA, actor, entity.RoleManager, dto.CreateInvitationRequest{Email: "jefe@hotel.test", Role: "admin"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	mgr, err := uc.Create(ctx, tenantA, actor, entity.RoleManager, dto.CreateInvitationRequest{Email: "par@hotel.test", Role: "manager"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, mgr.Role)

	adm, err := uc.Create(ctx, tenantA, actor, entity.RoleAdmin, dto.CreateInvitationRequest{Email: "jefe@hotel.test", Role: "admin"})
	require.NoError(t, err)
	_, err = uc.Resend(ctx, tenantA, actor, entity.RoleManager, adm.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Create(ctx, tenantA, actor, entity.RoleWaiter, dto.CreateInvitationRequest{Email: "otro@hotel.test", Role: "staff"})
	assert.NoError(t, err, "roles del mismo nivel se pueden otorgar")
	_, err = uc.Create(ctx, tenantA, actor, "", dto.CreateInvitationRequest{Email: "nadie@hotel.test", Role: "staff"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestInvitaciones_TTLNoPositivoUsaDefault(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := usecase.NewInvitationUseCase(memory.NewInvitationRepository(store), memory.NewUserRepository(store), 0)

	inv, err := uc.Create(ctx, tenantA, actor, entity.RoleAdmin, dto.CreateInvitationRequest{Email: "nuevo@hotel.test", Role: "staff"})
	require.NoError(t, err)
	assert.Equal(t, entity.InvitationPending, inv.Status)
	assert.WithinDuration(t, time.Now().Add(usecase.DefaultInvitationTTL), inv.ExpiresAt, time.Minute)
}

func TestUsuarios_NoPuedeCambiarseRolNiEliminarseASiMismo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := memory.NewUserRepository(store)
	uc := usecase.NewUserUseCase(repo)

	admin := &entity.User{Email: "admin@hotel.test", FirstName: "Admin", Role: entity.RoleAdmin, Status: entity.UserActive,
		Audit: entity.NewAudit(tenantA, 0, time.Now())}
	require.NoError(t, repo.Create(ctx, admin))

	role := "STAFF"
	_, err := uc.Update(ctx, tenantA, admin.ID, admin.ID, dto.UpdateUserRequest{Role: &role})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.ErrorIs(t, uc.Delete(ctx, tenantA, admin.ID, admin.ID), domain.ErrForbidden)

	phone := "555-0101"
	out, err := uc.Update(ctx, tenantA, admin.ID, admin.ID, dto.UpdateUserRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, out.Phone)
}
