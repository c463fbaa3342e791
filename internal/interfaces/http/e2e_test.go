package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/jhoicas/Hoteleria-api/internal/app"
	"github.com/jhoicas/Hoteleria-api/internal/application/auth"
	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Hoteleria-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Hoteleria-api/internal/interfaces/http"
)

// APISuite levanta la API completa sobre el almacén en memoria.
type APISuite struct {
	suite.Suite
	app   *fiber.App
	admin string
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	ucs := app.NewUseCases(app.MemoryRepositories(memory.NewStore()), app.Options{
		JWT:           auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
		Receipts:      infrapdf.NewMarotoReceiptGenerator(),
		InvitationTTL: time.Hour,
	})
	health := apphttp.NewHealthHandler("hoteleria-test", map[string]apphttp.HealthCheck{
		"memory": func(context.Context) error { return nil },
	})
	s.app = fiber.New()
	apphttp.Router(s.app, ucs.RouterDeps(testJWTSecret, nil, health))
	s.admin = s.signup("admin@sol.test", "Hotel Sol")
}

func (s *APISuite) call(method, path, token string, body any) (*http.Response, []byte) {
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	out, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp, out
}

// must ejecuta la petición, exige el status y decodifica el cuerpo en dst (si no es nil).
func (s *APISuite) must(status int, method, path, token string, body, dst any) {
	resp, raw := s.call(method, path, token, body)
	s.Require().Equal(status, resp.StatusCode, "%s %s: %s", method, path, raw)
	if dst != nil {
		s.Require().NoError(json.Unmarshal(raw, dst))
	}
}

func (s *APISuite) errCode(method, path, token string, body any) (int, string) {
	resp, raw := s.call(method, path, token, body)
	var e dto.ErrorResponse
	_ = json.Unmarshal(raw, &e)
	return resp.StatusCode, e.Code
}

func (s *APISuite) signup(email, company string) string {
	var out dto.AuthResponse
	s.must(fiber.StatusCreated, http.MethodPost, "/api/auth/signup", "", dto.SignupRequest{
		CompanyName: company, Email: email, Password: "password-123", FirstName: "Ada",
	}, &out)
	s.Require().NotEmpty(out.Token)
	return out.Token
}

func (s *APISuite) TestHealth() {
	var out map[string]any
	s.must(fiber.StatusOK, http.MethodGet, "/api/health", "", nil, &out)
	s.Equal("ok", out["status"])
}

func (s *APISuite) TestAuth_LoginYPerfil() {
	var out dto.AuthResponse
	s.must(fiber.StatusOK, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ADMIN@sol.test", Password: "password-123"}, &out)
	s.Equal("ADMIN", out.User.Role)

	status, code := s.errCode(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@sol.test", Password: "otra-clave"})
	s.Equal(fiber.StatusUnauthorized, status)
	s.Equal("INVALID_CREDENTIALS", code)

	status, code = s.errCode(http.MethodPost, "/api/auth/signup", "", dto.SignupRequest{
		CompanyName: "Otra", Email: "admin@sol.test", Password: "password-123", FirstName: "B",
	})
	s.Equal(fiber.StatusConflict, status)
	s.Equal("EMAIL_EXISTS", code)

	var profile dto.ProfileResponse
	s.must(fiber.StatusOK, http.MethodGet, "/api/auth/profile", out.Token, nil, &profile)
	s.Equal("Hotel Sol", profile.Company.Name)
}

func (s *APISuite) TestSinToken_401() {
	status, code := s.errCode(http.MethodGet, "/api/rooms", "", nil)
	s.Equal(fiber.StatusUnauthorized, status)
	s.Equal("MISSING_TOKEN", code)

	status, _ = s.errCode(http.MethodGet, "/api/rooms", "no-es-un-jwt", nil)
	s.Equal(fiber.StatusUnauthorized, status)
}

func (s *APISuite) TestBodyInvalido_400() {
	req := httptest.NewRequest(http.MethodPost, "/api/room-types", bytes.NewBufferString("{"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+s.admin)
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *APISuite) TestPaginacionYAislamiento() {
	for i := 1; i <= 12; i++ {
		s.must(fiber.StatusCreated, http.MethodPost, "/api/restaurant/tables", s.admin,
			dto.CreateTableRequest{Number: fmt.Sprintf("M%02d", i), Capacity: 2}, nil)
	}

	var page dto.ListResponse[dto.TableResponse]
	s.must(fiber.StatusOK, http.MethodGet, "/api/restaurant/tables?page=2&limit=5&sort_by=number&sort_order=asc", s.admin, nil, &page)
	s.Equal(int64(12), page.Meta.Total)
	s.Equal(3, page.Meta.TotalPages)
	s.Require().Len(page.Data, 5)
	s.Equal("M06", page.Data[0].Number)

	status, code := s.errCode(http.MethodGet, "/api/restaurant/tables?sort_by=password", s.admin, nil)
	s.Equal(fiber.StatusBadRequest, status)
	s.Equal("VALIDATION", code)

	other := s.signup("admin@luna.test", "Hotel Luna")
	var empty dto.ListResponse[dto.TableResponse]
	s.must(fiber.StatusOK, http.MethodGet, "/api/restaurant/tables", other, nil, &empty)
	s.Zero(empty.Meta.Total)
	s.Empty(empty.Data)

	status, code = s.errCode(http.MethodGet, fmt.Sprintf("/api/restaurant/tables/%d", page.Data[0].ID), other, nil)
	s.Equal(fiber.StatusNotFound, status)
	s.Equal("NOT_FOUND", code)
}

func (s *APISuite) TestInvitacionYRoles() {
	var inv dto.InvitationResponse
	s.must(fiber.StatusCreated, http.MethodPost, "/api/invitations", s.admin,
		dto.CreateInvitationRequest{Email: "mesero@sol.test", Role: "waiter"}, &inv)
	s.Equal("WAITER", inv.Role)
	s.Require().NotEmpty(inv.Token)

	var accepted dto.AuthResponse
	s.must(fiber.StatusCreated, http.MethodPost, "/api/auth/accept-invitation", "", dto.AcceptInvitationRequest{
		Token: inv.Token, FirstName: "Leo", Password: "password-456",
	}, &accepted)
	waiter := accepted.Token

	status, code := s.errCode(http.MethodPost, "/api/room-types", waiter, dto.CreateRoomTypeRequest{Name: "Suite"})
	s.Equal(fiber.StatusForbidden, status)
	s.Equal("FORBIDDEN", code)

	status, _ = s.errCode(http.MethodGet, "/api/users", waiter, nil)
	s.Equal(fiber.StatusForbidden, status)

	var users dto.ListResponse[dto.UserResponse]
	s.must(fiber.StatusOK, http.MethodGet, "/api/users", s.admin, nil, &users)
	s.Equal(int64(2), users.Meta.Total)

	status, code = s.errCode(http.MethodPost, "/api/auth/accept-invitation", "", dto.AcceptInvitationRequest{
		Token: inv.Token, FirstName: "Leo", Password: "password-456",
	})
	s.Equal(fiber.StatusConflict, status)
	s.Equal("CONFLICT", code)
}

// invite crea y acepta una invitación; devuelve el token del nuevo usuario.
func (s *APISuite) invite(by, email, role string) string {
	var inv dto.InvitationResponse
	s.must(fiber.StatusCreated, http.MethodPost, "/api/invitations", by,
		dto.CreateInvitationRequest{Email: email, Role: role}, &inv)
	var accepted dto.AuthResponse
	s.must(fiber.StatusCreated, http.MethodPost, "/api/auth/accept-invitation", "", dto.AcceptInvitationRequest{
		Token: inv.Token, FirstName: "Invitado", Password: "password-789",
	}, &accepted)
	return accepted.Token
}

func (s *APISuite) TestGerenteNoInvitaAdmin() {
	manager := s.invite(s.admin, "gerente@sol.test", "manager")

	status, code := s.errCode(http.MethodPost, "/api/invitations", manager,
		dto.CreateInvitationRequest{Email: "intruso@sol.test", Role: "admin"})
	s.Equal(fiber.StatusForbidden, status)
	s.Equal("FORBIDDEN", code)

	s.invite(manager, "recepcion@sol.test", "receptionist")

	var pending dto.InvitationResponse
	s.must(fiber.StatusCreated, http.MethodPost, "/api/invitations", s.admin,
		dto.CreateInvitationRequest{Email: "socio@sol.test", Role: "admin"}, &pending)
	status, _ = s.errCode(http.MethodPost, fmt.Sprintf("/api/invitations/%d/resend", pending.ID), manager, nil)
	s.Equal(fiber.StatusForbidden, status)
}

func (s *APISuite) TestFlujoDeOrden() {
	var product dto.ProductResponse
	s.must(fiber.StatusCreated, http.MethodPost, "/api/products", s.admin, map[string]any{
		"name": "Limonada", "price": "4.00", "stock": 3, "unit": "BOTTLE",
	}, &product)
	s.Equal("bottle", product.Unit)

	var table dto.TableResponse
	s.must(fiber.StatusCreated, http.MethodPost, "/api/restaurant/tables", s.admin, dto.CreateTableRequest{Number: "T1", Capacity: 4}, &table)

	status, code := s.errCode(http.MethodPost, "/api/restaurant/orders", s.admin, dto.CreateOrderRequest{
		TableID: &table.ID, Items: []dto.OrderItemRequest{{ProductID: product.ID, Quantity: 5}},
	})
	s.Equal(fiber.StatusConflict, status)
	s.Equal("INSUFFICIENT_STOCK", code)

	var order dto.OrderResponse
	s.must(fiber.StatusCreated, http.MethodPost, "/api/restaurant/orders", s.admin, dto.CreateOrderRequest{
		TableID: &table.ID, Items: []dto.OrderItemRequest{{ProductID: product.ID, Quantity: 2}},
	}, &order)
	s.Equal("PENDING", order.Status)
	s.Equal("8", order.Total.String())

	s.must(fiber.StatusOK, http.MethodGet, fmt.Sprintf("/api/restaurant/tables/%d", table.ID), s.admin, nil, &table)
	s.Equal("OCCUPIED", table.Status)

	orderPath := fmt.Sprintf("/api/restaurant/orders/%d", order.ID)
	status, code = s.errCode(http.MethodPatch, orderPath+"/status", s.admin, dto.UpdateStatusRequest{Status: "PAID"})
	s.Equal(fiber.StatusBadRequest, status)
	s.Equal("VALIDATION", code)

	status, code = s.errCode(http.MethodPatch, orderPath+"/status", s.admin, dto.UpdateStatusRequest{Status: "SERVED"})
	s.Equal(fiber.StatusConflict, status)
	s.Equal("INVALID_TRANSITION", code)

	status, _ = s.errCode(http.MethodDelete, orderPath, s.admin, nil)
	s.Equal(fiber.StatusForbidden, status)

	var paid dto.PayOrderResponse
	s.must(fiber.StatusOK, http.MethodPost, orderPath+"/pay", s.admin, dto.PayOrderRequest{Method: "cash"}, &paid)
	s.Equal("PAID", paid.Order.Status)
	s.Equal("CASH", paid.Payment.Method)

	s.must(fiber.StatusOK, http.MethodGet, fmt.Sprintf("/api/restaurant/tables/%d", table.ID), s.admin, nil, &table)
	s.Equal("AVAILABLE", table.Status)

	var payments []dto.PaymentResponse
	s.must(fiber.StatusOK, http.MethodGet, orderPath+"/payments", s.admin, nil, &payments)
	s.Len(payments, 1)

	resp, raw := s.call(http.MethodGet, orderPath+"/receipt", s.admin, nil)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode, string(raw))
	s.Equal("application/pdf", resp.Header.Get(fiber.HeaderContentType))
	s.True(bytes.HasPrefix(raw, []byte("%PDF")))

	var summary dto.DashboardSummaryDTO
	s.must(fiber.StatusOK, http.MethodGet, "/api/dashboard", s.admin, nil, &summary)
	s.Equal(int64(1), summary.Orders.PaidOrders)
	s.Equal("8", summary.Orders.Revenue.String())

	s.must(fiber.StatusNoContent, http.MethodDelete, orderPath, s.admin, nil, nil)
	status, _ = s.errCode(http.MethodGet, orderPath, s.admin, nil)
	s.Equal(fiber.StatusNotFound, status)
}

func (s *APISuite) TestReporteRentabilidad() {
	var product dto.ProductResponse
	s.must(fiber.StatusCreated, http.MethodPost, "/api/products", s.admin, map[string]any{
		"name": "Café", "price": "3.00", "cost": "1.00", "stock": 10, "unit": "unit",
	}, &product)
	var order dto.OrderResponse
	s.must(fiber.StatusCreated, http.MethodPost, "/api/restaurant/orders", s.admin, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: product.ID, Quantity: 4}},
	}, &order)
	s.must(fiber.StatusOK, http.MethodPost, fmt.Sprintf("/api/restaurant/orders/%d/pay", order.ID), s.admin,
		dto.PayOrderRequest{Method: "card"}, nil)

	var report dto.ProfitabilityReportDTO
	s.must(fiber.StatusOK, http.MethodGet, "/api/analytics/profitability?top_n=5", s.admin, nil, &report)
	s.Equal("12", report.TotalRevenue.String())
	s.Equal("8", report.GrossProfit.String())
	s.Require().Len(report.Products, 1)
	s.True(report.Products[0].IsTopPareto)

	status, code := s.errCode(http.MethodGet, "/api/analytics/profitability?start_date=ayer", s.admin, nil)
	s.Equal(fiber.StatusBadRequest, status)
	s.Equal("VALIDATION", code)

	waiter := s.invite(s.admin, "mesero@sol.test", "waiter")
	status, _ = s.errCode(http.MethodGet, "/api/analytics/profitability", waiter, nil)
	s.Equal(fiber.StatusForbidden, status)
}

func (s *APISuite) TestLookups() {
	var all map[string][]string
	s.must(fiber.StatusOK, http.MethodGet, "/api/lookups", s.admin, nil, &all)
	s.Contains(all["order_status"], "PAID")

	var one struct {
		Field  string   `json:"field"`
		Values []string `json:"values"`
	}
	s.must(fiber.StatusOK, http.MethodGet, "/api/lookups/payment_method", s.admin, nil, &one)
	s.Contains(one.Values, "ROOM_CHARGE")

	status, _ := s.errCode(http.MethodGet, "/api/lookups/no_existe", s.admin, nil)
	s.Equal(fiber.StatusNotFound, status)
}

func TestHealth_Degradado(t *testing.T) {
	a := fiber.New()
	a.Get("/health", apphttp.NewHealthHandler("svc", map[string]apphttp.HealthCheck{
		"database": func(context.Context) error { return errors.New("sin conexión") },
	}).Get)

	resp, err := a.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	var out struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "degraded", out.Status)
	assert.Equal(t, "sin conexión", out.Checks["database"])
}
