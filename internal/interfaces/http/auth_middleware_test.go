package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Hoteleria-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Hoteleria-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "hoteleria-test"
	testExpMin    = 60
)

// guardedApp expone GET /protected detrás de AuthMiddleware + RequireRole(roles...).
func guardedApp(roles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(roles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"user_id":    apphttp.GetUserID(c),
				"company_id": apphttp.GetCompanyID(c),
				"role":       apphttp.GetRole(c),
			})
		},
	)
	return app
}

func bearer(t *testing.T, secret, role string, expMin int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(secret, pkgjwt.Session{UserID: 11, Email: "u@test.io", CompanyID: 22, Role: role}, testIssuer, expMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestAuthYRoles(t *testing.T) {
	orderRoles := []string{entity.RoleAdmin, entity.RoleManager, entity.RoleWaiter, entity.RoleStaff}

	cases := []struct {
		name     string
		roles    []string
		header   func(t *testing.T) string
		wantCode int
		wantBody string
	}{
		{"admin en ruta admin", []string{entity.RoleAdmin},
			func(t *testing.T) string { return bearer(t, testJWTSecret, entity.RoleAdmin, testExpMin) }, http.StatusOK, ""},
		{"mesero en ruta de órdenes", orderRoles,
			func(t *testing.T) string { return bearer(t, testJWTSecret, entity.RoleWaiter, testExpMin) }, http.StatusOK, ""},
		{"rol en minúsculas", orderRoles,
			func(t *testing.T) string { return bearer(t, testJWTSecret, "staff", testExpMin) }, http.StatusOK, ""},
		{"recepcionista en ruta de órdenes", orderRoles,
			func(t *testing.T) string { return bearer(t, testJWTSecret, entity.RoleReceptionist, testExpMin) }, http.StatusForbidden, "FORBIDDEN"},
		{"token sin rol", []string{entity.RoleAdmin},
			func(t *testing.T) string { return bearer(t, testJWTSecret, "", testExpMin) }, http.StatusUnauthorized, "MISSING_ROLE"},
		{"sin header", []string{entity.RoleAdmin},
			func(*testing.T) string { return "" }, http.StatusUnauthorized, "MISSING_TOKEN"},
		{"esquema Basic", []string{entity.RoleAdmin},
			func(*testing.T) string { return "Basic abc" }, http.StatusUnauthorized, ""},
		{"bearer vacío", []string{entity.RoleAdmin},
			func(*testing.T) string { return "Bearer " }, http.StatusUnauthorized, ""},
		{"token malformado", []string{entity.RoleAdmin},
			func(*testing.T) string { return "Bearer token.invalido.aqui" }, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"firmado con otro secret", []string{entity.RoleAdmin},
			func(t *testing.T) string { return bearer(t, "otro-secret", entity.RoleAdmin, testExpMin) }, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token vencido", []string{entity.RoleAdmin},
			func(t *testing.T) string { return bearer(t, testJWTSecret, entity.RoleAdmin, -5) }, http.StatusUnauthorized, "INVALID_TOKEN"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if h := tc.header(t); h != "" {
				req.Header.Set(fiber.HeaderAuthorization, h)
			}
			resp, err := guardedApp(tc.roles...).Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.wantCode, resp.StatusCode)
			if tc.wantBody != "" {
				body, _ := io.ReadAll(resp.Body)
				assert.Contains(t, string(body), tc.wantBody)
			}
		})
	}
}

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, bearer(t, testJWTSecret, entity.RoleManager, testExpMin))
	resp, err := guardedApp(entity.RoleManager).Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		UserID    int64  `json:"user_id"`
		CompanyID int64  `json:"company_id"`
		Role      string `json:"role"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(11), body.UserID)
	assert.Equal(t, int64(22), body.CompanyID)
	assert.Equal(t, entity.RoleManager, body.Role)
}
