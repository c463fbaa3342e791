package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Hoteleria-api/internal/application/analytics"
	"github.com/jhoicas/Hoteleria-api/internal/application/auth"
	"github.com/jhoicas/Hoteleria-api/internal/application/restaurant"
	"github.com/jhoicas/Hoteleria-api/internal/application/usecase"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/infrastructure/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CompanyUC    *usecase.CompanyUseCase
	UserUC       *usecase.UserUseCase
	InvitationUC *usecase.InvitationUseCase
	RoomTypeUC   *usecase.RoomTypeUseCase
	RoomUC       *usecase.RoomUseCase
	CategoryUC   *usecase.CategoryUseCase
	ProductUC    *usecase.ProductUseCase
	ClientUC     *usecase.ClientUseCase
	TableUC      *restaurant.TableUseCase
	OrderUC      *restaurant.OrderUseCase
	ReceiptUC    *restaurant.ReceiptUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	AnalyticsUC  *appanalytics.ProfitabilityUseCase
	Health       *HealthHandler
	Metrics      *metrics.Metrics // opcional
	JWTSecret    string
}

var (
	adminOnly   = RequireRole(entity.RoleAdmin)
	catalogRole = RequireRole(entity.RoleAdmin, entity.RoleManager)
	roomStatus  = RequireRole(entity.RoleAdmin, entity.RoleManager, entity.RoleReceptionist)
	orderRole   = RequireRole(entity.RoleAdmin, entity.RoleManager, entity.RoleWaiter, entity.RoleStaff)
)

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	if deps.Health != nil {
		api.Get("/health", deps.Health.Get)
	}

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Metrics)
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/accept-invitation", authHandler.AcceptInvitation)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))

	protected.Get("/auth/profile", authHandler.GetProfile)
	protected.Put("/auth/profile", authHandler.UpdateProfile)
	protected.Put("/auth/password", authHandler.ChangePassword)

	companyHandler := NewCompanyHandler(deps.CompanyUC)
	protected.Get("/company", companyHandler.Get)
	protected.Put("/company", adminOnly, companyHandler.Update)

	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	invitations := protected.Group("/invitations", catalogRole)
	invitationHandler := NewInvitationHandler(deps.InvitationUC)
	invitations.Post("/", invitationHandler.Create)
	invitations.Get("/", invitationHandler.List)
	invitations.Post("/:id/cancel", invitationHandler.Cancel)
	invitations.Post("/:id/resend", invitationHandler.Resend)

	// Hotel
	roomTypes := protected.Group("/room-types")
	roomTypeHandler := NewRoomTypeHandler(deps.RoomTypeUC)
	roomTypes.Get("/stats", roomTypeHandler.Stats)
	roomTypes.Get("/", roomTypeHandler.List)
	roomTypes.Get("/:id", roomTypeHandler.GetByID)
	roomTypes.Post("/", catalogRole, roomTypeHandler.Create)
	roomTypes.Put("/:id", catalogRole, roomTypeHandler.Update)
	roomTypes.Delete("/:id", catalogRole, roomTypeHandler.Delete)

	rooms := protected.Group("/rooms")
	roomHandler := NewRoomHandler(deps.RoomUC)
	rooms.Get("/stats", roomHandler.Stats)
	rooms.Get("/", roomHandler.List)
	rooms.Get("/:id", roomHandler.GetByID)
	rooms.Post("/", catalogRole, roomHandler.Create)
	rooms.Put("/:id", catalogRole, roomHandler.Update)
	rooms.Patch("/:id/status", roomStatus, roomHandler.UpdateStatus)
	rooms.Delete("/:id", catalogRole, roomHandler.Delete)

	// Inventario
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/stats", categoryHandler.Stats)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", catalogRole, categoryHandler.Create)
	categories.Put("/:id", catalogRole, categoryHandler.Update)
	categories.Delete("/:id", catalogRole, categoryHandler.Delete)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/stats", productHandler.Stats)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", catalogRole, productHandler.Create)
	products.Put("/:id", catalogRole, productHandler.Update)
	products.Post("/:id/stock", catalogRole, productHandler.AdjustStock)
	products.Delete("/:id", catalogRole, productHandler.Delete)

	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Get("/stats", clientHandler.Stats)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Post("/", catalogRole, clientHandler.Create)
	clients.Put("/:id", catalogRole, clientHandler.Update)
	clients.Delete("/:id", catalogRole, clientHandler.Delete)

	// Restaurante
	tables := protected.Group("/restaurant/tables")
	tableHandler := NewTableHandler(deps.TableUC)
	tables.Get("/", tableHandler.List)
	tables.Get("/:id", tableHandler.GetByID)
	tables.Post("/", catalogRole, tableHandler.Create)
	tables.Put("/:id", catalogRole, tableHandler.Update)
	tables.Patch("/:id/status", orderRole, tableHandler.UpdateStatus)
	tables.Delete("/:id", catalogRole, tableHandler.Delete)

	orders := protected.Group("/restaurant/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ReceiptUC, deps.Metrics)
	orders.Get("/stats", orderHandler.Stats)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/payments", orderHandler.Payments)
	orders.Get("/:id/receipt", orderHandler.Receipt)
	orders.Post("/", orderRole, orderHandler.Create)
	orders.Put("/:id", orderRole, orderHandler.Update)
	orders.Patch("/:id/status", orderRole, orderHandler.UpdateStatus)
	orders.Post("/:id/pay", orderRole, orderHandler.Pay)
	orders.Delete("/:id", catalogRole, orderHandler.Delete)

	lookupHandler := NewLookupHandler()
	protected.Get("/lookups", lookupHandler.All)
	protected.Get("/lookups/:field", lookupHandler.Field)

	protected.Get("/dashboard", NewDashboardHandler(deps.DashboardUC).GetSummary)
	protected.Get("/analytics/profitability", catalogRole, NewAnalyticsHandler(deps.AnalyticsUC).Profitability)
}
