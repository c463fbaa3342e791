// Package app arma el grafo de dependencias (repositorios → casos de uso → router)
// para cmd/api, cmd/seed y los tests end-to-end.
package app

import (
	"time"

	appanalytics "github.com/jhoicas/Hoteleria-api/internal/application/analytics"
	"github.com/jhoicas/Hoteleria-api/internal/application/auth"
	"github.com/jhoicas/Hoteleria-api/internal/application/ports"
	"github.com/jhoicas/Hoteleria-api/internal/application/restaurant"
	"github.com/jhoicas/Hoteleria-api/internal/application/usecase"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
	"github.com/jhoicas/Hoteleria-api/internal/infrastructure/memory"
	"github.com/jhoicas/Hoteleria-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Hoteleria-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Hoteleria-api/internal/interfaces/http"
)

// Repositories implementación concreta de cada puerto de persistencia.
type Repositories struct {
	Companies   repository.CompanyRepository
	Users       repository.UserRepository
	Invitations repository.InvitationRepository
	RoomTypes   repository.RoomTypeRepository
	Rooms       repository.RoomRepository
	Categories  repository.CategoryRepository
	Products    repository.ProductRepository
	Clients     repository.ClientRepository
	Tables      repository.RestaurantTableRepository
	Orders      repository.RestaurantOrderRepository
	Payments    repository.PaymentRepository
	Analytics   repository.AnalyticsRepository
	Tx          ports.TxRunner
}

// PostgresRepositories repositorios sobre un pool de pgx.
func PostgresRepositories(db postgres.DB) Repositories {
	return Repositories{
		Companies:   postgres.NewCompanyRepository(db),
		Users:       postgres.NewUserRepository(db),
		Invitations: postgres.NewInvitationRepository(db),
		RoomTypes:   postgres.NewRoomTypeRepository(db),
		Rooms:       postgres.NewRoomRepository(db),
		Categories:  postgres.NewCategoryRepository(db),
		Products:    postgres.NewProductRepository(db),
		Clients:     postgres.NewClientRepository(db),
		Tables:      postgres.NewRestaurantTableRepository(db),
		Orders:      postgres.NewRestaurantOrderRepository(db),
		Payments:    postgres.NewPaymentRepository(db),
		Analytics:   postgres.NewAnalyticsRepository(db),
		Tx:          postgres.NewTxRunner(db),
	}
}

// MemoryRepositories repositorios sobre el almacén en proceso.
func MemoryRepositories(s *memory.Store) Repositories {
	return Repositories{
		Companies:   memory.NewCompanyRepository(s),
		Users:       memory.NewUserRepository(s),
		Invitations: memory.NewInvitationRepository(s),
		RoomTypes:   memory.NewRoomTypeRepository(s),
		Rooms:       memory.NewRoomRepository(s),
		Categories:  memory.NewCategoryRepository(s),
		Products:    memory.NewProductRepository(s),
		Clients:     memory.NewClientRepository(s),
		Tables:      memory.NewRestaurantTableRepository(s),
		Orders:      memory.NewRestaurantOrderRepository(s),
		Payments:    memory.NewPaymentRepository(s),
		Analytics:   memory.NewAnalyticsRepository(s),
		Tx:          memory.NewTxRunner(s),
	}
}

// Options parámetros de los casos de uso. Cache y Receipts pueden ser nil.
type Options struct {
	JWT           auth.JWTConfig
	InvitationTTL time.Duration
	Cache         ports.StatsCache
	Receipts      ports.ReceiptGenerator
}

// UseCases todos los casos de uso de la aplicación.
type UseCases struct {
	Auth        *auth.AuthUseCase
	Companies   *usecase.CompanyUseCase
	Users       *usecase.UserUseCase
	Invitations *usecase.InvitationUseCase
	RoomTypes   *usecase.RoomTypeUseCase
	Rooms       *usecase.RoomUseCase
	Categories  *usecase.CategoryUseCase
	Products    *usecase.ProductUseCase
	Clients     *usecase.ClientUseCase
	Tables      *restaurant.TableUseCase
	Orders      *restaurant.OrderUseCase
	Receipts    *restaurant.ReceiptUseCase
	Dashboard   *appanalytics.DashboardUseCase
	Analytics   *appanalytics.ProfitabilityUseCase
}

// NewUseCases construye los casos de uso sobre los repositorios dados.
func NewUseCases(r Repositories, o Options) *UseCases {
	uc := &UseCases{
		Auth:        auth.NewAuthUseCase(r.Tx, r.Users, r.Companies, r.Invitations, o.JWT),
		Companies:   usecase.NewCompanyUseCase(r.Companies),
		Users:       usecase.NewUserUseCase(r.Users),
		Invitations: usecase.NewInvitationUseCase(r.Invitations, r.Users, o.InvitationTTL),
		RoomTypes:   usecase.NewRoomTypeUseCase(r.RoomTypes, o.Cache),
		Rooms:       usecase.NewRoomUseCase(r.Rooms, r.RoomTypes, o.Cache),
		Categories:  usecase.NewCategoryUseCase(r.Categories, o.Cache),
		Products:    usecase.NewProductUseCase(r.Products, r.Categories, o.Cache),
		Clients:     usecase.NewClientUseCase(r.Clients, r.Orders, o.Cache),
		Tables:      restaurant.NewTableUseCase(r.Tables, r.Orders),
		Orders:      restaurant.NewOrderUseCase(r.Tx, r.Orders, r.Tables, r.Clients, r.Payments, o.Cache),
		Analytics:   appanalytics.NewProfitabilityUseCase(r.Analytics),
	}
	if o.Receipts != nil {
		uc.Receipts = restaurant.NewReceiptUseCase(r.Orders, r.Payments, r.Companies, o.Receipts)
	}
	uc.Dashboard = appanalytics.NewDashboardUseCase(uc.Rooms, uc.Products, uc.Orders, uc.Clients, o.Cache)
	return uc
}

// RouterDeps dependencias del router HTTP. m y health pueden ser nil.
func (uc *UseCases) RouterDeps(jwtSecret string, m *metrics.Metrics, health *httpRouter.HealthHandler) httpRouter.RouterDeps {
	return httpRouter.RouterDeps{
		AuthUC:       uc.Auth,
		CompanyUC:    uc.Companies,
		UserUC:       uc.Users,
		InvitationUC: uc.Invitations,
		RoomTypeUC:   uc.RoomTypes,
		RoomUC:       uc.Rooms,
		CategoryUC:   uc.Categories,
		ProductUC:    uc.Products,
		ClientUC:     uc.Clients,
		TableUC:      uc.Tables,
		OrderUC:      uc.Orders,
		ReceiptUC:    uc.Receipts,
		DashboardUC:  uc.Dashboard,
		AnalyticsUC:  uc.Analytics,
		Health:       health,
		Metrics:      m,
		JWTSecret:    jwtSecret,
	}
}
