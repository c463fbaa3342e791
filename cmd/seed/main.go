// seed provisiona un tenant de demostración (empresa + ADMIN, tipos de habitación, habitaciones,
// categorías, productos y mesas) usando los mismos casos de uso que la API.
//
// Uso: go run ./cmd/seed [email] [password]
// Por defecto: admin@demo-hotel.test / demo-password. Lee la misma configuración que cmd/api
// (STORAGE_DRIVER, DB_*, DB_AUTO_MIGRATE). Si el email ya existe no hace nada.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Hoteleria-api/internal/app"
	"github.com/jhoicas/Hoteleria-api/internal/application/auth"
	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/infrastructure/memory"
	"github.com/jhoicas/Hoteleria-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Hoteleria-api/pkg/config"
	"github.com/jhoicas/Hoteleria-api/pkg/logger"
)

func main() {
	email, password := "admin@demo-hotel.test", "demo-password"
	if len(os.Args) > 1 {
		email = os.Args[1]
	}
	if len(os.Args) > 2 {
		password = os.Args[2]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name + "-seed"})
	ctx := context.Background()

	var repos app.Repositories
	if cfg.Storage.Driver == config.StorageMemory {
		repos = app.MemoryRepositories(memory.NewStore())
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB, log.Zerolog())
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if _, err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		repos = app.PostgresRepositories(pool)
	}

	uc := app.NewUseCases(repos, app.Options{
		JWT:           auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer},
		InvitationTTL: cfg.Auth.InvitationTTL,
	})

	session, err := uc.Auth.SignupCompany(ctx, dto.SignupRequest{
		CompanyName: "Hotel Demo",
		Currency:    "USD",
		Email:       email,
		Password:    password,
		FirstName:   "Admin",
		LastName:    "Demo",
	})
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		log.Info().Str("email", email).Msg("el tenant demo ya existe, nada que hacer")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("alta de empresa")
	}

	if err := seed(ctx, uc, session.Company.ID, session.User.ID); err != nil {
		log.Fatal().Err(err).Msg("carga de datos demo")
	}
	log.Info().
		Int64("company_id", session.Company.ID).
		Str("email", email).
		Msg("tenant demo creado")
}

func seed(ctx context.Context, uc *app.UseCases, companyID, actorID int64) error {
	roomTypes := []dto.CreateRoomTypeRequest{
		{Name: "Estándar", BasePrice: decimal.NewFromInt(60), MaxOccupancy: 2, Amenities: []string{"wifi", "tv"}},
		{Name: "Doble", BasePrice: decimal.NewFromInt(90), MaxOccupancy: 4, Amenities: []string{"wifi", "tv", "minibar"}},
		{Name: "Suite", BasePrice: decimal.NewFromInt(180), MaxOccupancy: 4, Amenities: []string{"wifi", "tv", "minibar", "jacuzzi"}},
	}
	for i, in := range roomTypes {
		rt, err := uc.RoomTypes.Create(ctx, companyID, actorID, in)
		if err != nil {
			return fmt.Errorf("tipo %s: %w", in.Name, err)
		}
		for n := 1; n <= 2; n++ {
			number := fmt.Sprintf("%d%02d", i+1, n)
			if _, err := uc.Rooms.Create(ctx, companyID, actorID, dto.CreateRoomRequest{
				Number: number, Floor: i + 1, RoomTypeID: rt.ID,
			}); err != nil {
				return fmt.Errorf("habitación %s: %w", number, err)
			}
		}
	}

	catalog := map[string][]dto.CreateProductRequest{
		"Bebidas": {
			{Name: "Agua mineral", SKU: "BEB-001", Price: decimal.RequireFromString("2.50"), Cost: decimal.NewFromInt(1), Stock: 120, MinStock: 24, Unit: "bottle"},
			{Name: "Cerveza artesanal", SKU: "BEB-002", Price: decimal.RequireFromString("6.00"), Cost: decimal.RequireFromString("2.80"), Stock: 60, MinStock: 12, Unit: "bottle"},
		},
		"Platos fuertes": {
			{Name: "Lomo saltado", SKU: "PLA-001", Price: decimal.RequireFromString("18.50"), Cost: decimal.NewFromInt(7), Stock: 30, MinStock: 5, Unit: "portion"},
			{Name: "Pasta al pesto", SKU: "PLA-002", Price: decimal.RequireFromString("14.00"), Cost: decimal.NewFromInt(4), Stock: 30, MinStock: 5, Unit: "portion"},
		},
	}
	for name, products := range catalog {
		cat, err := uc.Categories.Create(ctx, companyID, actorID, dto.CreateCategoryRequest{Name: name})
		if err != nil {
			return fmt.Errorf("categoría %s: %w", name, err)
		}
		for _, p := range products {
			p.CategoryID = &cat.ID
			if _, err := uc.Products.Create(ctx, companyID, actorID, p); err != nil {
				return fmt.Errorf("producto %s: %w", p.Name, err)
			}
		}
	}

	for n := 1; n <= 5; n++ {
		in := dto.CreateTableRequest{Number: fmt.Sprintf("M%d", n), Capacity: 4, Location: "Salón"}
		if n == 5 {
			in.Capacity, in.Location = 8, "Terraza"
		}
		if _, err := uc.Tables.Create(ctx, companyID, actorID, in); err != nil {
			return fmt.Errorf("mesa %s: %w", in.Number, err)
		}
	}
	return nil
}
