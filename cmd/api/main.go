package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/swaggo/swag"

	_ "github.com/jhoicas/Hoteleria-api/docs"
	"github.com/jhoicas/Hoteleria-api/internal/app"
	"github.com/jhoicas/Hoteleria-api/internal/application/auth"
	"github.com/jhoicas/Hoteleria-api/internal/application/ports"
	"github.com/jhoicas/Hoteleria-api/internal/infrastructure/cache"
	"github.com/jhoicas/Hoteleria-api/internal/infrastructure/memory"
	"github.com/jhoicas/Hoteleria-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Hoteleria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Hoteleria-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Hoteleria-api/internal/interfaces/http"
	"github.com/jhoicas/Hoteleria-api/pkg/config"
	"github.com/jhoicas/Hoteleria-api/pkg/logger"
)

// @title                       Hoteleria API
// @version                     1.0
// @description                 API multi-tenant para hotel y restaurante: habitaciones, inventario, clientes y órdenes.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	checks := map[string]httpRouter.HealthCheck{}

	var repos app.Repositories
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		repos = app.MemoryRepositories(memory.NewStore())
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB, log.Zerolog())
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			applied, err := postgres.Migrate(ctx, pool)
			if err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
		}
		checks["database"] = pool.Ping
		repos = app.PostgresRepositories(pool)
	}

	// Caché de estadísticas: opcional, sin Redis se recalcula en cada consulta.
	var statsCache ports.StatsCache
	if cfg.Redis.Enabled() {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		statsCache = cache.NewRedisStatsCache(client, cfg.App.Name, cfg.Redis.TTL)
		checks["cache"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Prefix)
	}

	useCases := app.NewUseCases(repos, app.Options{
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		InvitationTTL: cfg.Auth.InvitationTTL,
		Cache:         statsCache,
		Receipts:      infrapdf.NewMarotoReceiptGenerator(),
	})

	fiberApp := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	fiberApp.Use(recover.New())
	fiberApp.Use(requestid.New())
	fiberApp.Use(httpRouter.RequestLogger(log))
	if m != nil {
		fiberApp.Use(m.Middleware())
		fiberApp.Get("/metrics", m.Handler())
	}

	// Swagger UI: http://localhost:<port>/docs
	if cfg.Docs.Enabled {
		fiberApp.Get("/openapi.json", func(c *fiber.Ctx) error {
			doc, err := swag.ReadDoc()
			if err != nil {
				return err
			}
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
			return c.SendString(doc)
		})
		fiberApp.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.FilePath,
			Path:     "docs",
			Title:    "Hoteleria API",
		}))
	}

	health := httpRouter.NewHealthHandler(cfg.App.Name, checks)
	httpRouter.Router(fiberApp, useCases.RouterDeps(cfg.JWT.Secret, m, health))

	go func() {
		if err := fiberApp.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
