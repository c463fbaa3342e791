package postgres

import (
	"context"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Hoteleria-api/pkg/config"
)

// NewPool abre el pool y verifica la conexión. log recibe las consultas si DB_LOG_QUERIES está activo.
func NewPool(ctx context.Context, cfg config.DBConfig, log zerolog.Logger) (*pgxpool.Pool, error) {
	pc, err := poolConfig(cfg, log)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// poolConfig traduce DBConfig a la configuración de pgxpool. DATABASE_URL tiene prioridad.
func poolConfig(cfg config.DBConfig, log zerolog.Logger) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 && int32(cfg.MinConns) <= pc.MaxConns {
		pc.MinConns = int32(cfg.MinConns)
	}
	pc.MaxConnLifetime = time.Hour
	pc.MaxConnIdleTime = 30 * time.Minute
	pc.HealthCheckPeriod = time.Minute

	// NUMERIC <-> decimal.Decimal en todas las conexiones
	pc.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	if cfg.LogQueries {
		pc.ConnConfig.Tracer = &tracelog.TraceLog{Logger: queryLogger(log), LogLevel: tracelog.LogLevelDebug}
	}
	return pc, nil
}

// queryLogger adapta tracelog a zerolog con component=postgres.
func queryLogger(log zerolog.Logger) tracelog.Logger {
	l := log.With().Str("component", "postgres").Logger()
	return tracelog.LoggerFunc(func(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
		var ev *zerolog.Event
		switch level {
		case tracelog.LogLevelError:
			ev = l.Error()
		case tracelog.LogLevelWarn:
			ev = l.Warn()
		case tracelog.LogLevelInfo:
			ev = l.Info()
		case tracelog.LogLevelTrace:
			ev = l.Trace()
		default:
			ev = l.Debug()
		}
		ev.Fields(data).Msg(msg)
	})
}
