package postgres

import (
	"context"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-ledger-api/pkg/config"
)

// NewPool crea un pool de conexiones PostgreSQL usando la configuración de la app.
// Cada consulta toma una conexión del pool y la devuelve al terminar (éxito o error).
// Si log no es nil, las consultas lentas (>= cfg.SlowQuery) se registran en warn.
func NewPool(ctx context.Context, cfg config.DBConfig, log *zerolog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	if log != nil {
		poolConfig.ConnConfig.Tracer = &queryTracer{log: *log, slow: cfg.SlowQuery}
	}

	// Registrar codec para NUMERIC -> shopspring/decimal (costo y precio de venta).
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

type queryStartKey struct{}

type queryStart struct {
	sql string
	at  time.Time
}

// queryTracer implementa pgx.QueryTracer: errores en error, consultas lentas en warn, resto en trace.
type queryTracer struct {
	log  zerolog.Logger
	slow time.Duration
}

func (t *queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{sql: data.SQL, at: time.Now()})
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	elapsed := time.Since(start.at)
	switch {
	case data.Err != nil:
		t.log.Error().Err(data.Err).Str("sql", compactSQL(start.sql)).Dur("elapsed", elapsed).Msg("consulta fallida")
	case t.slow > 0 && elapsed >= t.slow:
		t.log.Warn().Str("sql", compactSQL(start.sql)).Dur("elapsed", elapsed).Msg("consulta lenta")
	default:
		t.log.Trace().Str("sql", compactSQL(start.sql)).Dur("elapsed", elapsed).Str("tag", data.CommandTag.String()).Msg("consulta")
	}
}
