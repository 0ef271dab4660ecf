package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingoguru/internal/infrastructure/config"
)

const connectTimeout = 5 * time.Second

// NewConnection creates a new pgx connection pool
func NewConnection(cfg *config.Config, log logrus.FieldLogger) (*pgxpool.Pool, func(), error) {
	if cfg.DatabaseDriver() != "postgres" {
		return nil, nil, fmt.Errorf("connection pool only supports postgres, got driver %q", cfg.DatabaseDriver())
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL())
	if err != nil {
		return nil, nil, fmt.Errorf("parse pool config: %w", err)
	}
	if cfg.Database.MaxConns > 0 {
		poolCfg.MaxConns = cfg.Database.MaxConns
	}

	if cfg.Database.LogSQL {
		sqlLog := log.WithField("component", "pgx")
		poolCfg.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger: tracelog.LoggerFunc(func(_ context.Context, lvl tracelog.LogLevel, msg string, data map[string]any) {
				sqlLog.WithFields(logrus.Fields(data)).WithField("pgx_level", lvl.String()).Debug(msg)
			}),
			LogLevel: tracelog.LogLevelTrace,
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping db: %w", err)
	}

	return pool, pool.Close, nil
}

// OpenSQL opens a database/sql handle for sqlite3 or postgres. Postgres goes
// through lib/pq.
func OpenSQL(cfg *config.Config) (*sql.DB, string, error) {
	driver := cfg.DatabaseDriver()
	var sqlDriver string
	switch driver {
	case "sqlite3":
		sqlDriver = "sqlite3"
	case "postgres":
		sqlDriver = "postgres"
	default:
		return nil, "", fmt.Errorf("driver %q has no sql backend", driver)
	}

	db, err := sql.Open(sqlDriver, cfg.DatabaseDSN())
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == "sqlite3" {
		// one writer keeps sqlite from reporting SQLITE_BUSY
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, driver, nil
}
