package sqlrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

const pingTimeout = 10 * time.Second

type Options struct {
	Driver          string // pgx or mysql
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// SQLLogger, when set, receives every PostgreSQL statement at debug level.
	SQLLogger *zerolog.Logger
}

// Open creates the connection pool for o.Driver and checks it is reachable.
func Open(ctx context.Context, o Options) (*sqlx.DB, error) {
	var db *sqlx.DB
	switch o.Driver {
	case "pgx", "postgres":
		cfg, err := pgx.ParseConfig(o.DSN)
		if err != nil {
			return nil, fmt.Errorf("parse pgx config: %w", err)
		}
		if o.SQLLogger != nil {
			cfg.Tracer = &tracelog.TraceLog{
				Logger:   pgxzero.NewLogger(*o.SQLLogger),
				LogLevel: tracelog.LogLevelDebug,
			}
		}
		db = sqlx.NewDb(stdlib.OpenDB(*cfg), "pgx")
	case "mysql":
		dsn, err := mysqlDSN(o.DSN)
		if err != nil {
			return nil, err
		}
		if db, err = sqlx.Open("mysql", dsn); err != nil {
			return nil, fmt.Errorf("sql.Open mysql: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported db driver %q", o.Driver)
	}

	if o.MaxOpenConns > 0 {
		db.SetMaxOpenConns(o.MaxOpenConns)
	}
	if o.MaxIdleConns > 0 {
		db.SetMaxIdleConns(o.MaxIdleConns)
	}
	if o.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(o.ConnMaxLifetime)
	}

	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", o.Driver, err)
	}
	return db, nil
}

// mysqlDSN forces parseTime so DATE and DATETIME columns scan into time.Time.
func mysqlDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}
