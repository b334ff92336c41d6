package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Execer is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Schema creates the identity tables. Uniqueness lives in the indexes so
// concurrent writers cannot both pass a check-then-insert. users.tenant_id
// deliberately has no foreign key: deleting a tenant leaves its users behind.
const Schema = `
CREATE TABLE IF NOT EXISTS tenants (
	seq        BIGSERIAL,
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	CONSTRAINT tenants_name_key UNIQUE (name)
);

CREATE TABLE IF NOT EXISTS users (
	seq             BIGSERIAL,
	id              UUID PRIMARY KEY,
	tenant_id       UUID NOT NULL,
	username        TEXT NOT NULL,
	hashed_password TEXT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL,
	CONSTRAINT users_tenant_username_key UNIQUE (tenant_id, username)
);
`

// Tables lists the collections DropAll accepts.
var Tables = []string{"tenants", "users"}

func NewPool(ctx context.Context, dsn string, logger *zap.Logger) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("Database connected successfully",
		zap.String("host", config.ConnConfig.Host),
		zap.String("database", config.ConnConfig.Database))

	return pool, nil
}

// EnsureSchema creates the tables and indexes when they do not exist yet.
func EnsureSchema(ctx context.Context, db Execer) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// DropAll removes every record from the named table. It exists for test and
// reset tooling only.
func DropAll(ctx context.Context, db Execer, table string) error {
	if !knownTable(table) {
		return fmt.Errorf("drop all: unknown table %q", table)
	}
	if _, err := db.Exec(ctx, "TRUNCATE TABLE "+table+" RESTART IDENTITY"); err != nil {
		return fmt.Errorf("drop all %s: %w", table, err)
	}
	return nil
}

func knownTable(table string) bool {
	for _, t := range Tables {
		if t == table {
			return true
		}
	}
	return false
}
