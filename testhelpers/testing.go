package testhelpers

import (
	"context"
	"os"
	"testing"
	"time"

	"vgauth/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

// SetupTestDB connects to TEST_DATABASE_URL, creates the schema and empties
// every table. The test is skipped when no database is configured.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, connString, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := database.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	truncate := func() error {
		for _, table := range database.Tables {
			if err := database.DropAll(ctx, pool, table); err != nil {
				return err
			}
		}
		return nil
	}
	if err := truncate(); err != nil {
		pool.Close()
		t.Fatalf("Failed to reset test database: %v", err)
	}

	db := &TestDB{
		Pool: pool,
		Cleanup: func() error {
			defer pool.Close()
			return truncate()
		},
	}
	t.Cleanup(func() {
		if err := db.Cleanup(); err != nil {
			t.Logf("cleanup failed: %v", err)
		}
	})
	return db
}

// SetupTestTenant creates a test tenant for testing
func SetupTestTenant(t *testing.T, db *TestDB, name string) uuid.UUID {
	t.Helper()

	tenantID := uuid.New()
	query := `
		INSERT INTO tenants (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
	`
	_, err := db.Pool.Exec(context.Background(), query, tenantID, name, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test tenant: %v", err)
	}

	return tenantID
}
