// Package testutil holds the Postgres plumbing for the booking store
// integration tests. Every helper skips the calling test when
// TEST_DATABASE_URL is empty, so a plain `go test ./...` only exercises the
// JSON file store.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // "pgx" database/sql driver, used by goose
)

// OpenSQLDB opens and pings a database/sql handle on dsn. The caller closes it.
func OpenSQLDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("testutil.OpenSQLDB: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("testutil.OpenSQLDB: ping: %w", err)
	}
	return db, nil
}

// NewSQLDB is OpenSQLDB on TEST_DATABASE_URL, closed at test cleanup.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenSQLDB(context.Background(), dsn(t))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// NewTx returns a transaction on TEST_DATABASE_URL that is rolled back at
// test cleanup, so writes from one test never reach the next. Pass it to
// repo.NewBookingRepo.
func NewTx(t *testing.T) pgx.Tx {
	t.Helper()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dsn(t))
	if err != nil {
		t.Fatalf("testutil.NewTx: pool: %v", err)
	}
	t.Cleanup(pool.Close)

	tx, err := pool.Begin(ctx)
	if err != nil {
		t.Fatalf("testutil.NewTx: begin: %v", err)
	}
	t.Cleanup(func() { _ = tx.Rollback(ctx) })
	return tx
}

func dsn(t *testing.T) string {
	t.Helper()
	v := os.Getenv("TEST_DATABASE_URL")
	if v == "" {
		t.Skip("TEST_DATABASE_URL not set (or run with TEST_DOCKER=1)")
	}
	return v
}
