package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/reenamhotel/site/migrations"
	"github.com/reenamhotel/site/testutil"
)

// TestMain applies all pending migrations to the test database once for the
// whole package. Without TEST_DATABASE_URL (or TEST_DOCKER=1) only the file
// store tests run.
func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	cleanup, err := testutil.EnsureDatabase()
	if err != nil {
		log.Printf("TestMain: %v", err)
		return 1
	}
	defer cleanup()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return m.Run()
	}

	db, err := testutil.OpenSQLDB(context.Background(), dsn)
	if err != nil {
		log.Printf("TestMain: %v", err)
		return 1
	}
	defer db.Close()

	if _, err := migrations.Up(context.Background(), db); err != nil {
		log.Printf("TestMain: %v", err)
		return 1
	}
	return m.Run()
}
