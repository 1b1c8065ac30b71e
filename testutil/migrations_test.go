package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reenamhotel/site/migrations"
	"github.com/reenamhotel/site/testutil"
)

// TestBookingsMigration applies the schema from scratch, checks the columns
// the Postgres store reads and writes, then rolls everything back. Another
// package's TestMain may already have migrated the shared database, so the
// test starts by resetting to version 0.
func TestBookingsMigration(t *testing.T) {
	db := testutil.NewSQLDB(t)
	ctx := context.Background()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	require.NoError(t, err)
	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "reset")

	applied, err := migrations.Up(ctx, db)
	require.NoError(t, err)
	assert.Positive(t, applied)

	// Up is idempotent.
	again, err := migrations.Up(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, again)

	assert.ElementsMatch(t, []string{
		"id", "check_in", "check_out", "guests", "room_type", "name", "email", "phone",
		"special_requests", "nights", "price_per_night", "total", "created_at",
	}, bookingColumns(t, db))

	t.Run("optional fields default to empty", func(t *testing.T) {
		tx, err := db.BeginTx(ctx, nil)
		require.NoError(t, err)
		defer func() { _ = tx.Rollback() }()

		var phone, requests string
		err = tx.QueryRowContext(ctx, `
			INSERT INTO bookings (id, check_in, check_out, guests, room_type, name, email,
			                      nights, price_per_night, total)
			VALUES (gen_random_uuid(), '2024-06-01', '2024-06-03', 2, 'deluxe', 'A', 'a@example.com',
			        2, 3000, 6000)
			RETURNING phone, special_requests`).Scan(&phone, &requests)
		require.NoError(t, err)
		assert.Empty(t, phone)
		assert.Empty(t, requests)
	})

	t.Run("guests must be positive", func(t *testing.T) {
		_, err := db.ExecContext(ctx, `
			INSERT INTO bookings (id, check_in, check_out, guests, room_type, name, email,
			                      nights, price_per_night, total)
			VALUES (gen_random_uuid(), '2024-06-01', '2024-06-02', 0, 'deluxe', 'A', 'a@example.com',
			        1, 3000, 3000)`)
		assert.Error(t, err)
	})

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "down to 0")
	assert.Empty(t, bookingColumns(t, db), "bookings table should be dropped")
}

// bookingColumns lists the columns of public.bookings; empty when the table
// does not exist.
func bookingColumns(t *testing.T, db *sql.DB) []string {
	t.Helper()

	rows, err := db.QueryContext(context.Background(), `
		SELECT column_name FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = 'bookings'`)
	require.NoError(t, err)
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var c string
		require.NoError(t, rows.Scan(&c))
		cols = append(cols, c)
	}
	require.NoError(t, rows.Err())
	return cols
}
