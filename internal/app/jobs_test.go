package app

import (
	"context"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jutehus/jutehus/config"
	"github.com/jutehus/jutehus/internal/storage"
)

func newSweepApp(t *testing.T) (*Application, sqlmock.Sqlmock, *storage.MemoryStore) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	store := storage.NewMemoryStore("test")
	a := NewApplication(config.DefaultAppConfig)
	a.OverrideDB(gdb)
	a.OverrideObjectStore(store)
	return a, mock, store
}

// The sweep finishes half-applied deletions: flagged rows lose their storage
// object and then their row.
func TestRunMediaSweep(t *testing.T) {
	a, mock, store := newSweepApp(t)

	_, err := store.Upload(context.Background(), "old.png", strings.NewReader("bytes"))
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "path", "pending_delete"}).
		AddRow(7, "old.png", true)
	mock.ExpectQuery(`SELECT \* FROM "media_assets" WHERE pending_delete = \$1`).
		WithArgs(true).
		WillReturnRows(rows)
	mock.ExpectExec(`DELETE FROM "media_assets"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, a.RunMediaSweepNow())
	assert.Equal(t, 0, store.Len())
	require.NoError(t, mock.ExpectationsWereMet())
}

// An object already missing from the bucket does not stop the row cleanup.
func TestRunMediaSweepMissingObject(t *testing.T) {
	a, mock, store := newSweepApp(t)

	rows := sqlmock.NewRows([]string{"id", "path", "pending_delete"}).
		AddRow(8, "gone.png", true)
	mock.ExpectQuery(`SELECT \* FROM "media_assets" WHERE pending_delete = \$1`).
		WithArgs(true).
		WillReturnRows(rows)
	mock.ExpectExec(`DELETE FROM "media_assets"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, a.RunMediaSweepNow())
	assert.Equal(t, 0, store.Len())
	require.NoError(t, mock.ExpectationsWereMet())
}
