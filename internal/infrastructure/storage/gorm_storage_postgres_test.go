package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lupon/admin-client/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockPostgresStorage creates a GormStorage on the postgres dialect with a mocked SQL connection
func newMockPostgresStorage(t *testing.T) (*GormStorage, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormStorage(gormDB), mock, mockDB
}

func TestGormStorage_Postgres_Get(t *testing.T) {
	t.Run("returns stored value", func(t *testing.T) {
		s, mock, mockDB := newMockPostgresStorage(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"entry_key", "entry_value", "updated_at"}).
			AddRow("auth:refresh_token", "refresh-1", time.Now())

		mock.ExpectQuery(`SELECT \* FROM "storage_entries" WHERE entry_key = \$1`).
			WithArgs("auth:refresh_token", 1).
			WillReturnRows(rows)

		v, ok, err := s.Get(context.Background(), "auth:refresh_token")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "refresh-1", v)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports missing key without error", func(t *testing.T) {
		s, mock, mockDB := newMockPostgresStorage(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "storage_entries" WHERE entry_key = \$1`).
			WithArgs("missing", 1).
			WillReturnRows(sqlmock.NewRows([]string{"entry_key", "entry_value", "updated_at"}))

		_, ok, err := s.Get(context.Background(), "missing")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps driver errors", func(t *testing.T) {
		s, mock, mockDB := newMockPostgresStorage(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "storage_entries"`).
			WillReturnError(sql.ErrConnDone)

		_, _, err := s.Get(context.Background(), "auth:access_token")
		require.Error(t, err)
		assert.ErrorIs(t, err, sql.ErrConnDone)
	})
}

func TestGormStorage_Postgres_Delete(t *testing.T) {
	s, mock, mockDB := newMockPostgresStorage(t)
	defer mockDB.Close()

	mock.ExpectExec(`DELETE FROM "storage_entries" WHERE entry_key = \$1`).
		WithArgs("cache:productos:").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Delete(context.Background(), "cache:productos:"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

type failingPlugin struct{}

func (failingPlugin) Name() string { return "failing" }

func (failingPlugin) Initialize(*gorm.DB) error { return errors.New("plugin init failed") }

func TestOpenGorm_PluginFailureClosesDB(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	s, err := openGorm(dialector, failingPlugin{})
	require.Error(t, err)
	assert.Nil(t, s)
	assert.Contains(t, err.Error(), "failing")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormPlugins(t *testing.T) {
	assert.Empty(t, gormPlugins(config.StorageConfig{}))
	assert.Len(t, gormPlugins(config.StorageConfig{TraceEnabled: true}), 1)
}
