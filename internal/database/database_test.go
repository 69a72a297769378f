package database

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"blogbootstrap/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(driver string) *config.Config {
	return &config.Config{
		DB: config.DB{
			Driver:          driver,
			Host:            "127.0.0.1",
			Port:            54322,
			Name:            "postgres",
			User:            "postgres",
			Password:        "postgres",
			SSLMode:         "disable",
			ConnectTimeout:  time.Second,
			MaxOpenConns:    1,
			MaxIdleConns:    1,
			ConnMaxLifetime: time.Minute,
		},
	}
}

func freePort(t *testing.T) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	return port
}

func mockConfig(t *testing.T) (*config.Config, sqlmock.Sqlmock) {
	t.Helper()

	dsn := fmt.Sprintf("sqlmock_%s", t.Name())
	db, mock, err := sqlmock.NewWithDSN(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := testConfig("sqlmock")
	cfg.DB.URL = dsn

	return cfg, mock
}

func TestCheckConnection_Unreachable(t *testing.T) {
	for _, driver := range []string{"postgres", "pgx"} {
		t.Run(driver, func(t *testing.T) {
			cfg := testConfig(driver)
			cfg.DB.Port = freePort(t)

			assert.False(t, CheckConnection(context.Background(), cfg))
		})
	}
}

func TestCheckConnection_UnknownDriver(t *testing.T) {
	cfg := testConfig("nope")

	assert.False(t, CheckConnection(context.Background(), cfg))
}

func TestCheckConnection_Reachable(t *testing.T) {
	cfg, mock := mockConfig(t)
	mock.ExpectClose()

	assert.True(t, CheckConnection(context.Background(), cfg))
}

func TestConnectDB(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		cfg, mock := mockConfig(t)

		db, err := ConnectDB(context.Background(), cfg)
		require.NoError(t, err)
		require.NotNil(t, db)
		assert.Equal(t, db, db.GetDB())

		mock.ExpectClose()
		assert.NoError(t, db.CloseDB())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unreachable", func(t *testing.T) {
		cfg := testConfig("postgres")
		cfg.DB.Port = freePort(t)

		db, err := ConnectDB(context.Background(), cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
		assert.Contains(t, err.Error(), "failed to connect to database")
	})
}

func TestHealthCheck_Nil(t *testing.T) {
	var db *DB
	assert.Error(t, db.HealthCheck())
}

func TestIsDuplicateObject(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "pq duplicate object", err: &pq.Error{Code: "42710"}, want: true},
		{name: "pq duplicate table", err: &pq.Error{Code: "42P07"}, want: true},
		{name: "pq other", err: &pq.Error{Code: "42601"}, want: false},
		{name: "pgconn duplicate object", err: &pgconn.PgError{Code: "42710"}, want: true},
		{name: "pgconn undefined function", err: &pgconn.PgError{Code: "42883"}, want: false},
		{name: "wrapped pq", err: fmt.Errorf("create policy: %w", &pq.Error{Code: "42710"}), want: true},
		{name: "sentinel", err: fmt.Errorf("policy: %w", ErrDuplicateObject), want: true},
		{name: "plain error", err: errors.New("policy already exists"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuplicateObject(tt.err))
		})
	}
}

func TestStatementError(t *testing.T) {
	cause := &pq.Error{Code: "42601", Message: "syntax error"}
	err := &StatementError{Step: "create table", Err: cause}

	assert.Contains(t, err.Error(), "create table")
	assert.Equal(t, "42601", SQLState(err))

	var target *pq.Error
	assert.True(t, errors.As(err, &target))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("index: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "42710"}))
	assert.False(t, IsUniqueViolation(nil))
}
