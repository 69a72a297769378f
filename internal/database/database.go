package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"blogbootstrap/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type MethodsDB interface {
	CloseDB() error
	HealthCheck() error
	GetDB() *DB
}

type DB struct {
	*sqlx.DB
}

func ConnectDB(ctx context.Context, cfg *config.Config) (*DB, error) {
	log.Printf("Connecting to DB: %s (driver %s)", cfg.DB.Redacted(), cfg.DB.Driver)

	ctx, cancel := connectContext(ctx, cfg.DB)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, cfg.DB.Driver, cfg.DB.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	dbStruct := DB{db}

	err = MethodsDB.HealthCheck(&dbStruct)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	log.Println("Connected to PostgreSQL")
	return &dbStruct, nil
}

// CheckConnection opens a connection, pings it and closes it again.
// Every failure is reported as false.
func CheckConnection(ctx context.Context, cfg *config.Config) bool {
	ctx, cancel := connectContext(ctx, cfg.DB)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, cfg.DB.Driver, cfg.DB.DSN())
	if err != nil {
		log.Printf("Connectivity check failed: %v", err)
		return false
	}

	if err := db.Close(); err != nil {
		log.Printf("Closing connectivity check connection: %v", err)
	}

	return true
}

func connectContext(ctx context.Context, cfg config.DB) (context.Context, context.CancelFunc) {
	if cfg.ConnectTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	// leave the driver's own connect_timeout a chance to fire first
	return context.WithTimeout(ctx, cfg.ConnectTimeout+time.Second)
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	return db.Ping()
}

func (db *DB) GetDB() *DB {
	return db
}
