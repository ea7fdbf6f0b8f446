package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

const (
	defaultMaxOpenConns    = 2
	defaultMaxIdleConns    = 1
	defaultConnMaxLifetime = 30 * time.Minute
	defaultConnMaxIdleTime = 15 * time.Minute
)

const schema = `CREATE TABLE IF NOT EXISTS homework_notifications (
	id         BIGSERIAL PRIMARY KEY,
	chat_id    TEXT NOT NULL,
	kind       TEXT NOT NULL,
	message    TEXT NOT NULL,
	delivered  BOOLEAN NOT NULL,
	error      TEXT NOT NULL DEFAULT '',
	sent_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// NewPostgresConnection creates and returns a new PostgreSQL database connection.
// It also pings the database to ensure connectivity.
func NewPostgresConnection(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)
	db.SetConnMaxIdleTime(defaultConnMaxIdleTime)

	if err = db.Ping(); err != nil {
		db.Close() // Close the connection if ping fails
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// EnsureSchema creates the delivery journal table if it does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create homework_notifications table: %w", err)
	}
	return nil
}
