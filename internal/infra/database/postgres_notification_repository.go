// internal/infra/database/postgres_notification_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"homework_status_bot/internal/domain/notification"
)

type PostgresNotificationRepository struct {
	db *sql.DB
}

func NewPostgresNotificationRepository(db *sql.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

// Record stores one delivery attempt and fills in its ID and SentAt.
func (r *PostgresNotificationRepository) Record(ctx context.Context, d *notification.Delivery) error {
	query := `INSERT INTO homework_notifications (chat_id, kind, message, delivered, error)
               VALUES ($1, $2, $3, $4, $5)
               RETURNING id, sent_at`
	err := r.db.QueryRowContext(ctx, query, d.ChatID, d.Kind, d.Message, d.Delivered, d.Error).Scan(&d.ID, &d.SentAt)
	if err != nil {
		return fmt.Errorf("error recording delivery: %w", err)
	}
	return nil
}

// ListRecent returns up to limit deliveries, newest first.
func (r *PostgresNotificationRepository) ListRecent(ctx context.Context, limit int) ([]*notification.Delivery, error) {
	query := `SELECT id, chat_id, kind, message, delivered, error, sent_at
               FROM homework_notifications
               ORDER BY sent_at DESC, id DESC
               LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []*notification.Delivery
	for rows.Next() {
		d := &notification.Delivery{}
		if err := rows.Scan(&d.ID, &d.ChatID, &d.Kind, &d.Message, &d.Delivered, &d.Error, &d.SentAt); err != nil {
			return nil, fmt.Errorf("error scanning delivery row: %w", err)
		}
		deliveries = append(deliveries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating delivery rows: %w", err)
	}
	return deliveries, nil
}
