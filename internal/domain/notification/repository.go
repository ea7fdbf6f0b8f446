// internal/domain/notification/repository.go
package notification

import "context"

// Repository is an append-only journal of delivery attempts. It is an audit trail
// and is never consulted to decide what to send.
type Repository interface {
	Record(ctx context.Context, d *Delivery) error
	ListRecent(ctx context.Context, limit int) ([]*Delivery, error)
}
