// internal/domain/notification/delivery.go
package notification

import "time"

// Kind tells what a delivered message was about.
type Kind string

const (
	KindStatusChange Kind = "STATUS_CHANGE"
	KindFailure      Kind = "FAILURE"
)

// Delivery is one attempt to send a message to the chat.
// Corresponds to the 'homework_notifications' table.
type Delivery struct {
	ID        int64
	ChatID    string
	Kind      Kind
	Message   string
	Delivered bool
	Error     string // empty when Delivered
	SentAt    time.Time
}
