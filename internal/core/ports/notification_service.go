package ports

import (
	"context"

	"github.com/staffhub/staffhub-api/internal/core/domain"
)

// NotifyInput describes one workflow event to record and push.
type NotifyInput struct {
	RecipientID    string
	RecipientEmail string
	Message        string
	Type           domain.NotificationType
	// Optional traceability tag.
	RelatedEntityID   string
	RelatedEntityType string
}

// Notifier persists a durable notification record and then attempts a
// best-effort real-time push. Persistence failure fails the call; push
// failure never does.
type Notifier interface {
	Notify(ctx context.Context, in NotifyInput) error
	List(ctx context.Context, recipientID string) ([]*domain.Notification, error)
}

// PushJob is one queued delivery attempt addressed by recipient email.
type PushJob struct {
	Email   string
	Payload NotificationView
}

// PushQueue accepts delivery jobs for asynchronous fan-out.
type PushQueue interface {
	Enqueue(job PushJob)
}

// PushSender delivers a payload to every live session of the addressed
// identity. Delivery is at-most-once per connection, no acknowledgment.
type PushSender interface {
	Push(ctx context.Context, email string, payload NotificationView) error
}
