package ports

import (
	"context"

	"github.com/staffhub/staffhub-api/internal/core/domain"
)

// NotificationRepository defines persistence for notification records.
// Records are append-only: nothing deletes them and no operation flips IsRead
// today. A future "mark as read" feature would add a single
// MarkRead(ctx, id, recipientID) method here.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByRecipient(ctx context.Context, recipientID string) ([]*domain.Notification, error)
}
