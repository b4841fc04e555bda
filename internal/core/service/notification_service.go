package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/staffhub/staffhub-api/internal/api/metrics"
	"github.com/staffhub/staffhub-api/internal/core/domain"
	"github.com/staffhub/staffhub-api/internal/core/ports"
)

// NotificationService persists notification records and hands best-effort
// push deliveries to the queue. The persisted row is the source of truth:
// the operation fails only if persistence fails, never because of the push.
type NotificationService struct {
	repo  ports.NotificationRepository
	queue ports.PushQueue
	log   zerolog.Logger
}

func NewNotificationService(repo ports.NotificationRepository, queue ports.PushQueue, log zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, queue: queue, log: log}
}

func (s *NotificationService) Notify(ctx context.Context, in ports.NotifyInput) error {
	notification := &domain.Notification{
		ID:                uuid.NewString(),
		RecipientID:       in.RecipientID,
		Message:           in.Message,
		Type:              in.Type,
		IsRead:            false,
		CreatedAt:         time.Now().UTC(),
		RelatedEntityID:   in.RelatedEntityID,
		RelatedEntityType: in.RelatedEntityType,
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	metrics.NotificationsCreatedTotal.WithLabelValues(string(in.Type)).Inc()

	// Push only after the record is durable. Enqueue never blocks the caller;
	// delivery failures are logged by the dispatcher and swallowed.
	s.queue.Enqueue(ports.PushJob{
		Email:   in.RecipientEmail,
		Payload: ports.NotificationView{Message: in.Message, IsRead: false},
	})

	s.log.Debug().
		Str("recipient_id", in.RecipientID).
		Str("type", string(in.Type)).
		Msg("notification recorded")
	return nil
}

func (s *NotificationService) List(ctx context.Context, recipientID string) ([]*domain.Notification, error) {
	return s.repo.ListByRecipient(ctx, recipientID)
}
