package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/staffhub/staffhub-api/internal/core/domain"
)

const collectionNotifications = "notifications"

// NotificationRepository is append-only: notifications are never deleted and
// the read flag is never updated by any current operation.
type NotificationRepository struct {
	coll *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{coll: db.Collection(collectionNotifications)}
}

type mongoNotification struct {
	ID                string    `bson:"_id"`
	RecipientID       string    `bson:"recipient_id"`
	Message           string    `bson:"message"`
	Type              string    `bson:"type"`
	IsRead            bool      `bson:"is_read"`
	CreatedAt         time.Time `bson:"created_at"`
	RelatedEntityID   string    `bson:"related_entity_id,omitempty"`
	RelatedEntityType string    `bson:"related_entity_type,omitempty"`
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	doc := mongoNotification{
		ID:                n.ID,
		RecipientID:       n.RecipientID,
		Message:           n.Message,
		Type:              string(n.Type),
		IsRead:            n.IsRead,
		CreatedAt:         n.CreatedAt,
		RelatedEntityID:   n.RelatedEntityID,
		RelatedEntityType: n.RelatedEntityType,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID string) ([]*domain.Notification, error) {
	cur, err := r.coll.Find(ctx, bson.M{"recipient_id": recipientID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer cur.Close(ctx)

	var notifications []*domain.Notification
	for cur.Next(ctx) {
		var mn mongoNotification
		if err := cur.Decode(&mn); err != nil {
			return nil, fmt.Errorf("decode notification: %w", err)
		}
		notifications = append(notifications, &domain.Notification{
			ID:                mn.ID,
			RecipientID:       mn.RecipientID,
			Message:           mn.Message,
			Type:              domain.NotificationType(mn.Type),
			IsRead:            mn.IsRead,
			CreatedAt:         mn.CreatedAt,
			RelatedEntityID:   mn.RelatedEntityID,
			RelatedEntityType: mn.RelatedEntityType,
		})
	}
	return notifications, cur.Err()
}

// EnsureIndexes creates the recipient lookup index.
func (r *NotificationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
