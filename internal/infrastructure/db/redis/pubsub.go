package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/staffhub/staffhub-api/internal/core/ports"
)

// Channel format: push:<recipient email>. Every running instance subscribes
// to the pattern and routes messages to its own live sessions, so a push
// reaches the recipient no matter which instance holds the connection.
const channelPrefix = "push:"

// Publisher sends push payloads onto the per-recipient channel. It implements
// ports.PushSender.
type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) Push(ctx context.Context, email string, payload ports.NotificationView) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("push publish: %w", err)
	}
	if err := p.client.Publish(ctx, channelPrefix+email, data).Err(); err != nil {
		return fmt.Errorf("push publish: %w", err)
	}
	return nil
}

// Subscribe opens a pattern subscription covering every recipient channel.
// The caller owns the returned PubSub and must close it.
func Subscribe(ctx context.Context, client *redis.Client) *redis.PubSub {
	return client.PSubscribe(ctx, channelPrefix+"*")
}

// RecipientEmail extracts the addressed identity from a channel name.
func RecipientEmail(channel string) string {
	return strings.TrimPrefix(channel, channelPrefix)
}

// DecodePayload unmarshals a published push payload.
func DecodePayload(data string) (ports.NotificationView, error) {
	var payload ports.NotificationView
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return ports.NotificationView{}, fmt.Errorf("push decode: %w", err)
	}
	return payload, nil
}
