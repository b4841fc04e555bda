package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/staffhub/staffhub-api/internal/core/ports"
	"github.com/staffhub/staffhub-api/internal/infrastructure/push"
)

// heartbeatInterval keeps idle SSE connections alive through proxies.
const heartbeatInterval = 30 * time.Second

type notificationResponse struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	IsRead    bool   `json:"isRead"`
	CreatedAt string `json:"created_at"`
}

type listNotificationsResponse struct {
	Data []notificationResponse `json:"data"`
}

// NotificationHandler serves the durable notification list and the real-time
// SSE stream.
type NotificationHandler struct {
	notifier ports.Notifier
	hub      *push.Hub
}

func NewNotificationHandler(notifier ports.Notifier, hub *push.Hub) *NotificationHandler {
	return &NotificationHandler{notifier: notifier, hub: hub}
}

// List returns the caller's persisted notifications, newest first.
func (h *NotificationHandler) List(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	notifications, err := h.notifier.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	data := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		data = append(data, notificationResponse{
			ID:        n.ID,
			Message:   n.Message,
			Type:      string(n.Type),
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, listNotificationsResponse{Data: data})
}

// Stream holds the connection open and pushes notifications as SSE events.
// Delivery is best effort: events raised while no stream is connected are
// only visible through List.
func (h *NotificationHandler) Stream(c echo.Context) error {
	_, email, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if email == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "token missing email claim")
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	session := h.hub.Register(email)
	defer h.hub.Unregister(email, session)

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-heartbeat.C:
			if _, err := fmt.Fprint(res, ": ping\n\n"); err != nil {
				return nil
			}
			res.Flush()
		case payload := <-session.C():
			if err := writeEvent(res, payload); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}

func writeEvent(res *echo.Response, payload ports.NotificationView) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(res, "event: notification\ndata: %s\n\n", data)
	return err
}
