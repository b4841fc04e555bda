package service

import (
	"context"
	"errors"
	"testing"

	"github.com/staffhub/staffhub-api/internal/core/domain"
	"github.com/staffhub/staffhub-api/internal/core/ports"
)

type stubNotificationRepo struct {
	created []*domain.Notification
	fail    error
}

func (r *stubNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	if r.fail != nil {
		return r.fail
	}
	clone := *n
	r.created = append(r.created, &clone)
	return nil
}

func (r *stubNotificationRepo) ListByRecipient(_ context.Context, recipientID string) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for _, n := range r.created {
		if n.RecipientID == recipientID {
			clone := *n
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubQueue struct {
	jobs []ports.PushJob
}

func (q *stubQueue) Enqueue(job ports.PushJob) {
	q.jobs = append(q.jobs, job)
}

func TestNotificationService_Notify_PersistsThenEnqueues(t *testing.T) {
	repo := &stubNotificationRepo{}
	queue := &stubQueue{}
	svc := NewNotificationService(repo, queue, testLogger())

	err := svc.Notify(context.Background(), ports.NotifyInput{
		RecipientID:    "u1",
		RecipientEmail: "noel@example.com",
		Message:        "Your leave application from 2025-01-10 to 2025-01-12 has been approved.",
		Type:           domain.NotifyLeaveApproved,
	})
	if err != nil {
		t.Fatalf("notify failed: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected 1 persisted record, got %d", len(repo.created))
	}
	record := repo.created[0]
	if record.ID == "" {
		t.Fatalf("expected generated id")
	}
	if record.IsRead {
		t.Fatalf("new notifications start unread")
	}
	if record.CreatedAt.IsZero() {
		t.Fatalf("expected creation timestamp")
	}

	if len(queue.jobs) != 1 {
		t.Fatalf("expected 1 push job, got %d", len(queue.jobs))
	}
	if queue.jobs[0].Email != "noel@example.com" {
		t.Fatalf("push addressed to %q", queue.jobs[0].Email)
	}
	if queue.jobs[0].Payload.Message != record.Message {
		t.Fatalf("push payload message mismatch")
	}
}

func TestNotificationService_Notify_PersistenceFailureSkipsPush(t *testing.T) {
	repo := &stubNotificationRepo{fail: errors.New("db down")}
	queue := &stubQueue{}
	svc := NewNotificationService(repo, queue, testLogger())

	err := svc.Notify(context.Background(), ports.NotifyInput{
		RecipientID: "u1", RecipientEmail: "noel@example.com", Message: "x", Type: domain.NotifyAnnouncement,
	})
	if err == nil {
		t.Fatalf("expected error when persistence fails")
	}
	if len(queue.jobs) != 0 {
		t.Fatalf("no push may be queued when the record was not persisted")
	}
}
