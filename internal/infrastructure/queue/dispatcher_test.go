package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffhub/staffhub-api/internal/core/ports"
)

type recordingSender struct {
	mu    sync.Mutex
	byKey map[string][]string
}

func newRecordingSender() *recordingSender {
	return &recordingSender{byKey: make(map[string][]string)}
}

func (s *recordingSender) Push(_ context.Context, email string, payload ports.NotificationView) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byKey[email] = append(s.byKey[email], payload.Message)
	return nil
}

func (s *recordingSender) messages(email string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.byKey[email]))
	copy(out, s.byKey[email])
	return out
}

func TestDispatcher_DeliversJobs(t *testing.T) {
	sender := newRecordingSender()
	d := NewDispatcher(2, sender, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.PushJob{Email: "noel@example.com", Payload: ports.NotificationView{Message: "one"}})

	deadline := time.After(2 * time.Second)
	for len(sender.messages("noel@example.com")) == 0 {
		select {
		case <-deadline:
			t.Fatalf("job never delivered")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestDispatcher_PerRecipientOrdering(t *testing.T) {
	sender := newRecordingSender()
	d := NewDispatcher(4, sender, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	want := []string{"first", "second", "third"}
	for _, m := range want {
		d.Enqueue(ports.PushJob{Email: "noel@example.com", Payload: ports.NotificationView{Message: m}})
	}

	deadline := time.After(2 * time.Second)
	for len(sender.messages("noel@example.com")) < len(want) {
		select {
		case <-deadline:
			t.Fatalf("jobs never delivered: %v", sender.messages("noel@example.com"))
		case <-time.After(10 * time.Millisecond):
		}
	}

	got := sender.messages("noel@example.com")
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("same-recipient jobs must stay ordered, got %v", got)
		}
	}
}

func TestDispatcher_ShardIsStablePerRecipient(t *testing.T) {
	d := NewDispatcher(4, newRecordingSender(), zerolog.Nop())

	first := d.shardIndex("noel@example.com")
	for i := 0; i < 10; i++ {
		if d.shardIndex("noel@example.com") != first {
			t.Fatalf("shard index must be deterministic")
		}
	}
}
