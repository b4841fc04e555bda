package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const lockTTL = time.Hour

// ScanLock provides cross-instance mutual exclusion for background scans.
// Key format: lock:<scan name>. The TTL bounds how long a crashed holder can
// block the next run.
type ScanLock struct {
	client *redis.Client
}

// NewScanLock creates a ScanLock wrapping the given Redis client.
func NewScanLock(client *redis.Client) *ScanLock {
	return &ScanLock{client: client}
}

// Acquire reports whether the caller now holds the named lock.
func (l *ScanLock) Acquire(ctx context.Context, name string) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key(name), "1", lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("acquire lock: %w", err)
	}
	return ok, nil
}

// Release drops the named lock.
func (l *ScanLock) Release(ctx context.Context, name string) error {
	return l.client.Del(ctx, l.key(name)).Err()
}

func (l *ScanLock) key(name string) string {
	return fmt.Sprintf("lock:%s", name)
}
