package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"randohub/internal/ports/output"
	"randohub/pkg/tz"
)

var (
	_ output.ReminderGuard = (*ReminderGuard)(nil)
	_ output.ReminderGuard = (*MemoryGuard)(nil)
)

// ReminderGuard makes sure a reminder goes out once per event and day, even
// with several server instances.
// Key format: reminder:<event_id>:<yyyymmdd>
type ReminderGuard struct {
	client redis.Cmdable
}

func NewReminderGuard(client redis.Cmdable) *ReminderGuard {
	return &ReminderGuard{client: client}
}

// Acquire reports true only for the first caller for (eventID, day).
func (g *ReminderGuard) Acquire(ctx context.Context, eventID uint, day time.Time, ttl time.Duration) (bool, error) {
	ok, err := g.client.SetNX(ctx, reminderKey(eventID, day), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("reminder guard: %w", err)
	}
	return ok, nil
}

func (g *ReminderGuard) Release(ctx context.Context, eventID uint, day time.Time) error {
	if err := g.client.Del(ctx, reminderKey(eventID, day)).Err(); err != nil {
		return fmt.Errorf("reminder guard release: %w", err)
	}
	return nil
}

func reminderKey(eventID uint, day time.Time) string {
	return fmt.Sprintf("reminder:%d:%s", eventID, day.In(tz.Paris).Format("20060102"))
}

// MemoryGuard is the single-instance fallback used when REDIS_ADDR is empty.
type MemoryGuard struct {
	mu   sync.Mutex
	now  func() time.Time
	seen map[string]time.Time
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{now: time.Now, seen: make(map[string]time.Time)}
}

func (g *MemoryGuard) Acquire(_ context.Context, eventID uint, day time.Time, ttl time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	for k, exp := range g.seen {
		if now.After(exp) {
			delete(g.seen, k)
		}
	}
	key := reminderKey(eventID, day)
	if _, ok := g.seen[key]; ok {
		return false, nil
	}
	g.seen[key] = now.Add(ttl)
	return true, nil
}

func (g *MemoryGuard) Release(_ context.Context, eventID uint, day time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.seen, reminderKey(eventID, day))
	return nil
}
