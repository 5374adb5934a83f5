package output

import (
	"context"
	"time"
)

// ReminderGuard records which automatic reminders were already sent so that a
// scheduler tick never reminds the same event twice on the same day.
type ReminderGuard interface {
	// Acquire returns true when the caller is the first to claim the reminder.
	Acquire(ctx context.Context, eventID uint, day time.Time, ttl time.Duration) (bool, error)
	// Release drops a claim whose reminder could not be sent, so the next
	// tick retries it.
	Release(ctx context.Context, eventID uint, day time.Time) error
}
