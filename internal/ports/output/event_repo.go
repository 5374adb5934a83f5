package output

import (
	"context"
	"time"

	"randohub/internal/domain/entities"
)

// EventFilter narrows List. Zero values are ignored.
type EventFilter struct {
	DateFrom   time.Time
	DateTo     time.Time
	Difficulty string
}

// EventPatch carries the fields an update may touch, keyed by column name.
// Keys outside the repository allow-list are rejected.
type EventPatch map[string]any

type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	// FindByID returns domain.ErrEventNotFound when no row exists.
	FindByID(ctx context.Context, id uint) (*entities.Event, error)
	List(ctx context.Context, filter EventFilter) ([]entities.Event, error)
	FindStartingBetween(ctx context.Context, from, to time.Time) ([]entities.Event, error)
	Update(ctx context.Context, id uint, patch EventPatch) error
}
