package input

import (
	"context"
	"time"

	"randohub/internal/domain/entities"
	"randohub/internal/ports/output"
)

// NewEvent is the data an organizer supplies when creating a hike.
type NewEvent struct {
	Name            string
	Description     string
	Location        string
	StartPoint      string
	Date            time.Time
	DurationMinutes *int
	Difficulty      string
	EffortIPB       *int
	Technicite      *int
	Risques         *int
	AltitudeMin     *int
	AltitudeMax     *int
	Denivele        *int
	Visiorando      *int
	Distance        *float64
}

type EventUseCase interface {
	CreateEvent(ctx context.Context, in NewEvent, creatorID uint, notifyUsers bool) (*entities.Event, error)
	GetEvent(ctx context.Context, id uint) (*entities.Event, error)
	ListEvents(ctx context.Context, filter output.EventFilter) ([]entities.Event, error)
	UpdateEvent(ctx context.Context, id uint, patch output.EventPatch, actorID uint) (*entities.Event, error)
	ListParticipants(ctx context.Context, id uint) ([]entities.ParticipantView, error)
	EnsureOpenForRegistration(ctx context.Context, id uint, now time.Time) (*entities.Event, error)
	CanNotify(ctx context.Context, eventID, actorID uint) error
}
