package output

import (
	"context"

	"randohub/internal/domain"
	"randohub/internal/domain/entities"
)

// ParticipantRepository persists participants rows. Each call is atomic on a
// single row; no cross-row transaction is assumed.
type ParticipantRepository interface {
	// Create inserts a new row and fills participant.ID and RegisteredAt.
	// A uniqueness conflict on (user, event) returns domain.ErrParticipantConflict.
	Create(ctx context.Context, participant *entities.Participant) error
	// FindByEventIDAndUserID returns domain.ErrParticipationNotFound when no row exists.
	FindByEventIDAndUserID(ctx context.Context, eventID, userID uint) (*entities.Participant, error)
	FindByEventID(ctx context.Context, eventID uint) ([]entities.ParticipantView, error)
	UpdateStatus(ctx context.Context, eventID, userID uint, status domain.ParticipantStatus) (int64, error)
	ListRegisteredWithContact(ctx context.Context, eventID uint) ([]entities.Contact, error)
}
