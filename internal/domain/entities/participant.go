package entities

import (
	"time"

	"randohub/internal/domain"
)

// Participant represents a user's participation in an event. There is at most
// one row per (EventID, UserID); status changes reuse the row.
type Participant struct {
	ID           uint
	EventID      uint
	UserID       uint
	Status       domain.ParticipantStatus
	RegisteredAt time.Time
}

// ParticipantView is a participant joined with the public part of its user.
type ParticipantView struct {
	UserID         uint
	FirstName      string
	LastName       string
	ProfilePicture string
	Status         domain.ParticipantStatus
}

// Contact is what the notifier needs to reach a registered participant.
type Contact struct {
	ParticipantID uint
	UserID        uint
	Email         string
	FirstName     string
	LastName      string
}
