package input

import (
	"context"

	"randohub/internal/domain"
)

// RegistrationResult describes a successful registration. The notification
// outcome never affects whether the registration happened.
type RegistrationResult struct {
	ParticipantID     uint
	EventID           uint
	UserID            uint
	Status            domain.ParticipantStatus
	Reactivated       bool
	NotificationSent  bool
	NotificationError string
}

// CancellationResult describes a successful cancellation.
type CancellationResult struct {
	AlreadyCanceled   bool
	NotificationSent  bool
	NotificationError string
}

// NotifyResult reports a bulk reminder run: Count successes out of Total attempts.
type NotifyResult struct {
	Count int `json:"count"`
	Total int `json:"total"`
}

type ParticipationUseCase interface {
	Register(ctx context.Context, eventID, userID uint) (RegistrationResult, error)
	Cancel(ctx context.Context, eventID, userID uint) (CancellationResult, error)
}

type BulkNotifyUseCase interface {
	NotifyAll(ctx context.Context, eventID uint) (NotifyResult, error)
}
