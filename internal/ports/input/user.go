package input

import (
	"context"
	"time"

	"randohub/internal/domain/entities"
)

type NewUser struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UserEvents splits a user's participations around now.
type UserEvents struct {
	Past   []entities.UserEvent
	Future []entities.UserEvent
}

type UserUseCase interface {
	Register(ctx context.Context, in NewUser) (*entities.User, error)
	Verify(ctx context.Context, email, code string) error
	Me(ctx context.Context, id uint) (*entities.User, error)
	Events(ctx context.Context, id uint, now time.Time) (UserEvents, error)
	SetOrganizer(ctx context.Context, actorID uint, email string, organizer bool) error
}

type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (string, *entities.User, error)
}
