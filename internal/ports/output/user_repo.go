package output

import (
	"context"
	"time"

	"randohub/internal/domain/entities"
)

type UserRepository interface {
	// Create returns domain.ErrUserExists when the email is taken.
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id uint) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	// MarkVerified clears the code and flags the account; returns
	// domain.ErrInvalidVerificationCode when no row matched.
	MarkVerified(ctx context.Context, email, code string) error
	SetOrganizer(ctx context.Context, email string, organizer bool) error
	FindEvents(ctx context.Context, userID uint, now time.Time) (past, future []entities.UserEvent, err error)
}
