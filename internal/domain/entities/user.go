package entities

import (
	"time"

	"randohub/internal/domain"
)

// User is an account. Admin, SuperAdmin and Organizer are independent flags.
type User struct {
	ID               uint
	Email            string
	PasswordHash     string
	FirstName        string
	LastName         string
	ProfilePicture   string
	VerificationCode string
	IsVerified       bool
	Admin            bool
	SuperAdmin       bool
	Organizer        bool
	CreatedAt        time.Time
}

// CanOrganize reports whether the user may create hikes.
func (u *User) CanOrganize() bool {
	return u.Organizer || u.Admin || u.SuperAdmin
}

// UserEvent is an event seen from one participant, with their status.
type UserEvent struct {
	Event
	Status domain.ParticipantStatus
}
