package handler

import (
	"time"

	"randohub/internal/domain/entities"
	"randohub/internal/ports/input"
)

type registerUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

type verifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,hexadecimal"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type setOrganizerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Organizer *bool  `json:"organizer" validate:"required"`
}

type createEventRequest struct {
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location" validate:"required"`
	StartPoint  string    `json:"startPoint" validate:"required"`
	Date        time.Time `json:"date" validate:"required"`
	Duration    *int      `json:"duration" validate:"omitempty,gt=0"`
	Difficulty  string    `json:"difficulty" validate:"omitempty,oneof=facile moyenne difficile"`
	EffortIPB   *int      `json:"effortIpb" validate:"omitempty,gte=0"`
	Technicite  *int      `json:"technicite" validate:"omitempty,gte=0"`
	Risques     *int      `json:"risques" validate:"omitempty,gte=0"`
	AltitudeMin *int      `json:"altitudeMin"`
	AltitudeMax *int      `json:"altitudeMax"`
	Denivele    *int      `json:"denivele" validate:"omitempty,gte=0"`
	Visiorando  *int      `json:"visiorando" validate:"omitempty,gte=0"`
	Distance    *float64  `json:"distance" validate:"omitempty,gte=0"`
	NotifyUsers bool      `json:"notifyUsers"`
}

func (r createEventRequest) toInput() input.NewEvent {
	return input.NewEvent{
		Name:            r.Name,
		Description:     r.Description,
		Location:        r.Location,
		StartPoint:      r.StartPoint,
		Date:            r.Date,
		DurationMinutes: r.Duration,
		Difficulty:      r.Difficulty,
		EffortIPB:       r.EffortIPB,
		Technicite:      r.Technicite,
		Risques:         r.Risques,
		AltitudeMin:     r.AltitudeMin,
		AltitudeMax:     r.AltitudeMax,
		Denivele:        r.Denivele,
		Visiorando:      r.Visiorando,
		Distance:        r.Distance,
	}
}

type userResponse struct {
	ID             uint      `json:"id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	IsVerified     bool      `json:"isVerified"`
	Admin          bool      `json:"admin"`
	SuperAdmin     bool      `json:"superAdmin"`
	Organizer      bool      `json:"organizer"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toUserResponse(u *entities.User) userResponse {
	return userResponse{
		ID:             u.ID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		ProfilePicture: u.ProfilePicture,
		IsVerified:     u.IsVerified,
		Admin:          u.Admin,
		SuperAdmin:     u.SuperAdmin,
		Organizer:      u.Organizer,
		CreatedAt:      u.CreatedAt,
	}
}

type participantResponse struct {
	UserID         uint   `json:"userId"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	Status         string `json:"status"`
}

func toParticipantResponses(views []entities.ParticipantView) []participantResponse {
	out := make([]participantResponse, 0, len(views))
	for _, v := range views {
		out = append(out, participantResponse{
			UserID:         v.UserID,
			FirstName:      v.FirstName,
			LastName:       v.LastName,
			ProfilePicture: v.ProfilePicture,
			Status:         v.Status.String(),
		})
	}
	return out
}

type eventResponse struct {
	ID               uint                  `json:"id"`
	Name             string                `json:"name"`
	Description      string                `json:"description"`
	Location         string                `json:"location"`
	StartPoint       string                `json:"startPoint"`
	Date             time.Time             `json:"date"`
	Duration         *int                  `json:"duration"`
	Difficulty       string                `json:"difficulty,omitempty"`
	CreatedBy        *uint                 `json:"createdBy"`
	CreatorName      string                `json:"creatorName,omitempty"`
	EffortIPB        *int                  `json:"effortIpb"`
	Technicite       *int                  `json:"technicite"`
	Risques          *int                  `json:"risques"`
	AltitudeMin      *int                  `json:"altitudeMin"`
	AltitudeMax      *int                  `json:"altitudeMax"`
	Denivele         *int                  `json:"denivele"`
	Visiorando       *int                  `json:"visiorando"`
	Distance         *float64              `json:"distance"`
	ParticipantCount int                   `json:"participantCount"`
	Participants     []participantResponse `json:"participants,omitempty"`
	Status           string                `json:"status,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
}

func toEventResponse(e *entities.Event) eventResponse {
	r := eventResponse{
		ID:               e.ID,
		Name:             e.Name,
		Description:      e.Description,
		Location:         e.Location,
		StartPoint:       e.StartPoint,
		Date:             e.Date,
		Duration:         e.DurationMinutes,
		Difficulty:       e.Difficulty,
		CreatedBy:        e.CreatedBy,
		CreatorName:      e.CreatorName(),
		EffortIPB:        e.EffortIPB,
		Technicite:       e.Technicite,
		Risques:          e.Risques,
		AltitudeMin:      e.AltitudeMin,
		AltitudeMax:      e.AltitudeMax,
		Denivele:         e.Denivele,
		Visiorando:       e.Visiorando,
		Distance:         e.Distance,
		ParticipantCount: e.ParticipantCount,
		CreatedAt:        e.CreatedAt,
	}
	if e.Participants != nil {
		r.Participants = toParticipantResponses(e.Participants)
	}
	return r
}

func toEventResponses(events []entities.Event) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for i := range events {
		out = append(out, toEventResponse(&events[i]))
	}
	return out
}

func toUserEventResponses(events []entities.UserEvent) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for i := range events {
		r := toEventResponse(&events[i].Event)
		r.Status = events[i].Status.String()
		out = append(out, r)
	}
	return out
}

type participationResponse struct {
	ID          uint   `json:"id"`
	EventID     uint   `json:"eventId"`
	UserID      uint   `json:"userId"`
	Status      string `json:"status"`
	Reactivated bool   `json:"reactivated"`
}

type registerResponse struct {
	Success           bool                  `json:"success"`
	Message           string                `json:"message"`
	Participation     participationResponse `json:"participation"`
	NotificationSent  bool                  `json:"notificationSent"`
	NotificationError string                `json:"notificationError,omitempty"`
}

type cancelResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	AlreadyCanceled   bool   `json:"alreadyCanceled"`
	NotificationSent  bool   `json:"notificationSent"`
	NotificationError string `json:"notificationError,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userEventsResponse struct {
	Past   []eventResponse `json:"past"`
	Future []eventResponse `json:"future"`
}
