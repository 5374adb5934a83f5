package database

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"randohub/internal/domain"
	"randohub/internal/domain/entities"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

func int4Ptr(v pgtype.Int4) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int32)
	return &i
}

func ptrInt4(v *int) pgtype.Int4 {
	if v == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: int32(*v), Valid: true}
}

func float8Ptr(v pgtype.Float8) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func ptrFloat8(v *float64) pgtype.Float8 {
	if v == nil {
		return pgtype.Float8{}
	}
	return pgtype.Float8{Float64: *v, Valid: true}
}

func textPtr(v pgtype.Text) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullableText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

// eventRow mirrors the columns selected by eventColumns.
type eventRow struct {
	ID               int64
	Name             string
	Description      pgtype.Text
	Location         string
	StartPoint       string
	Date             pgtype.Timestamptz
	Duration         pgtype.Int4
	Difficulty       pgtype.Text
	CreatedBy        pgtype.Int8
	EffortIPB        pgtype.Int4
	Technicite       pgtype.Int4
	Risques          pgtype.Int4
	AltitudeMin      pgtype.Int4
	AltitudeMax      pgtype.Int4
	Denivele         pgtype.Int4
	Visiorando       pgtype.Int4
	Distance         pgtype.Float8
	CreatedAt        pgtype.Timestamptz
	CreatorFirstName pgtype.Text
	CreatorLastName  pgtype.Text
	ParticipantCount int64
}

func (r *eventRow) dest() []any {
	return []any{
		&r.ID, &r.Name, &r.Description, &r.Location, &r.StartPoint, &r.Date, &r.Duration,
		&r.Difficulty, &r.CreatedBy, &r.EffortIPB, &r.Technicite, &r.Risques, &r.AltitudeMin,
		&r.AltitudeMax, &r.Denivele, &r.Visiorando, &r.Distance, &r.CreatedAt,
		&r.CreatorFirstName, &r.CreatorLastName, &r.ParticipantCount,
	}
}

func eventToDomain(r eventRow) entities.Event {
	e := entities.Event{
		ID:               uint(r.ID),
		Name:             r.Name,
		Description:      r.Description.String,
		Location:         r.Location,
		StartPoint:       r.StartPoint,
		Date:             pgtypeTimestamptzToTime(r.Date),
		DurationMinutes:  int4Ptr(r.Duration),
		Difficulty:       r.Difficulty.String,
		EffortIPB:        int4Ptr(r.EffortIPB),
		Technicite:       int4Ptr(r.Technicite),
		Risques:          int4Ptr(r.Risques),
		AltitudeMin:      int4Ptr(r.AltitudeMin),
		AltitudeMax:      int4Ptr(r.AltitudeMax),
		Denivele:         int4Ptr(r.Denivele),
		Visiorando:       int4Ptr(r.Visiorando),
		Distance:         float8Ptr(r.Distance),
		CreatorFirstName: textPtr(r.CreatorFirstName),
		CreatorLastName:  textPtr(r.CreatorLastName),
		ParticipantCount: int(r.ParticipantCount),
		CreatedAt:        pgtypeTimestamptzToTime(r.CreatedAt),
	}
	if r.CreatedBy.Valid {
		id := uint(r.CreatedBy.Int64)
		e.CreatedBy = &id
	}
	return e
}

// userRow mirrors the columns selected by userColumns.
type userRow struct {
	ID               int64
	Email            string
	PasswordHash     string
	FirstName        string
	LastName         string
	ProfilePicture   pgtype.Text
	VerificationCode pgtype.Text
	IsVerified       bool
	Admin            bool
	SuperAdmin       bool
	Organizer        bool
	CreatedAt        pgtype.Timestamptz
}

func (r *userRow) dest() []any {
	return []any{
		&r.ID, &r.Email, &r.PasswordHash, &r.FirstName, &r.LastName, &r.ProfilePicture,
		&r.VerificationCode, &r.IsVerified, &r.Admin, &r.SuperAdmin, &r.Organizer, &r.CreatedAt,
	}
}

func userToDomain(r userRow) entities.User {
	return entities.User{
		ID:               uint(r.ID),
		Email:            r.Email,
		PasswordHash:     r.PasswordHash,
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		ProfilePicture:   r.ProfilePicture.String,
		VerificationCode: r.VerificationCode.String,
		IsVerified:       r.IsVerified,
		Admin:            r.Admin,
		SuperAdmin:       r.SuperAdmin,
		Organizer:        r.Organizer,
		CreatedAt:        pgtypeTimestamptzToTime(r.CreatedAt),
	}
}

func participantToDomain(id, eventID, userID int64, status string, registeredAt pgtype.Timestamptz) (entities.Participant, error) {
	s, err := domain.ParseStatus(status)
	if err != nil {
		return entities.Participant{}, err
	}
	return entities.Participant{
		ID:           uint(id),
		EventID:      uint(eventID),
		UserID:       uint(userID),
		Status:       s,
		RegisteredAt: pgtypeTimestamptzToTime(registeredAt),
	}, nil
}
