package entities

import "time"

// IsPast reports whether the hike has already started at now.
func (e *Event) IsPast(now time.Time) bool {
	return e.Date.Before(now)
}

// CreatorName returns "First Last" for the creator, or "" when the creator
// account no longer exists.
func (e *Event) CreatorName() string {
	if e.CreatorFirstName == nil {
		return ""
	}
	if e.CreatorLastName == nil {
		return *e.CreatorFirstName
	}
	return *e.CreatorFirstName + " " + *e.CreatorLastName
}

type Event struct {
	ID              uint
	Name            string
	Description     string
	Location        string
	StartPoint      string
	Date            time.Time
	DurationMinutes *int
	Difficulty      string
	CreatedBy       *uint // nil once the creator account is deleted

	// Difficulty ratings, all optional.
	EffortIPB   *int
	Technicite  *int
	Risques     *int
	AltitudeMin *int
	AltitudeMax *int
	Denivele    *int
	Visiorando  *int
	Distance    *float64

	// Read-side fields filled by joins.
	CreatorFirstName *string
	CreatorLastName  *string
	ParticipantCount int
	Participants     []ParticipantView

	CreatedAt time.Time
}
