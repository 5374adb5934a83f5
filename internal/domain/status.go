package domain

import "fmt"

// ParticipantStatus is the lifecycle state stored on a participants row.
type ParticipantStatus string

const (
	StatusRegistered ParticipantStatus = "registered"
	StatusCanceled   ParticipantStatus = "canceled"
	StatusAttended   ParticipantStatus = "attended"
)

func (s ParticipantStatus) String() string { return string(s) }

// Valid reports whether s is one of the known statuses.
func (s ParticipantStatus) Valid() bool {
	switch s {
	case StatusRegistered, StatusCanceled, StatusAttended:
		return true
	}
	return false
}

// ParseStatus converts a stored status column into a ParticipantStatus.
func ParseStatus(raw string) (ParticipantStatus, error) {
	s := ParticipantStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown participant status %q", raw)
	}
	return s, nil
}

// Difficulty levels accepted for an event.
const (
	DifficultyEasy   = "facile"
	DifficultyMedium = "moyenne"
	DifficultyHard   = "difficile"
)

// ValidDifficulty reports whether d is empty or one of the accepted levels.
func ValidDifficulty(d string) bool {
	switch d {
	case "", DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
