package tz

import (
	"fmt"
	"time"
)

// Paris is the Europe/Paris location (CET/CEST with automatic DST).
var Paris *time.Location

func init() {
	var err error
	Paris, err = time.LoadLocation("Europe/Paris")
	if err != nil {
		panic("tz: load Europe/Paris: " + err.Error())
	}
}

// FormatEventDate renders t in Paris time as "JJ/MM/AAAA à HH:MM".
func FormatEventDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(Paris).Format("02/01/2006 à 15:04")
}

// ParseDay parses a YYYY-MM-DD query value as midnight in Paris.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, Paris)
	if err != nil {
		return time.Time{}, fmt.Errorf("date invalide (attendu AAAA-MM-JJ): %q", s)
	}
	return t, nil
}

// EndOfDay returns the last instant of t's day in Paris.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.In(Paris).Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), Paris)
}
