package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"eventplanner/internal/domain"
)

const (
	titleMinLen       = 3
	titleMaxLen       = 100
	descriptionMinLen = 10
	descriptionMaxLen = 500
	venueMinLen       = 2
)

var (
	timeOfDayRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	emailRegex     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// normalizeEventInput trims every field and applies the duration default.
func normalizeEventInput(in domain.EventInput) domain.EventInput {
	out := domain.EventInput{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Date:        strings.TrimSpace(in.Date),
		Time:        strings.TrimSpace(in.Time),
		Venue:       strings.TrimSpace(in.Venue),
		Duration:    strings.TrimSpace(in.Duration),
	}
	if out.Duration == "" {
		out.Duration = domain.DefaultDuration
	}
	return out
}

// validateEventInput checks every constraint and reports all violations. today is midnight of the
// current day in the zone event dates are interpreted in.
func validateEventInput(in domain.EventInput, today time.Time) error {
	verr := &domain.ValidationError{}

	checkLength(verr, "title", in.Title, titleMinLen, titleMaxLen)
	checkLength(verr, "description", in.Description, descriptionMinLen, descriptionMaxLen)

	if in.Date == "" {
		verr.Add("date", "date is required")
	} else if day, err := time.ParseInLocation(domain.DateLayout, in.Date, today.Location()); err != nil {
		verr.Add("date", "date must be formatted as YYYY-MM-DD")
	} else if day.Before(today) {
		verr.Add("date", "date cannot be in the past")
	}

	if in.Time == "" {
		verr.Add("time", "time is required")
	} else if !timeOfDayRegex.MatchString(in.Time) {
		verr.Add("time", "time must be formatted as HH:MM (24-hour)")
	}

	if in.Venue == "" {
		verr.Add("venue", "venue is required")
	} else if utf8.RuneCountInString(in.Venue) < venueMinLen {
		verr.Add("venue", fmt.Sprintf("venue must be at least %d characters", venueMinLen))
	}

	return verr.OrNil()
}

func checkLength(verr *domain.ValidationError, field, value string, lo, hi int) {
	n := utf8.RuneCountInString(value)
	switch {
	case n == 0:
		verr.Add(field, field+" is required")
	case n < lo || n > hi:
		verr.Add(field, fmt.Sprintf("%s must be between %d and %d characters", field, lo, hi))
	}
}

// ValidEmail reports whether addr has the form local@domain.tld.
func ValidEmail(addr string) bool {
	return emailRegex.MatchString(addr)
}
