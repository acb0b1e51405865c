package services

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"eventplanner/internal/domain"
)

// thisWeekDays is the inclusive span of the this-week period, counted from today.
const thisWeekDays = 7

// FilterAndSort returns the events matching searchTerm and period, sorted ascending by date. Ties keep
// their original relative order. now fixes "today" and the zone dates are read in. The input slice is
// not modified.
func FilterAndSort(events []*domain.Event, searchTerm string, period domain.Period, now time.Time) []*domain.Event {
	today := startOfDay(now)
	fold := cases.Fold()
	term := fold.String(strings.TrimSpace(searchTerm))

	type dated struct {
		event *domain.Event
		day   time.Time
		ok    bool
	}
	matched := make([]dated, 0, len(events))
	for _, e := range events {
		if e == nil {
			continue
		}
		if term != "" && !matchesSearch(fold, e, term) {
			continue
		}
		day, err := e.Day(now.Location())
		if !inPeriod(day, err == nil, period, today) {
			continue
		}
		matched = append(matched, dated{event: e, day: day, ok: err == nil})
	}

	slices.SortStableFunc(matched, func(a, b dated) int {
		switch {
		case a.ok && b.ok:
			return a.day.Compare(b.day)
		case a.ok:
			return -1
		case b.ok:
			return 1
		}
		return 0
	})

	out := make([]*domain.Event, len(matched))
	for i, m := range matched {
		out[i] = m.event
	}
	return out
}

func matchesSearch(fold cases.Caser, e *domain.Event, term string) bool {
	for _, field := range []string{e.Title, e.Description, e.Venue} {
		if strings.Contains(fold.String(field), term) {
			return true
		}
	}
	return false
}

// inPeriod reports whether day falls in period. Events without a readable date only match PeriodNone.
func inPeriod(day time.Time, valid bool, period domain.Period, today time.Time) bool {
	if period == domain.PeriodNone {
		return true
	}
	if !valid {
		return false
	}
	switch period {
	case domain.PeriodUpcoming:
		return !day.Before(today)
	case domain.PeriodToday:
		return day.Equal(today)
	case domain.PeriodThisWeek:
		return !day.Before(today) && !day.After(today.AddDate(0, 0, thisWeekDays))
	}
	return false
}

// ComputeAnalytics summarises the events userID hosts and attends.
//
// UpcomingEvents adds hosted-and-upcoming to attended-and-upcoming, so an event the user both hosts
// and attends counts twice. HostedEvents and AttendingEvents hold the first matches in list order.
func ComputeAnalytics(events []*domain.Event, userID string, now time.Time) domain.Analytics {
	today := startOfDay(now)
	a := domain.Analytics{
		HostedEvents:    []*domain.Event{},
		AttendingEvents: []*domain.Event{},
	}

	for _, e := range events {
		if e == nil {
			continue
		}
		day, err := e.Day(now.Location())
		upcoming := err == nil && !day.Before(today)

		if e.Organizer == userID {
			a.EventsHosted++
			if upcoming {
				a.UpcomingEvents++
			}
			if len(a.HostedEvents) < domain.RecentLimit {
				a.HostedEvents = append(a.HostedEvents, e)
			}
		}
		if domain.StatusFor(e, userID) == domain.RSVPConfirmed {
			a.EventsAttended++
			if upcoming {
				a.UpcomingEvents++
			}
			if len(a.AttendingEvents) < domain.RecentLimit {
				a.AttendingEvents = append(a.AttendingEvents, e)
			}
		}
	}
	return a
}
