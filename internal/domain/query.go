package domain

import (
	"fmt"
	"strings"
)

// Period is a coarse date-range predicate applied to the event list.
type Period string

const (
	PeriodNone     Period = ""
	PeriodUpcoming Period = "upcoming"
	PeriodToday    Period = "today"
	PeriodThisWeek Period = "this-week"
)

// ParsePeriod maps user input to a Period. "" and "all" mean no period filter.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "none":
		return PeriodNone, nil
	case "upcoming":
		return PeriodUpcoming, nil
	case "today":
		return PeriodToday, nil
	case "this-week", "week", "this_week":
		return PeriodThisWeek, nil
	}
	return "", fmt.Errorf("%w: unknown period %q", ErrInvalidInput, s)
}

// RecentLimit caps the hosted/attending lists in Analytics.
const RecentLimit = 5

// Analytics is a user's dashboard summary.
// swagger:model Analytics
type Analytics struct {
	EventsHosted    int      `json:"eventsHosted"`
	EventsAttended  int      `json:"eventsAttended"`
	UpcomingEvents  int      `json:"upcomingEvents"`
	HostedEvents    []*Event `json:"hostedEvents"`
	AttendingEvents []*Event `json:"attendingEvents"`
}
