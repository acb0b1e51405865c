// Package ical renders events as an RFC 5545 calendar so they can be added to calendar apps.
package ical

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"eventplanner/internal/domain"
)

// ProductID identifies this application in exported calendars.
const ProductID = "-//eventplanner//Event Planner//EN"

// Export renders events as a VCALENDAR. Dates and times are read in loc. Confirmed guests become
// attendees; events with an unreadable start are skipped and reported in skipped.
func Export(events []*domain.Event, loc *time.Location) (calendar string, skipped []string) {
	cal := ics.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetMethod(ics.MethodPublish)

	for _, e := range events {
		start, err := e.StartsAt(loc)
		if err != nil {
			skipped = append(skipped, e.ID)
			continue
		}
		length, ok := ParseDuration(e.Duration)
		if !ok {
			length = FallbackDuration
		}

		ev := cal.AddEvent(e.ID + "@eventplanner")
		ev.SetCreatedTime(e.CreatedAt)
		ev.SetDtStampTime(e.UpdatedAt)
		ev.SetModifiedAt(e.UpdatedAt)
		ev.SetStartAt(start)
		ev.SetEndAt(start.Add(length))
		ev.SetSummary(e.Title)
		ev.SetDescription(e.Description)
		ev.SetLocation(e.Venue)
		ev.SetOrganizer(userURI(e.Organizer))
		for _, g := range e.ConfirmedGuests() {
			ev.AddAttendee(userURI(g.UserID), ics.WithCN(g.Name), ics.ParticipationStatusAccepted)
		}
	}
	return cal.Serialize(), skipped
}

func userURI(userID string) string {
	return fmt.Sprintf("urn:eventplanner:user:%s", userID)
}
