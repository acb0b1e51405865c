// Package render formats events, countdowns and analytics as plain text for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"eventplanner/internal/domain"
)

const (
	titleWidth = 32
	venueWidth = 20
	idWidth    = 8
	ellipsis   = "…"
)

// Table writes rows as space-aligned columns, measuring cells by display width so wide runes
// line up. The first row is the header and is underlined with dashes.
func Table(w io.Writer, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if cw := runewidth.StringWidth(row[i]); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	var sb strings.Builder
	writeRow := func(row []string) {
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if i == len(widths)-1 {
				sb.WriteString(cell)
				break
			}
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
			sb.WriteString("  ")
		}
		sb.WriteString("\n")
	}

	writeRow(rows[0])
	sep := make([]string, len(widths))
	for i, cw := range widths {
		sep[i] = strings.Repeat("-", cw)
	}
	writeRow(sep)
	for _, row := range rows[1:] {
		writeRow(row)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Events writes one line per event with the viewer's RSVP status.
func Events(w io.Writer, events []*domain.Event, viewerID string) error {
	if len(events) == 0 {
		_, err := io.WriteString(w, "No events found.\n")
		return err
	}
	rows := [][]string{{"ID", "DATE", "TIME", "TITLE", "VENUE", "GOING", "YOU"}}
	for _, e := range events {
		rows = append(rows, []string{
			shortID(e.ID),
			e.Date,
			e.Time,
			runewidth.Truncate(e.Title, titleWidth, ellipsis),
			runewidth.Truncate(e.Venue, venueWidth, ellipsis),
			fmt.Sprint(len(e.ConfirmedGuests())),
			string(domain.StatusFor(e, viewerID)),
		})
	}
	return Table(w, rows)
}

// EventDetails writes the full event followed by its guest list. countdown may be nil.
func EventDetails(w io.Writer, e *domain.Event, viewerID string, countdown *domain.Countdown) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n%s\n\n", e.Title, strings.Repeat("=", runewidth.StringWidth(e.Title)))
	fmt.Fprintf(&sb, "When:      %s at %s (%s)\n", e.Date, e.Time, e.Duration)
	fmt.Fprintf(&sb, "Where:     %s\n", e.Venue)
	fmt.Fprintf(&sb, "Organizer: %s\n", e.Organizer)
	fmt.Fprintf(&sb, "Your RSVP: %s\n", domain.StatusFor(e, viewerID))
	if countdown != nil {
		fmt.Fprintf(&sb, "Countdown: %s\n", Countdown(*countdown))
	}
	fmt.Fprintf(&sb, "\n%s\n", e.Description)
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}

	if len(e.Guests) == 0 {
		_, err := io.WriteString(w, "\nNo responses yet.\n")
		return err
	}
	if _, err := fmt.Fprintf(w, "\nGuests (%d going)\n", len(e.ConfirmedGuests())); err != nil {
		return err
	}
	rows := [][]string{{"NAME", "STATUS", "RESPONDED"}}
	for _, g := range e.Guests {
		rows = append(rows, []string{g.Name, string(g.Status), g.RSVPDate.Format("2006-01-02 15:04")})
	}
	return Table(w, rows)
}

// Countdown formats the time remaining until an event starts.
func Countdown(c domain.Countdown) string {
	if c.Started {
		return "Event has started"
	}
	return fmt.Sprintf("%dd %02dh %02dm %02ds", c.Days, c.Hours, c.Minutes, c.Seconds)
}

// Dashboard writes the viewer's analytics.
func Dashboard(w io.Writer, a domain.Analytics) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Events hosted:   %d\n", a.EventsHosted)
	fmt.Fprintf(&sb, "Events attended: %d\n", a.EventsAttended)
	fmt.Fprintf(&sb, "Upcoming:        %d\n", a.UpcomingEvents)
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}
	if err := section(w, "Hosting", a.HostedEvents); err != nil {
		return err
	}
	return section(w, "Attending", a.AttendingEvents)
}

func section(w io.Writer, heading string, events []*domain.Event) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", heading); err != nil {
		return err
	}
	if len(events) == 0 {
		_, err := io.WriteString(w, "  (none)\n")
		return err
	}
	for _, e := range events {
		line := fmt.Sprintf("  %s %s  %s\n", e.Date, e.Time, runewidth.Truncate(e.Title, titleWidth, ellipsis))
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

func shortID(id string) string {
	if len(id) <= idWidth {
		return id
	}
	return id[:idWidth]
}
