package domain

import (
	"context"
	"time"
)

// DefaultDuration is applied when an event is created without a duration.
const DefaultDuration = "2 hours"

// Date and time layouts used by Event.Date and Event.Time.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Event is a planned gathering with schedule, venue and guest list.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Venue       string    `json:"venue"`
	Duration    string    `json:"duration"`
	Organizer   string    `json:"organizer"`
	Guests      []Guest   `json:"guests"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the event, guest list included.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	c := *e
	c.Guests = make([]Guest, len(e.Guests))
	copy(c.Guests, e.Guests)
	return &c
}

// GuestIndex returns the position of userID in the guest list, or -1.
func (e *Event) GuestIndex(userID string) int {
	for i := range e.Guests {
		if e.Guests[i].UserID == userID {
			return i
		}
	}
	return -1
}

// ConfirmedGuests returns the guests whose status is confirmed, in RSVP order.
func (e *Event) ConfirmedGuests() []Guest {
	var out []Guest
	for _, g := range e.Guests {
		if g.Status == RSVPConfirmed {
			out = append(out, g)
		}
	}
	return out
}

// Day parses Date as a calendar day in loc.
func (e *Event) Day(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, e.Date, loc)
}

// StartsAt parses Date and Time together in loc.
func (e *Event) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, e.Date+" "+e.Time, loc)
}

// EventInput holds the caller-supplied fields for a new event.
type EventInput struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Date        string `json:"date" yaml:"date"`
	Time        string `json:"time" yaml:"time"`
	Venue       string `json:"venue" yaml:"venue"`
	Duration    string `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// EventStore holds the authoritative list of events and keeps it in sync with a KVStore.
// Every returned *Event is a copy; callers must re-query after a mutation.
type EventStore interface {
	Load(ctx context.Context)
	Save(ctx context.Context) error
	Create(ctx context.Context, input EventInput, organizer string) (*Event, error)
	FindByID(id string) (*Event, error)
	List() []*Event
	Update(ctx context.Context, id string, fn func(*Event) error) (*Event, error)
	Clear(ctx context.Context) int
}
