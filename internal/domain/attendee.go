package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// RSVPStatus is a guest's response to an event.
type RSVPStatus string

const (
	RSVPConfirmed RSVPStatus = "confirmed"
	RSVPDeclined  RSVPStatus = "declined"
	// RSVPPending is derived from the absence of a Guest record and is never stored.
	RSVPPending RSVPStatus = "pending"
)

// ParseRSVPStatus accepts the two storable statuses.
func ParseRSVPStatus(s string) (RSVPStatus, error) {
	switch RSVPStatus(strings.ToLower(strings.TrimSpace(s))) {
	case RSVPConfirmed:
		return RSVPConfirmed, nil
	case RSVPDeclined:
		return RSVPDeclined, nil
	}
	return "", fmt.Errorf("%w: rsvp status must be confirmed or declined, got %q", ErrInvalidInput, s)
}

// Guest is a user's RSVP record attached to an Event.
// swagger:model Guest
type Guest struct {
	UserID   string     `json:"userId"`
	Name     string     `json:"name"`
	Status   RSVPStatus `json:"status"`
	RSVPDate time.Time  `json:"rsvpDate"`
}

// UserDirectory resolves display names for user ids.
type UserDirectory interface {
	DisplayName(ctx context.Context, userID string) string
}

// RSVPService mutates guest lists. At most one Guest exists per user per event.
type RSVPService interface {
	SetRSVP(ctx context.Context, eventID, userID string, status RSVPStatus) (*Event, error)
	ToggleRSVP(ctx context.Context, eventID, userID string) (*Event, error)
}

// StatusFor returns the user's RSVP status on the event, RSVPPending if they have not responded.
func StatusFor(e *Event, userID string) RSVPStatus {
	if i := e.GuestIndex(userID); i >= 0 {
		return e.Guests[i].Status
	}
	return RSVPPending
}
