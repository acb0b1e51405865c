package services

import (
	"context"
	"fmt"
	"log/slog"

	"eventplanner/internal/domain"
	"eventplanner/internal/metrics"
)

type rsvpService struct {
	store   domain.EventStore
	users   domain.UserDirectory
	clock   Clock
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewRSVPService creates an RSVPService that mutates guest lists held by store. users resolves the
// display name recorded on a new Guest.
func NewRSVPService(store domain.EventStore, users domain.UserDirectory, clock Clock, logger *slog.Logger, m *metrics.Metrics) domain.RSVPService {
	return &rsvpService{
		store:   store,
		users:   users,
		clock:   clock,
		logger:  logger,
		metrics: m,
	}
}

// SetRSVP records status for userID, updating the existing Guest in place or appending a new one.
func (s *rsvpService) SetRSVP(ctx context.Context, eventID, userID string, status domain.RSVPStatus) (*domain.Event, error) {
	if status != domain.RSVPConfirmed && status != domain.RSVPDeclined {
		return nil, fmt.Errorf("%w: rsvp status must be confirmed or declined, got %q", domain.ErrInvalidInput, status)
	}
	return s.apply(ctx, eventID, userID, func(domain.RSVPStatus, bool) domain.RSVPStatus {
		return status
	})
}

// ToggleRSVP confirms a user without a response and flips confirmed and declined otherwise.
// There is no way back to pending.
func (s *rsvpService) ToggleRSVP(ctx context.Context, eventID, userID string) (*domain.Event, error) {
	return s.apply(ctx, eventID, userID, func(current domain.RSVPStatus, exists bool) domain.RSVPStatus {
		if exists && current == domain.RSVPConfirmed {
			return domain.RSVPDeclined
		}
		return domain.RSVPConfirmed
	})
}

func (s *rsvpService) apply(ctx context.Context, eventID, userID string, next func(current domain.RSVPStatus, exists bool) domain.RSVPStatus) (*domain.Event, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	name := s.users.DisplayName(ctx, userID)

	var status domain.RSVPStatus
	event, err := s.store.Update(ctx, eventID, func(e *domain.Event) error {
		now := s.clock.Now()
		if i := e.GuestIndex(userID); i >= 0 {
			status = next(e.Guests[i].Status, true)
			e.Guests[i].Status = status
			e.Guests[i].RSVPDate = now
		} else {
			status = next("", false)
			e.Guests = append(e.Guests, domain.Guest{
				UserID:   userID,
				Name:     name,
				Status:   status,
				RSVPDate: now,
			})
		}
		e.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RSVP(string(status))
	s.logger.InfoContext(ctx, "rsvp recorded", "event_id", eventID, "user_id", userID, "status", status)
	return event, nil
}
