package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventplanner/internal/domain"
	"eventplanner/internal/metrics"
)

const invitationTemplate = "invitation"

type invitationService struct {
	store          domain.EventStore
	mailer         domain.Mailer
	renderer       domain.EmailTemplateRenderer
	inviterName    string
	logger         *slog.Logger
	metrics        *metrics.Metrics
	contextTimeout time.Duration
}

// NewInvitationService returns an InvitationService that renders the "invitation" template and hands
// it to mailer. inviterName is shown as the sender in the message body.
func NewInvitationService(
	store domain.EventStore,
	mailer domain.Mailer,
	renderer domain.EmailTemplateRenderer,
	inviterName string,
	logger *slog.Logger,
	m *metrics.Metrics,
	timeout time.Duration,
) domain.InvitationService {
	return &invitationService{
		store:          store,
		mailer:         mailer,
		renderer:       renderer,
		inviterName:    inviterName,
		logger:         logger,
		metrics:        m,
		contextTimeout: timeout,
	}
}

// SendInvitation validates toEmail before anything else; an invalid address never reaches the mailer.
func (s *invitationService) SendInvitation(ctx context.Context, eventID, toEmail, message string) error {
	email := strings.TrimSpace(toEmail)
	if !ValidEmail(email) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidEmail, toEmail)
	}

	event, err := s.store.FindByID(eventID)
	if err != nil {
		return err
	}
	return s.send(ctx, event, email, message)
}

// SendInvitations invites each address in turn. Invalid or failed addresses are collected in failed;
// err is only set when the event does not exist.
func (s *invitationService) SendInvitations(ctx context.Context, eventID string, emails []string, message string) (sent int, failed []string, err error) {
	event, err := s.store.FindByID(eventID)
	if err != nil {
		return 0, nil, err
	}
	for _, raw := range emails {
		email := strings.TrimSpace(raw)
		if email == "" {
			continue
		}
		if !ValidEmail(email) {
			failed = append(failed, email)
			continue
		}
		if err := s.send(ctx, event, email, message); err != nil {
			failed = append(failed, email)
			continue
		}
		sent++
	}
	return sent, failed, nil
}

func (s *invitationService) send(ctx context.Context, event *domain.Event, email, message string) error {
	if s.contextTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.contextTimeout)
		defer cancel()
	}

	data := &domain.InvitationEmailData{
		Email:       email,
		InviterName: s.inviterName,
		EventTitle:  event.Title,
		EventDate:   event.Date,
		EventTime:   event.Time,
		EventVenue:  event.Venue,
		Message:     strings.TrimSpace(message),
	}
	subject, htmlBody, textBody, err := s.renderer.Render(invitationTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render invitation template: %w", err)
	}
	if err := s.mailer.Send(ctx, email, subject, htmlBody, textBody); err != nil {
		s.metrics.Invitation("failed")
		s.logger.WarnContext(ctx, "invitation failed", "event_id", event.ID, "to", email, "err", err)
		return errors.Join(domain.ErrInvitationFailed, err)
	}
	s.metrics.Invitation("sent")
	s.logger.InfoContext(ctx, "invitation sent", "event_id", event.ID, "to", email)
	return nil
}
