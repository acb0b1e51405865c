package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// InvitationEmailData holds the template parameters of an event invitation.
type InvitationEmailData struct {
	Email       string
	InviterName string
	EventTitle  string
	EventDate   string
	EventTime   string
	EventVenue  string
	Message     string
}

// InvitationService sends event invitations through the Mailer collaborator.
type InvitationService interface {
	SendInvitation(ctx context.Context, eventID, toEmail, message string) error
	SendInvitations(ctx context.Context, eventID string, emails []string, message string) (sent int, failed []string, err error)
}
