package domain

import "errors"

var (
	// ErrNotFound is returned when a lookup by id finds nothing. It is never used for empty lists.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when a request is malformed (e.g. unknown RSVP status or period).
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidEmail is returned when an invitation address is not of the form local@domain.tld.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvitationFailed wraps a failure reported by the invitation collaborator.
	ErrInvitationFailed = errors.New("invitation could not be sent")
)
