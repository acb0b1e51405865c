package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
)

// SendInvitationsRequest is the request body for POST /events/{eventID}/invitations.
// Emails holds one or more addresses separated by commas or whitespace.
type SendInvitationsRequest struct {
	Emails  string `json:"emails"`
	Message string `json:"message,omitempty"`
}

// Validate implements helpers.Validator.
func (s *SendInvitationsRequest) Validate() []string {
	if strings.TrimSpace(s.Emails) == "" {
		return []string{"emails is required"}
	}
	return nil
}

// splitEmails splits on commas and whitespace and drops duplicates, keeping first-seen order.
// Addresses are not validated here; the invitation service reports bad ones.
func splitEmails(raw string) []string {
	parts := strings.Fields(strings.ReplaceAll(raw, ",", " "))
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		key := strings.ToLower(p)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

// SendInvitationsResponse is the data payload for POST /events/{eventID}/invitations (200).
type SendInvitationsResponse struct {
	Sent   int      `json:"sent"`
	Failed []string `json:"failed"`
}

// SendInvitationsSuccessResponse is the success response envelope for POST /events/{eventID}/invitations (200).
type SendInvitationsSuccessResponse struct {
	Data  SendInvitationsResponse `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

type InvitationController struct {
	Logger  *slog.Logger
	Service domain.InvitationService
}

func NewInvitationController(logger *slog.Logger, svc domain.InvitationService) *InvitationController {
	return &InvitationController{
		Logger:  logger,
		Service: svc,
	}
}

// SendInvitations godoc
// @Summary Invite people to an event by email
// @Description A single address is sent directly and its failure is reported as the response error (invalid_email or send_failed). Several addresses are sent one by one; data.failed lists the ones that were invalid or could not be delivered.
// @Tags invitations
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param body body controllers.SendInvitationsRequest true "Addresses and optional message"
// @Success 200 {object} controllers.SendInvitationsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or invalid_email"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 502 {object} helpers.APIResponse "error.code: send_failed"
// @Router /events/{eventID}/invitations [post]
func (c *InvitationController) SendInvitations(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathEventID(w, r)
	if !ok {
		return
	}
	var req SendInvitationsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	emails := splitEmails(req.Emails)
	if len(emails) == 1 {
		if err := c.Service.SendInvitation(r.Context(), eventID, emails[0], req.Message); err != nil {
			writeServiceError(w, r, c.Logger, err)
			return
		}
		helpers.WriteJSONSuccess(w, http.StatusOK, SendInvitationsResponse{Sent: 1, Failed: []string{}})
		return
	}

	sent, failed, err := c.Service.SendInvitations(r.Context(), eventID, emails, req.Message)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	if failed == nil {
		failed = []string{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SendInvitationsResponse{Sent: sent, Failed: failed})
}
