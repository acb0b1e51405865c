package controllers

import (
	"log/slog"
	"net/http"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
)

// SetRSVPRequest is the request body for PUT /events/{eventID}/rsvp.
type SetRSVPRequest struct {
	Status string `json:"status"`
}

// Validate implements helpers.Validator.
func (s *SetRSVPRequest) Validate() []string {
	if _, err := domain.ParseRSVPStatus(s.Status); err != nil {
		return []string{"status must be confirmed or declined"}
	}
	return nil
}

// RSVPResponse is the data payload for the RSVP endpoints.
type RSVPResponse struct {
	Event  *domain.Event     `json:"event"`
	Status domain.RSVPStatus `json:"status"`
}

// RSVPSuccessResponse is the success response envelope for the RSVP endpoints (200).
type RSVPSuccessResponse struct {
	Data  RSVPResponse      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type RSVPController struct {
	Logger  *slog.Logger
	Service domain.RSVPService
}

func NewRSVPController(logger *slog.Logger, svc domain.RSVPService) *RSVPController {
	return &RSVPController{
		Logger:  logger,
		Service: svc,
	}
}

// SetRSVP godoc
// @Summary Record the acting user's RSVP
// @Description Sets the acting user's status to confirmed or declined. An existing response is updated in place; otherwise the user is appended to the guest list.
// @Tags rsvp
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param body body controllers.SetRSVPRequest true "confirmed or declined"
// @Success 200 {object} controllers.RSVPSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/rsvp [put]
func (c *RSVPController) SetRSVP(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathEventID(w, r)
	if !ok {
		return
	}
	var req SetRSVPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}

	status, _ := domain.ParseRSVPStatus(req.Status)
	event, err := c.Service.SetRSVP(r.Context(), eventID, userID, status)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RSVPResponse{Event: event, Status: domain.StatusFor(event, userID)})
}

// ToggleRSVP godoc
// @Summary Toggle the acting user's RSVP
// @Description No response becomes confirmed; confirmed and declined swap.
// @Tags rsvp
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.RSVPSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/rsvp/toggle [post]
func (c *RSVPController) ToggleRSVP(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathEventID(w, r)
	if !ok {
		return
	}
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}

	event, err := c.Service.ToggleRSVP(r.Context(), eventID, userID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RSVPResponse{Event: event, Status: domain.StatusFor(event, userID)})
}
