package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventplanner/internal/adapters/ical"
	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
	"eventplanner/internal/services"
)

// CreateEventRequest is the request body for POST /events. Field rules are enforced by the store
// so every violation is reported at once.
type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Venue       string `json:"venue"`
	Duration    string `json:"duration,omitempty"`
}

func (c CreateEventRequest) input() domain.EventInput {
	return domain.EventInput{
		Title:       c.Title,
		Description: c.Description,
		Date:        c.Date,
		Time:        c.Time,
		Venue:       c.Venue,
		Duration:    c.Duration,
	}
}

// EventSuccessResponse is the success response envelope for endpoints returning a single event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEventsResponse is the data payload for GET /events (200).
type ListEventsResponse struct {
	Items      []*domain.Event        `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListEventsSuccessResponse is the success response envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  ListEventsResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// EventDetail is the data payload for GET /events/{eventID}.
type EventDetail struct {
	Event          *domain.Event     `json:"event"`
	MyStatus       domain.RSVPStatus `json:"myStatus"`
	ConfirmedCount int               `json:"confirmedCount"`
}

// EventDetailSuccessResponse is the success response envelope for GET /events/{eventID} (200).
type EventDetailSuccessResponse struct {
	Data  EventDetail       `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CountdownSuccessResponse is the success response envelope for GET /events/{eventID}/countdown (200).
type CountdownSuccessResponse struct {
	Data  domain.Countdown  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ClearEventsResponse is the data payload for DELETE /events (200).
type ClearEventsResponse struct {
	Removed int `json:"removed"`
}

type EventController struct {
	Logger *slog.Logger
	Store  domain.EventStore
	Clock  services.Clock
}

func NewEventController(logger *slog.Logger, store domain.EventStore, clock services.Clock) *EventController {
	return &EventController{
		Logger: logger,
		Store:  store,
		Clock:  clock,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Returns events filtered by a case-insensitive search over title, description and venue, and by period, sorted by date ascending.
// @Tags events
// @Produce json
// @Param search query string false "Substring to match (case-insensitive)"
// @Param period query string false "upcoming, today or this-week"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains items and pagination"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	period, err := domain.ParsePeriod(q.Get("period"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	params := helpers.ParsePagination(r)

	matched := services.FilterAndSort(c.Store.List(), q.Get("search"), period, c.Clock.Now())
	meta := helpers.NewPaginationMeta(params.Page, params.PageSize, len(matched))
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{
		Items:      helpers.Page(matched, params),
		Pagination: meta,
	})
}

// CreateEvent godoc
// @Summary Create an event
// @Description Validates and stores a new event organised by the acting user. Duration defaults to "2 hours". Every field violation is listed in error.fields.
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}

	event, err := c.Store.Create(r.Context(), req.input(), userID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEvent godoc
// @Summary Get an event
// @Description Returns the event with the acting user's RSVP status (pending when they have not responded) and the number of confirmed guests.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventDetailSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathEventID(w, r)
	if !ok {
		return
	}
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}

	event, err := c.Store.FindByID(eventID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventDetail{
		Event:          event,
		MyStatus:       domain.StatusFor(event, userID),
		ConfirmedCount: len(event.ConfirmedGuests()),
	})
}

// GetCountdown godoc
// @Summary Time until an event starts
// @Description Returns the days, hours, minutes and seconds until the event starts, or started=true once it has begun.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.CountdownSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (unreadable start)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/countdown [get]
func (c *EventController) GetCountdown(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathEventID(w, r)
	if !ok {
		return
	}
	event, err := c.Store.FindByID(eventID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	countdown, err := services.Remaining(event, c.Clock.Now())
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, countdown)
}

// ExportICS godoc
// @Summary Export an event as iCalendar
// @Description Returns a text/calendar document with one VEVENT; confirmed guests are listed as attendees.
// @Tags events
// @Produce text/calendar
// @Param eventID path string true "Event ID"
// @Success 200 {string} string "VCALENDAR document"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (unreadable start)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/ics [get]
func (c *EventController) ExportICS(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathEventID(w, r)
	if !ok {
		return
	}
	event, err := c.Store.FindByID(eventID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	calendar, skipped := ical.Export([]*domain.Event{event}, c.Clock.Now().Location())
	if len(skipped) > 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "event start time is unreadable")
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+safeFilename(event.Title)+`.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(calendar))
}

// ClearEvents godoc
// @Summary Remove every event
// @Description Clears the store and persists the empty collection.
// @Tags events
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.removed is the number of events deleted"
// @Router /events [delete]
func (c *EventController) ClearEvents(w http.ResponseWriter, r *http.Request) {
	removed := c.Store.Clear(r.Context())
	c.Logger.InfoContext(r.Context(), "events cleared", "removed", removed)
	helpers.WriteJSONSuccess(w, http.StatusOK, ClearEventsResponse{Removed: removed})
}

// safeFilename keeps letters, digits, dashes and underscores; everything else becomes a dash.
func safeFilename(title string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '-'
	}, strings.TrimSpace(title))
	if name == "" {
		return "event"
	}
	return name
}
