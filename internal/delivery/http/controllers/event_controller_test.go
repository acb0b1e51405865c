package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/domain"
)

func TestEventController_CreateEvent(t *testing.T) {
	store := newStore(t)
	ctrl := NewEventController(testLogger, store, testClock())

	body := CreateEventRequest{Title: "Team Sync", Description: "Weekly bit", Date: day(1), Time: "14:30", Venue: "HQ"}
	w := httptest.NewRecorder()
	ctrl.CreateEvent(w, newRequest(t, http.MethodPost, "/events", "user123", body))

	require.Equal(t, http.StatusCreated, w.Code)
	var ev domain.Event
	require.Nil(t, decode(t, w, &ev))
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, "user123", ev.Organizer)
	assert.Equal(t, domain.DefaultDuration, ev.Duration)
	assert.NotNil(t, ev.Guests)
	assert.Len(t, store.List(), 1)
}

func TestEventController_CreateEventErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		userID     string
		wantStatus int
		wantCode   string
		wantFields []string
	}{
		{
			name:       "field violations",
			body:       `{"title":"ab","description":"short","date":"` + day(-1) + `","time":"25:00","venue":""}`,
			userID:     "user123",
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeValidation,
			wantFields: []string{"title", "description", "date", "time", "venue"},
		},
		{
			name:       "malformed json",
			body:       `{"title":`,
			userID:     "user123",
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "unknown field",
			body:       `{"title":"Team Sync","owner":"me"}`,
			userID:     "user123",
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "no acting user",
			body:       `{"title":"Team Sync","description":"Weekly bit","date":"` + day(1) + `","time":"14:30","venue":"HQ"}`,
			wantStatus: http.StatusUnauthorized,
			wantCode:   helpers.ErrCodeUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t)
			ctrl := NewEventController(testLogger, store, testClock())
			req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(tt.body))
			if tt.userID != "" {
				req = req.WithContext(middleware.SetUserID(req.Context(), tt.userID))
			}
			w := httptest.NewRecorder()
			ctrl.CreateEvent(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			apiErr := decode(t, w, nil)
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			if tt.wantFields != nil {
				got := make([]string, 0, len(apiErr.Fields))
				for _, f := range apiErr.Fields {
					got = append(got, f.Field)
				}
				assert.Equal(t, tt.wantFields, got)
			}
			assert.Empty(t, store.List())
		})
	}
}

func TestEventController_ListEvents(t *testing.T) {
	store := newStore(t)
	seedEvent(t, store, "Garden Party", 5, "user123")
	seedEvent(t, store, "Standup", 0, "user123")
	seedEvent(t, store, "Conference", 30, "other")
	ctrl := NewEventController(testLogger, store, testClock())

	tests := []struct {
		name       string
		query      string
		wantTitles []string
		wantTotal  int
	}{
		{"all sorted by date", "", []string{"Standup", "Garden Party", "Conference"}, 3},
		{"this week", "?period=this-week", []string{"Standup", "Garden Party"}, 2},
		{"search", "?search=PARTY", []string{"Garden Party"}, 1},
		{"second page", "?page=2&page_size=2", []string{"Conference"}, 3},
		{"past the end", "?page=5&page_size=2", []string{}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctrl.ListEvents(w, newRequest(t, http.MethodGet, "/events"+tt.query, "user123", nil))

			require.Equal(t, http.StatusOK, w.Code)
			var resp ListEventsResponse
			require.Nil(t, decode(t, w, &resp))
			titles := make([]string, 0, len(resp.Items))
			for _, e := range resp.Items {
				titles = append(titles, e.Title)
			}
			assert.Equal(t, tt.wantTitles, titles)
			assert.Equal(t, tt.wantTotal, resp.Pagination.Total)
		})
	}

	t.Run("unknown period", func(t *testing.T) {
		w := httptest.NewRecorder()
		ctrl.ListEvents(w, newRequest(t, http.MethodGet, "/events?period=someday", "user123", nil))
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEventController_GetEvent(t *testing.T) {
	store := newStore(t)
	ev := seedEvent(t, store, "Garden Party", 5, "user123")
	_, err := store.Update(context.Background(), ev.ID, func(e *domain.Event) error {
		e.Guests = append(e.Guests, domain.Guest{UserID: "alice", Name: "Alice", Status: domain.RSVPConfirmed, RSVPDate: testNow})
		return nil
	})
	require.NoError(t, err)
	ctrl := NewEventController(testLogger, store, testClock())

	t.Run("found", func(t *testing.T) {
		req := newRequest(t, http.MethodGet, "/events/"+ev.ID, "user123", nil)
		req.SetPathValue("eventID", ev.ID)
		w := httptest.NewRecorder()
		ctrl.GetEvent(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var detail EventDetail
		require.Nil(t, decode(t, w, &detail))
		assert.Equal(t, ev.ID, detail.Event.ID)
		assert.Equal(t, domain.RSVPPending, detail.MyStatus)
		assert.Equal(t, 1, detail.ConfirmedCount)
	})

	t.Run("not found", func(t *testing.T) {
		req := newRequest(t, http.MethodGet, "/events/missing", "user123", nil)
		req.SetPathValue("eventID", "missing")
		w := httptest.NewRecorder()
		ctrl.GetEvent(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, helpers.ErrCodeNotFound, decode(t, w, nil).Code)
	})
}

func TestEventController_GetCountdown(t *testing.T) {
	store := newStore(t)
	ev := seedEvent(t, store, "Garden Party", 2, "user123")
	ctrl := NewEventController(testLogger, store, testClock())

	req := newRequest(t, http.MethodGet, "/events/"+ev.ID+"/countdown", "user123", nil)
	req.SetPathValue("eventID", ev.ID)
	w := httptest.NewRecorder()
	ctrl.GetCountdown(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var c domain.Countdown
	require.Nil(t, decode(t, w, &c))
	assert.Equal(t, domain.Countdown{Days: 2, Hours: 9}, c)
}

func TestEventController_ExportICS(t *testing.T) {
	store := newStore(t)
	ev := seedEvent(t, store, "Garden Party", 2, "user123")
	ctrl := NewEventController(testLogger, store, testClock())

	req := newRequest(t, http.MethodGet, "/events/"+ev.ID+"/ics", "user123", nil)
	req.SetPathValue("eventID", ev.ID)
	w := httptest.NewRecorder()
	ctrl.ExportICS(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Garden-Party.ics")
	body := w.Body.String()
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, "SUMMARY:Garden Party")
	assert.Contains(t, body, ev.ID+"@eventplanner")
}

func TestEventController_ClearEvents(t *testing.T) {
	store := newStore(t)
	seedEvent(t, store, "Garden Party", 2, "user123")
	seedEvent(t, store, "Standup", 0, "user123")
	ctrl := NewEventController(testLogger, store, testClock())

	w := httptest.NewRecorder()
	ctrl.ClearEvents(w, newRequest(t, http.MethodDelete, "/events", "user123", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp ClearEventsResponse
	require.Nil(t, decode(t, w, &resp))
	assert.Equal(t, 2, resp.Removed)
	assert.Empty(t, store.List())
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "Team-Sync--Q4-", safeFilename("Team Sync (Q4)"))
	assert.Equal(t, "event", safeFilename("  "))
}
