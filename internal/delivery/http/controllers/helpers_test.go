package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/domain"
	"eventplanner/internal/repository/memory"
	"eventplanner/internal/services"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var testNow = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

func testClock() services.Clock { return services.FixedClock(testNow) }

func day(offset int) string {
	return testNow.AddDate(0, 0, offset).Format(domain.DateLayout)
}

func newStore(t *testing.T) domain.EventStore {
	t.Helper()
	return services.NewEventStore(memory.NewKVRepository(), domain.DefaultStorageKey, testLogger, nil, testClock())
}

func seedEvent(t *testing.T, store domain.EventStore, title string, offset int, organizer string) *domain.Event {
	t.Helper()
	ev, err := store.Create(context.Background(), domain.EventInput{
		Title:       title,
		Description: "Something worth attending",
		Date:        day(offset),
		Time:        "18:00",
		Venue:       "Main hall",
	}, organizer)
	require.NoError(t, err)
	return ev
}

// newRequest builds a request acting as userID. body is JSON-encoded when non-nil.
func newRequest(t *testing.T, method, target, userID string, body any) *http.Request {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rdr)
	if userID != "" {
		req = req.WithContext(middleware.SetUserID(req.Context(), userID))
	}
	return req
}

// decode unmarshals the envelope and its data into dest (when non-nil).
func decode(t *testing.T, w *httptest.ResponseRecorder, dest any) *helpers.APIError {
	t.Helper()
	var env struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if dest != nil && env.Error == nil {
		require.NoError(t, json.Unmarshal(env.Data, dest))
	}
	return env.Error
}
