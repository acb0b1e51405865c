package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"eventplanner/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// testNow is a fixed wall clock: Saturday 2026-10-17 09:00 UTC.
var testNow = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

func testClock() Clock { return FixedClock(testNow) }

// day returns the YYYY-MM-DD date offset days from testNow.
func day(offset int) string {
	return testNow.AddDate(0, 0, offset).Format(domain.DateLayout)
}

// fakeKV is a KVStore whose reads and writes can be made to fail.
type fakeKV struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
	setErr error
	sets   int
}

func newFakeKV() *fakeKV { return &fakeKV{data: map[string]string{}} }

func (f *fakeKV) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

var errQuotaExceeded = errors.New("quota exceeded")

func newTestStore(kv domain.KVStore) *eventStore {
	s := NewEventStore(kv, domain.DefaultStorageKey, discardLogger(), nil, testClock()).(*eventStore)
	return s
}

func validInput() domain.EventInput {
	return domain.EventInput{
		Title:       "Team Sync",
		Description: "Weekly bit",
		Date:        day(1),
		Time:        "14:30",
		Venue:       "HQ",
	}
}
