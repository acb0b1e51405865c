package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"eventplanner/internal/domain"
	"eventplanner/internal/metrics"
)

type eventStore struct {
	mu      sync.RWMutex
	kv      domain.KVStore
	key     string
	logger  *slog.Logger
	metrics *metrics.Metrics
	clock   Clock
	newID   func() string
	events  []*domain.Event
}

// NewEventStore creates an empty EventStore persisting under key in kv. Call Load before use to pick
// up previously saved events. m may be nil.
func NewEventStore(kv domain.KVStore, key string, logger *slog.Logger, m *metrics.Metrics, clock Clock) domain.EventStore {
	if key == "" {
		key = domain.DefaultStorageKey
	}
	return &eventStore{
		kv:      kv,
		key:     key,
		logger:  logger,
		metrics: m,
		clock:   clock,
		newID:   uuid.NewString,
		events:  []*domain.Event{},
	}
}

// Load replaces the in-memory list with the persisted one. Unreadable data is logged and discarded;
// Load never fails.
func (s *eventStore) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = []*domain.Event{}
	defer func() { s.metrics.SetStoredEvents(len(s.events)) }()

	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.logger.ErrorContext(ctx, "load events failed, starting empty", "key", s.key, "err", err)
		s.metrics.LoadReset()
		return
	}
	if !ok {
		s.logger.DebugContext(ctx, "no saved events", "key", s.key)
		return
	}

	var events []*domain.Event
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		s.logger.WarnContext(ctx, "saved events are malformed, starting empty", "key", s.key, "err", err)
		s.metrics.LoadReset()
		return
	}
	for _, e := range events {
		if e == nil {
			continue
		}
		if e.Guests == nil {
			e.Guests = []domain.Guest{}
		}
		s.events = append(s.events, e)
	}
	s.logger.DebugContext(ctx, "events loaded", "key", s.key, "count", len(s.events))
}

// Save writes the full event list. Failures are logged and returned but never retried; the in-memory
// list stays authoritative.
func (s *eventStore) Save(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked(ctx)
}

func (s *eventStore) saveLocked(ctx context.Context) error {
	s.metrics.SetStoredEvents(len(s.events))
	raw, err := json.Marshal(s.events)
	if err != nil {
		s.logger.ErrorContext(ctx, "encode events failed", "err", err)
		s.metrics.SaveFailed()
		return fmt.Errorf("encode events: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(raw)); err != nil {
		s.logger.ErrorContext(ctx, "save events failed", "key", s.key, "err", err)
		s.metrics.SaveFailed()
		return fmt.Errorf("save events: %w", err)
	}
	return nil
}

func (s *eventStore) Create(ctx context.Context, input domain.EventInput, organizer string) (*domain.Event, error) {
	in := normalizeEventInput(input)
	if err := validateEventInput(in, s.clock.Today()); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	event := &domain.Event{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Time:        in.Time,
		Venue:       in.Venue,
		Duration:    in.Duration,
		Organizer:   organizer,
		Guests:      []domain.Guest{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	// a failed write is already logged; the event stays in memory for the session
	_ = s.saveLocked(ctx)

	s.metrics.EventCreated()
	s.logger.InfoContext(ctx, "event created", "event_id", event.ID, "organizer", organizer)
	return event.Clone(), nil
}

func (s *eventStore) FindByID(id string) (*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e := s.findLocked(id); e != nil {
		return e.Clone(), nil
	}
	return nil, domain.ErrNotFound
}

func (s *eventStore) findLocked(id string) *domain.Event {
	for _, e := range s.events {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// List returns a copy of every event in creation order.
func (s *eventStore) List() []*domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Event, len(s.events))
	for i, e := range s.events {
		out[i] = e.Clone()
	}
	return out
}

// Update applies fn to a copy of the event and, when fn succeeds, stores the copy and persists.
func (s *eventStore) Update(ctx context.Context, id string, fn func(*domain.Event) error) (*domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.events {
		if e.ID != id {
			continue
		}
		updated := e.Clone()
		if err := fn(updated); err != nil {
			return nil, err
		}
		// id and organizer are immutable
		updated.ID = e.ID
		updated.Organizer = e.Organizer
		s.events[i] = updated
		_ = s.saveLocked(ctx)
		return updated.Clone(), nil
	}
	return nil, domain.ErrNotFound
}

// Clear removes every event and persists the empty list.
func (s *eventStore) Clear(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.events)
	s.events = []*domain.Event{}
	_ = s.saveLocked(ctx)
	s.logger.InfoContext(ctx, "events cleared", "count", n)
	return n
}
