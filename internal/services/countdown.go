package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"eventplanner/internal/domain"
)

// CountdownInterval is how often a running CountdownTimer recomputes.
const CountdownInterval = time.Second

// Remaining returns the time left until the event starts, reading Date and Time in now's location.
func Remaining(e *domain.Event, now time.Time) (domain.Countdown, error) {
	start, err := e.StartsAt(now.Location())
	if err != nil {
		return domain.Countdown{}, fmt.Errorf("%w: event %s has an unreadable start: %v", domain.ErrInvalidInput, e.ID, err)
	}
	diff := start.Sub(now)
	if diff <= 0 {
		return domain.Countdown{Started: true}, nil
	}
	total := int64(diff / time.Second)
	return domain.Countdown{
		Days:    int(total / 86400),
		Hours:   int(total % 86400 / 3600),
		Minutes: int(total % 3600 / 60),
		Seconds: int(total % 60),
	}, nil
}

// CountdownTimer runs at most one periodic countdown at a time. Starting a new countdown cancels the
// previous one, and Stop must be called when the view showing it goes away.
type CountdownTimer struct {
	clock    Clock
	interval time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewCountdownTimer returns a stopped timer. interval <= 0 means CountdownInterval and a nil logger
// means slog.Default().
func NewCountdownTimer(clock Clock, interval time.Duration, logger *slog.Logger) *CountdownTimer {
	if interval <= 0 {
		interval = CountdownInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CountdownTimer{clock: clock, interval: interval, logger: logger}
}

// Start calls fn right away and then once per interval with the event's countdown, until ctx is done
// or Stop or Start is called. The event is copied; fn must not call Stop or Start.
func (t *CountdownTimer) Start(ctx context.Context, e *domain.Event, fn func(domain.Countdown)) error {
	event := e.Clone()
	first, err := Remaining(event, t.clock.Now())
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	t.cancel = cancel
	t.done = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		fn(first)
		for {
			select {
			case <-ctx.Done():
				t.logger.Debug("countdown stopped", "event_id", event.ID)
				return
			case <-ticker.C:
				c, err := Remaining(event, t.clock.Now())
				if err != nil {
					return
				}
				fn(c)
			}
		}
	}()
	return nil
}

// Stop cancels the running countdown, if any, and waits for it to exit. It is safe to call repeatedly.
func (t *CountdownTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

// Active reports whether a countdown is currently running.
func (t *CountdownTimer) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done == nil {
		return false
	}
	select {
	case <-t.done:
		return false
	default:
		return true
	}
}

func (t *CountdownTimer) stopLocked() {
	if t.cancel == nil {
		return
	}
	t.cancel()
	<-t.done
	t.cancel = nil
	t.done = nil
}
