package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventplanner/internal/domain"
)

func TestRemaining(t *testing.T) {
	tests := []struct {
		name  string
		event *domain.Event
		want  domain.Countdown
	}{
		{
			name:  "days ahead",
			event: &domain.Event{Date: day(2), Time: "10:30"},
			want:  domain.Countdown{Days: 2, Hours: 1, Minutes: 30},
		},
		{
			name:  "starting now",
			event: &domain.Event{Date: day(0), Time: "09:00"},
			want:  domain.Countdown{Started: true},
		},
		{
			name:  "one minute out",
			event: &domain.Event{Date: day(0), Time: "09:01"},
			want:  domain.Countdown{Minutes: 1},
		},
		{
			name:  "already started",
			event: &domain.Event{Date: day(-1), Time: "20:00"},
			want:  domain.Countdown{Started: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Remaining(tt.event, testNow)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemaining_UnreadableStart(t *testing.T) {
	_, err := Remaining(&domain.Event{ID: "e1", Date: day(1), Time: "noon"}, testNow)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCountdownTimer_TicksUntilStopped(t *testing.T) {
	timer := NewCountdownTimer(testClock(), 5*time.Millisecond, discardLogger())
	event := &domain.Event{ID: "e1", Date: day(1), Time: "09:00"}

	var ticks atomic.Int32
	got := make(chan domain.Countdown, 1)
	require.NoError(t, timer.Start(context.Background(), event, func(c domain.Countdown) {
		if ticks.Add(1) == 1 {
			got <- c
		}
	}))

	assert.Equal(t, domain.Countdown{Days: 1}, <-got)
	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)
	require.True(t, timer.Active())

	timer.Stop()
	require.False(t, timer.Active())
	stopped := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, ticks.Load())

	// stopping twice is harmless
	timer.Stop()
}

func TestCountdownTimer_StartReplacesPrevious(t *testing.T) {
	timer := NewCountdownTimer(testClock(), 5*time.Millisecond, discardLogger())
	defer timer.Stop()

	var first, second atomic.Int32
	require.NoError(t, timer.Start(context.Background(), &domain.Event{ID: "a", Date: day(1), Time: "10:00"}, func(domain.Countdown) {
		first.Add(1)
	}))
	require.Eventually(t, func() bool { return first.Load() >= 1 }, time.Second, time.Millisecond)

	require.NoError(t, timer.Start(context.Background(), &domain.Event{ID: "b", Date: day(2), Time: "10:00"}, func(domain.Countdown) {
		second.Add(1)
	}))
	frozen := first.Load()
	require.Eventually(t, func() bool { return second.Load() >= 3 }, time.Second, time.Millisecond)
	assert.Equal(t, frozen, first.Load())
}

func TestCountdownTimer_ContextCancel(t *testing.T) {
	timer := NewCountdownTimer(testClock(), 5*time.Millisecond, discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, timer.Start(ctx, &domain.Event{ID: "a", Date: day(1), Time: "10:00"}, func(domain.Countdown) {}))

	cancel()
	require.Eventually(t, func() bool { return !timer.Active() }, time.Second, time.Millisecond)
	timer.Stop()
}

func TestCountdownTimer_NilLoggerStops(t *testing.T) {
	timer := NewCountdownTimer(testClock(), 5*time.Millisecond, nil)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, timer.Start(ctx, &domain.Event{ID: "a", Date: day(1), Time: "10:00"}, func(domain.Countdown) {}))

	cancel()
	require.Eventually(t, func() bool { return !timer.Active() }, time.Second, time.Millisecond)

	require.NoError(t, timer.Start(context.Background(), &domain.Event{ID: "b", Date: day(1), Time: "10:00"}, func(domain.Countdown) {}))
	assert.NotPanics(t, timer.Stop)
	assert.False(t, timer.Active())
}

func TestCountdownTimer_RejectsUnreadableEvent(t *testing.T) {
	timer := NewCountdownTimer(testClock(), 0, discardLogger())
	err := timer.Start(context.Background(), &domain.Event{ID: "a", Date: "soon"}, func(domain.Countdown) {})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.False(t, timer.Active())
}
