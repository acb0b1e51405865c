package app

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventplanner/config"
	"eventplanner/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.Driver = driver
	cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "events.db")
	cfg.Email.SimulatedDelay = 0
	return cfg
}

func TestNew_SQLitePersistsAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.DriverSQLite)

	a, err := New(ctx, cfg, testLogger())
	require.NoError(t, err)
	ev, err := a.Store.Create(ctx, domain.EventInput{
		Title:       "Team Sync",
		Description: "Weekly bit",
		Date:        a.Clock.Now().AddDate(0, 0, 1).Format(domain.DateLayout),
		Time:        "14:30",
		Venue:       "HQ",
	}, cfg.Session.UserID)
	require.NoError(t, err)
	_, err = a.RSVP.ToggleRSVP(ctx, ev.ID, cfg.Session.UserID)
	require.NoError(t, err)
	require.NoError(t, a.Close())

	b, err := New(ctx, cfg, testLogger())
	require.NoError(t, err)
	defer b.Close()
	got, err := b.Store.FindByID(ev.ID)
	require.NoError(t, err)
	require.Len(t, got.Guests, 1)
	assert.Equal(t, "Current User", got.Guests[0].Name)
	assert.Equal(t, domain.RSVPConfirmed, got.Guests[0].Status)
}

func TestNew_SimulatedInvitation(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, testConfig(t, config.DriverMemory), testLogger())
	require.NoError(t, err)
	defer a.Close()

	ev, err := a.Store.Create(ctx, domain.EventInput{
		Title:       "Launch",
		Description: "Product launch party",
		Date:        a.Clock.Now().Format(domain.DateLayout),
		Time:        "23:59",
		Venue:       "Roof",
	}, a.Config.Session.UserID)
	require.NoError(t, err)

	require.NoError(t, a.Invitations.SendInvitation(ctx, ev.ID, "friend@example.com", "Come along"))
	require.ErrorIs(t, a.Invitations.SendInvitation(ctx, ev.ID, "foo@bar", ""), domain.ErrInvalidEmail)
}

func TestNew_TokensOnlyWithSecret(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.DriverMemory)

	a, err := New(ctx, cfg, testLogger())
	require.NoError(t, err)
	assert.Nil(t, a.Verifier)
	assert.Nil(t, a.Issuer)

	cfg.JWTSecret = "secret"
	b, err := New(ctx, cfg, testLogger())
	require.NoError(t, err)
	token, err := b.Issuer.Issue("alice", "Alice", time.Minute)
	require.NoError(t, err)
	userID, err := b.Verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", userID)
}

func TestOpenKV_UnknownDriver(t *testing.T) {
	_, _, err := OpenKV(context.Background(), config.StorageConfig{Driver: "redis"}, testLogger())
	require.Error(t, err)
}
