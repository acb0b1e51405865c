package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventplanner/internal/domain"
	"eventplanner/internal/metrics"
	"eventplanner/internal/repository/memory"
)

type sentMail struct {
	to, subject, html, text string
}

type fakeMailer struct {
	sent    []sentMail
	failFor map[string]bool
}

func (m *fakeMailer) Send(_ context.Context, to, subject, html, text string) error {
	if m.failFor[to] {
		return errors.New("smtp rejected")
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, html: html, text: text})
	return nil
}

type fakeRenderer struct {
	lastData *domain.InvitationEmailData
	err      error
}

func (r *fakeRenderer) Render(name string, data any) (string, string, string, error) {
	if r.err != nil {
		return "", "", "", r.err
	}
	d := data.(*domain.InvitationEmailData)
	r.lastData = d
	return name + ": " + d.EventTitle, "<p>" + d.Message + "</p>", d.Message, nil
}

func newInvitationFixture(t *testing.T, mailer domain.Mailer, renderer domain.EmailTemplateRenderer, m *metrics.Metrics) (domain.InvitationService, *domain.Event) {
	t.Helper()
	store := newTestStore(memory.NewKVRepository())
	ev, err := store.Create(context.Background(), validInput(), "user123")
	require.NoError(t, err)
	return NewInvitationService(store, mailer, renderer, "Current User", discardLogger(), m, 0), ev
}

func TestInvitationService_SendInvitation(t *testing.T) {
	mailer := &fakeMailer{}
	renderer := &fakeRenderer{}
	svc, ev := newInvitationFixture(t, mailer, renderer, nil)

	err := svc.SendInvitation(context.Background(), ev.ID, "  friend@example.com ", "See you there")
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "friend@example.com", mailer.sent[0].to)
	assert.Equal(t, "invitation: Team Sync", mailer.sent[0].subject)
	assert.Equal(t, &domain.InvitationEmailData{
		Email:       "friend@example.com",
		InviterName: "Current User",
		EventTitle:  "Team Sync",
		EventDate:   ev.Date,
		EventTime:   "14:30",
		EventVenue:  "HQ",
		Message:     "See you there",
	}, renderer.lastData)
}

func TestInvitationService_InvalidEmailNeverReachesMailer(t *testing.T) {
	for _, addr := range []string{"foo@bar", "", "no-at.example.com", "a b@c.de", "@example.com"} {
		t.Run(addr, func(t *testing.T) {
			mailer := &fakeMailer{}
			svc, ev := newInvitationFixture(t, mailer, &fakeRenderer{}, nil)

			err := svc.SendInvitation(context.Background(), ev.ID, addr, "hi")
			require.ErrorIs(t, err, domain.ErrInvalidEmail)
			assert.Empty(t, mailer.sent)
		})
	}
}

func TestInvitationService_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown event", func(t *testing.T) {
		svc, _ := newInvitationFixture(t, &fakeMailer{}, &fakeRenderer{}, nil)
		err := svc.SendInvitation(ctx, "missing", "friend@example.com", "")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("mailer failure", func(t *testing.T) {
		m := metrics.New(prometheus.NewRegistry())
		mailer := &fakeMailer{failFor: map[string]bool{"friend@example.com": true}}
		svc, ev := newInvitationFixture(t, mailer, &fakeRenderer{}, m)
		err := svc.SendInvitation(ctx, ev.ID, "friend@example.com", "")
		require.ErrorIs(t, err, domain.ErrInvitationFailed)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Invitations.WithLabelValues("failed")))
	})

	t.Run("render failure", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc, ev := newInvitationFixture(t, mailer, &fakeRenderer{err: errors.New("bad template")}, nil)
		err := svc.SendInvitation(ctx, ev.ID, "friend@example.com", "")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrInvitationFailed)
		assert.Empty(t, mailer.sent)
	})
}

func TestInvitationService_SendInvitations(t *testing.T) {
	mailer := &fakeMailer{failFor: map[string]bool{"down@example.com": true}}
	svc, ev := newInvitationFixture(t, mailer, &fakeRenderer{}, nil)

	sent, failed, err := svc.SendInvitations(context.Background(), ev.ID,
		[]string{"a@example.com", "", "foo@bar", "down@example.com", " b@example.org "}, "join us")
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, []string{"foo@bar", "down@example.com"}, failed)
	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "b@example.org", mailer.sent[1].to)

	_, _, err = svc.SendInvitations(context.Background(), "missing", []string{"a@example.com"}, "")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("local@domain.tld"))
	assert.True(t, ValidEmail("first.last+tag@sub.example.co"))
	assert.False(t, ValidEmail("foo@bar"))
	assert.False(t, ValidEmail("foo@@bar.com"))
}
