package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventplanner/internal/domain"
)

func TestTemplateRenderer_Invitation(t *testing.T) {
	r := NewTemplateRenderer()
	data := &domain.InvitationEmailData{
		Email:       "friend@example.com",
		InviterName: "Ada <Organizer>",
		EventTitle:  "Team Sync",
		EventDate:   "2026-10-18",
		EventTime:   "14:30",
		EventVenue:  "HQ",
		Message:     "Bring ideas",
	}

	subject, html, text, err := r.Render(InvitationTemplate, data)
	require.NoError(t, err)
	assert.Equal(t, "You're invited: Team Sync", subject)
	assert.Contains(t, text, "Ada <Organizer> has invited you to Team Sync.")
	assert.Contains(t, text, "2026-10-18 at 14:30")
	assert.Contains(t, text, "Bring ideas")
	assert.Contains(t, html, "Ada &lt;Organizer&gt;")
	assert.Contains(t, html, "<strong>Team Sync</strong>")
}

func TestTemplateRenderer_WithoutOptionalFields(t *testing.T) {
	r := NewTemplateRenderer()
	_, _, text, err := r.Render("invitation", &domain.InvitationEmailData{EventTitle: "Picnic"})
	require.NoError(t, err)
	assert.Contains(t, text, "You have been invited to Picnic.")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	_, _, _, err := NewTemplateRenderer().Render("welcome", nil)
	require.ErrorContains(t, err, `unknown email template "welcome"`)
}

func TestTemplateRenderer_MissingFieldFails(t *testing.T) {
	_, _, _, err := NewTemplateRenderer().Render(InvitationTemplate, map[string]string{"EventTitle": "Picnic"})
	require.ErrorContains(t, err, "render invitation")
}
