package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	texttemplate "text/template"

	"eventplanner/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// InvitationTemplate is the template set for event invitations: invitation_subject.txt,
// invitation.html and invitation.txt.
const InvitationTemplate = "invitation"

// templateSet is one email: a subject line plus html and plain text bodies.
type templateSet struct {
	subject *texttemplate.Template
	html    *template.Template
	text    *texttemplate.Template
}

type templateRenderer struct {
	sets map[string]*templateSet
}

// NewTemplateRenderer parses the embedded template sets once. It panics if an embedded template is
// malformed.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{
		sets: map[string]*templateSet{
			InvitationTemplate: mustParseSet(InvitationTemplate),
		},
	}
}

func mustParseSet(name string) *templateSet {
	parseText := func(file string) *texttemplate.Template {
		return texttemplate.Must(texttemplate.New(file).Option("missingkey=error").ParseFS(templateFS, "templates/"+file))
	}
	return &templateSet{
		subject: parseText(name + "_subject.txt"),
		html:    template.Must(template.New(name+".html").Option("missingkey=error").ParseFS(templateFS, "templates/"+name+".html")),
		text:    parseText(name + ".txt"),
	}
}

// Render executes the named template set with data. Unknown names are an error.
func (r *templateRenderer) Render(templateName string, data any) (subject, htmlBody, textBody string, err error) {
	set, ok := r.sets[templateName]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", templateName)
	}
	if subject, err = execute(set.subject, data); err != nil {
		return "", "", "", fmt.Errorf("render %s subject: %w", templateName, err)
	}
	if htmlBody, err = execute(set.html, data); err != nil {
		return "", "", "", fmt.Errorf("render %s html: %w", templateName, err)
	}
	if textBody, err = execute(set.text, data); err != nil {
		return "", "", "", fmt.Errorf("render %s text: %w", templateName, err)
	}
	return strings.TrimSpace(subject), htmlBody, textBody, nil
}

// executor is satisfied by both text and html templates.
type executor interface {
	Execute(w io.Writer, data any) error
}

func execute(t executor, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
