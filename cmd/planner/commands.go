package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"eventplanner/internal/adapters/dateparse"
	"eventplanner/internal/adapters/ical"
	"eventplanner/internal/app"
	"eventplanner/internal/domain"
	"eventplanner/internal/render"
	"eventplanner/internal/services"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %v", errUsage, fs.Name(), err)
	}
	return nil
}

// resolveEvent finds an event by id or by a unique id prefix.
func resolveEvent(a *app.App, ref string) (*domain.Event, error) {
	if ev, err := a.Store.FindByID(ref); err == nil {
		return ev, nil
	}
	var match *domain.Event
	for _, e := range a.Store.List() {
		if !strings.HasPrefix(e.ID, ref) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("%w: id prefix %q is ambiguous", domain.ErrInvalidInput, ref)
		}
		match = e
	}
	if match == nil {
		return nil, fmt.Errorf("event %q: %w", ref, domain.ErrNotFound)
	}
	return match, nil
}

func oneEventArg(a *app.App, fs *flag.FlagSet) (*domain.Event, error) {
	if fs.NArg() < 1 {
		return nil, fmt.Errorf("%w: %s needs an event id", errUsage, fs.Name())
	}
	return resolveEvent(a, fs.Arg(0))
}

func cmdList(_ context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlagSet("list")
	search := fs.String("search", "", "substring of title, description or venue")
	period := fs.String("period", "", "upcoming, today or this-week")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	p, err := domain.ParsePeriod(*period)
	if err != nil {
		return err
	}
	events := services.FilterAndSort(a.Store.List(), *search, p, a.Clock.Now())
	return render.Events(out, events, a.Config.Session.UserID)
}

func cmdCreate(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlagSet("create")
	var in domain.EventInput
	file := fs.String("file", "", "YAML file holding the event fields")
	fs.StringVar(&in.Title, "title", "", "event title")
	fs.StringVar(&in.Description, "description", "", "event description")
	fs.StringVar(&in.Date, "date", "", "YYYY-MM-DD")
	fs.StringVar(&in.Time, "time", "", "HH:MM (24-hour)")
	fs.StringVar(&in.Venue, "venue", "", "where it happens")
	fs.StringVar(&in.Duration, "duration", "", `free text, default "`+domain.DefaultDuration+`"`)
	when := fs.String("when", "", `natural language start, e.g. "next friday 7pm"`)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(data, &in); err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, *file, err)
		}
	}
	if *when != "" {
		res, err := dateparse.New().Parse(*when, a.Clock.Now())
		if err != nil {
			return err
		}
		in.Date = res.Date
		if res.HasTime || in.Time == "" {
			in.Time = res.Time
		}
	}

	ev, err := a.Store.Create(ctx, in, a.Config.Session.UserID)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			for _, f := range verr.Fields {
				fmt.Fprintf(out, "  %s: %s\n", f.Field, f.Message)
			}
		}
		return err
	}
	fmt.Fprintf(out, "Created %q (%s) on %s at %s\n", ev.Title, ev.ID, ev.Date, ev.Time)
	return nil
}

func cmdShow(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlagSet("show")
	watch := fs.Bool("watch", false, "keep the countdown running until interrupted")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	ev, err := oneEventArg(a, fs)
	if err != nil {
		return err
	}

	var countdown *domain.Countdown
	if c, err := services.Remaining(ev, a.Clock.Now()); err == nil {
		countdown = &c
	}
	if err := render.EventDetails(out, ev, a.Config.Session.UserID, countdown); err != nil {
		return err
	}
	if !*watch {
		return nil
	}

	timer := services.NewCountdownTimer(a.Clock, services.CountdownInterval, a.Logger)
	defer timer.Stop()
	done := make(chan struct{})
	err = timer.Start(ctx, ev, func(c domain.Countdown) {
		fmt.Fprintf(out, "\r%-24s", render.Countdown(c))
		if c.Started {
			select {
			case <-done:
			default:
				close(done)
			}
		}
	})
	if err != nil {
		return err
	}
	select {
	case <-ctx.Done():
	case <-done:
	}
	timer.Stop()
	fmt.Fprintln(out)
	return nil
}

func cmdRSVP(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlagSet("rsvp")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	ev, err := oneEventArg(a, fs)
	if err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("%w: rsvp needs a status", errUsage)
	}
	status, err := domain.ParseRSVPStatus(fs.Arg(1))
	if err != nil {
		return err
	}
	updated, err := a.RSVP.SetRSVP(ctx, ev.ID, a.Config.Session.UserID, status)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "RSVP for %q: %s\n", updated.Title, domain.StatusFor(updated, a.Config.Session.UserID))
	return nil
}

func cmdToggle(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlagSet("toggle")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	ev, err := oneEventArg(a, fs)
	if err != nil {
		return err
	}
	updated, err := a.RSVP.ToggleRSVP(ctx, ev.ID, a.Config.Session.UserID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "RSVP for %q: %s\n", updated.Title, domain.StatusFor(updated, a.Config.Session.UserID))
	return nil
}

func cmdDashboard(_ context.Context, a *app.App, _ []string, out io.Writer) error {
	return render.Dashboard(out, services.ComputeAnalytics(a.Store.List(), a.Config.Session.UserID, a.Clock.Now()))
}

func cmdInvite(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlagSet("invite")
	message := fs.String("message", "", "personal note included in the email")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	ev, err := oneEventArg(a, fs)
	if err != nil {
		return err
	}
	emails := fs.Args()[1:]
	if len(emails) == 0 {
		return fmt.Errorf("%w: invite needs at least one email", errUsage)
	}
	if len(emails) == 1 {
		if err := a.Invitations.SendInvitation(ctx, ev.ID, emails[0], *message); err != nil {
			return err
		}
		fmt.Fprintf(out, "Invitation sent to %s\n", strings.TrimSpace(emails[0]))
		return nil
	}
	sent, failed, err := a.Invitations.SendInvitations(ctx, ev.ID, emails, *message)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Sent %d invitation(s)\n", sent)
	for _, f := range failed {
		fmt.Fprintf(out, "  failed: %s\n", f)
	}
	return nil
}

func cmdExport(_ context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlagSet("export")
	output := fs.String("o", "", "write to this file instead of stdout")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	events := a.Store.List()
	if fs.NArg() > 0 {
		events = make([]*domain.Event, 0, fs.NArg())
		for _, ref := range fs.Args() {
			ev, err := resolveEvent(a, ref)
			if err != nil {
				return err
			}
			events = append(events, ev)
		}
	}
	calendar, skipped := ical.Export(events, a.Clock.Now().Location())
	for _, id := range skipped {
		a.Logger.Warn("event skipped, unreadable start", "event_id", id)
	}
	if *output == "" {
		_, err := io.WriteString(out, calendar)
		return err
	}
	if err := os.WriteFile(*output, []byte(calendar), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %d event(s) to %s\n", len(events)-len(skipped), *output)
	return nil
}

func cmdReset(ctx context.Context, a *app.App, _ []string, out io.Writer) error {
	removed := a.Store.Clear(ctx)
	fmt.Fprintf(out, "Removed %d event(s)\n", removed)
	return nil
}

func cmdToken(_ context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlagSet("token")
	user := fs.String("user", "", "user id placed in the token subject")
	name := fs.String("name", "", "display name")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *user == "" {
		return fmt.Errorf("%w: token needs -user", errUsage)
	}
	if a.Issuer == nil {
		return errors.New("JWT_SECRET is not set")
	}
	token, err := a.Issuer.Issue(*user, *name, *ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, token)
	return nil
}
