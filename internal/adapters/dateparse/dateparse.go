// Package dateparse turns user supplied dates such as "2026-10-18", "tomorrow" or "next friday 7pm"
// into the date and time strings stored on events.
package dateparse

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"eventplanner/internal/domain"
)

// Parser resolves absolute and natural-language dates.
type Parser struct {
	when *when.Parser
}

// New returns a Parser with the English and common rule sets.
func New() *Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Parser{when: w}
}

// Result is a resolved point in time split into event fields. HasTime is false when the input only
// named a day.
type Result struct {
	Date    string
	Time    string
	HasTime bool
}

// Parse resolves input relative to now. ISO dates (optionally followed by HH:MM) are taken as is.
func (p *Parser) Parse(input string, now time.Time) (Result, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Result{}, fmt.Errorf("%w: empty date", domain.ErrInvalidInput)
	}
	if t, err := time.ParseInLocation(domain.DateLayout+" "+domain.TimeLayout, input, now.Location()); err == nil {
		return Result{Date: t.Format(domain.DateLayout), Time: t.Format(domain.TimeLayout), HasTime: true}, nil
	}
	if t, err := time.ParseInLocation(domain.DateLayout, input, now.Location()); err == nil {
		return Result{Date: t.Format(domain.DateLayout)}, nil
	}

	r, err := p.when.Parse(input, now)
	if err != nil {
		return Result{}, fmt.Errorf("%w: parse date %q: %v", domain.ErrInvalidInput, input, err)
	}
	if r == nil {
		return Result{}, fmt.Errorf("%w: no date found in %q", domain.ErrInvalidInput, input)
	}
	t := r.Time.In(now.Location())
	hasTime := t.Hour() != now.Hour() || t.Minute() != now.Minute()
	return Result{Date: t.Format(domain.DateLayout), Time: t.Format(domain.TimeLayout), HasTime: hasTime}, nil
}
