package ical

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FallbackDuration is used when an event's free-text duration cannot be read.
const FallbackDuration = 2 * time.Hour

var durationPartRegex = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(days?|d|hours?|hrs?|h|minutes?|mins?|m)\b`)

// ParseDuration reads free-text durations such as "2 hours", "90 minutes", "1 hour 30 mins" or "1.5h".
// Go duration strings ("2h30m") are accepted too. ok is false when nothing could be read or the
// total does not fit in a time.Duration.
func ParseDuration(s string) (d time.Duration, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d, true
	}
	var total float64
	for _, m := range durationPartRegex.FindAllStringSubmatch(s, -1) {
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		var unit time.Duration
		switch m[2][0] {
		case 'd':
			unit = 24 * time.Hour
		case 'h':
			unit = time.Hour
		case 'm':
			unit = time.Minute
		}
		total += n * float64(unit)
		if total >= math.MaxInt64 {
			return 0, false
		}
	}
	return time.Duration(total), total >= 1
}
