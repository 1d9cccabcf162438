package contract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Define the regular expression to capture "N [units] ago"
// e.g., "2 years ago", "3 months ago", "1 week ago".
var relativeTimeRe = regexp.MustCompile(`^(\d+)\s+(year|month|week|day|hour|minute)s?\s+ago$`)

// absoluteLayouts are tried in order for dates that are not relative.
var absoluteLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// ParseRelativeTime converts strings like "2 years ago" into a time.Time in the past.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	matches := relativeTimeRe.FindStringSubmatch(s)

	if len(matches) == 0 {
		return time.Time{}, fmt.Errorf("invalid relative time format: %s", s)
	}

	value, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid relative time value: %s", matches[1])
	}

	switch matches[2] {
	case "year":
		return addMonths(now, -12*value), nil
	case "month":
		return addMonths(now, -value), nil
	case "week":
		return now.AddDate(0, 0, -7*value), nil
	case "day":
		return now.AddDate(0, 0, -value), nil
	case "hour":
		return now.Add(time.Duration(-value) * time.Hour), nil
	default: // minute
		return now.Add(time.Duration(-value) * time.Minute), nil
	}
}

// addMonths shifts t by n calendar months. A day past the end of the target
// month is clamped to its last day, so Mar 31 minus one month is Feb 28 (or 29).
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	hh, mm, ss := t.Clock()
	return time.Date(first.Year(), first.Month(), min(d, lastDay), hh, mm, ss, t.Nanosecond(), t.Location())
}

// ParseGitDate accepts the date forms git users type on the command line:
// "N units ago", "today", "yesterday", "last week|month|year", or an absolute date.
func ParseGitDate(s string, now time.Time) (time.Time, error) {
	norm := strings.Join(strings.Fields(strings.ToLower(s)), " ")
	switch norm {
	case "":
		return time.Time{}, fmt.Errorf("empty date")
	case "today", "now":
		return now, nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	case "last week":
		return now.AddDate(0, 0, -7), nil
	case "last month":
		return addMonths(now, -1), nil
	case "last year":
		return addMonths(now, -12), nil
	}

	if t, err := ParseRelativeTime(norm, now); err == nil {
		return t, nil
	}

	trimmed := strings.TrimSpace(s)
	for _, layout := range absoluteLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, now.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date '%s'. Expected YYYY-MM-DD, 'N [units] ago', 'yesterday' or 'last week|month|year'", trimmed)
}
