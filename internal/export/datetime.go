package export

import (
	"strings"
	"time"
	"unicode"
)

const (
	// Broker statement timestamps, e.g. "2023.06.28 20:14:43".
	timestampLayout = "2006.01.02 15:04:05"
	// Bare calendar dates, also the format of from/to API parameters.
	dateLayout = "2006.01.02"
)

// ParseTimestamp normalizes a broker date/time string. It tries the full
// timestamp layout first, then the bare date using only the portion before
// the first whitespace. The boolean is false when neither form parses;
// callers treat that as "no date", never as a failure.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(timestampLayout, s); err == nil {
		return t, true
	}
	head := s
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		head = s[:i]
	}
	if t, err := time.Parse(dateLayout, head); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// ParseDate parses a calendar date argument in YYYY.MM.DD form.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
