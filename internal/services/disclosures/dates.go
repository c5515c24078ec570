package disclosures

import (
	"fmt"
	"strconv"
	"time"
)

const (
	// maxPastAge bounds how old a filing's submission date may be.
	maxPastAge = 5 * 365 * 24 * time.Hour

	// maxFutureSkew bounds how far in the future a submission date may sit.
	maxFutureSkew = 365 * 24 * time.Hour
)

// isoLayouts are the ISO-8601 variants the disclosure feed has been
// observed to emit.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseSubmissionDate parses a filing submission date. Accepted formats:
// strict 8-digit YYYYMMDD, ISO-8601, unix seconds (10 digits), and unix
// milliseconds (13 digits). Anything else is an error.
func ParseSubmissionDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty submission date")
	}

	if isAllDigits(raw) {
		switch len(raw) {
		case 8:
			t, err := time.Parse("20060102", raw)
			if err != nil {
				return time.Time{}, fmt.Errorf("invalid YYYYMMDD date %q: %w", raw, err)
			}
			return t, nil
		case 10:
			secs, _ := strconv.ParseInt(raw, 10, 64)
			return time.Unix(secs, 0).UTC(), nil
		case 13:
			millis, _ := strconv.ParseInt(raw, 10, 64)
			return time.UnixMilli(millis).UTC(), nil
		default:
			return time.Time{}, fmt.Errorf("numeric date %q is neither YYYYMMDD nor a unix timestamp", raw)
		}
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized submission date format: %q", raw)
}

// WithinRecencyBound reports whether a submission date falls inside the
// accepted window: not more than ~5 years past, not more than ~1 year
// future. Filings outside the window are discarded before use.
func WithinRecencyBound(t, now time.Time) bool {
	if t.Before(now.Add(-maxPastAge)) {
		return false
	}
	if t.After(now.Add(maxFutureSkew)) {
		return false
	}
	return true
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
