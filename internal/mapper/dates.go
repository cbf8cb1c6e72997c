package mapper

import (
	"strings"
	"time"
)

// Date layouts
const (
	FullDate    = "2006-01-02"
	PartialDate = "2006-01"
)

// looseLayouts are tried in order by NormalizeDate, for input that did not come from the backend.
var looseLayouts = []string{
	FullDate,
	PartialDate,
	"2006",
	"01/2006",
	"1/2006",
	"Jan 2006",
	"January 2006",
	"Jan. 2006",
	time.RFC3339,
}

// ExpandDate turns a backend partial date (YYYY-MM) into the working document's
// full date (YYYY-MM-01). Full dates are kept; anything else is returned trimmed.
func ExpandDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if _, err := time.Parse(FullDate, s); err == nil {
		return s
	}
	if t, err := time.Parse(PartialDate, s); err == nil {
		return t.Format(FullDate)
	}
	return s
}

// CompactDate turns a full date into the backend's partial date (YYYY-MM).
// Partial dates are kept; anything else is returned trimmed.
func CompactDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if t, err := time.Parse(FullDate, s); err == nil {
		return t.Format(PartialDate)
	}
	return s
}

// NormalizeDate parses a free-form date and returns it as YYYY-MM-DD. Missing
// month or day default to the first.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}

	var lastErr error
	for _, layout := range looseLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.Format(FullDate), nil
		}
		lastErr = err
	}
	return "", &DateError{Value: s, Cause: lastErr}
}
