package nic

import (
	"log"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

// Explicit Indian formats are tried before the generic list so that
// 04/05/2024 parses as 4 May, not April 5.
var preferredDateFormats = []string{
	isoDate,
	"02/01/2006",
	"02-01-2006",
}

var genericDateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"02 Jan 2006",
	"Jan 2, 2006",
	"01/02/2006",
}

// NormalizeDate parses a date string in any accepted format and
// re-serializes it as YYYY-MM-DD. Unparseable or empty input falls
// back to the supplied date, never an error; every caller needs a
// usable date even when the source document carries garbage.
func NormalizeDate(raw string, fallback time.Time) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback.Format(isoDate)
	}
	for _, layout := range preferredDateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(isoDate)
		}
	}
	for _, layout := range genericDateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(isoDate)
		}
	}
	log.Printf("WARN: unrecognized date %q, defaulting to %s", raw, fallback.Format(isoDate))
	return fallback.Format(isoDate)
}
