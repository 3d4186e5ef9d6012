package table

import (
	"time"
)

// Layouts accepted when parsing timestamps from text, checked in order. Raw
// datasets mix date formats, so parsing is deliberately permissive.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02.01.2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseTimestamp attempts to parse the given text as a timestamp, trying each
// of the accepted layouts in order.
func ParseTimestamp(text string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
