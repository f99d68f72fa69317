package handlers

import (
	"strconv"
	"strings"
	"time"
)

// huShortFormat is the Hungarian short date/time form, e.g.
// "2024. 03. 05. 14:30".
const huShortFormat = "2006. 01. 02. 15:04"

var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// FormatTimestamp renders a stored created_at value for display.
// Depending on how the row was written, the value arrives as epoch
// seconds (number or numeric string) or as "YYYY-MM-DD HH:MM:SS" text.
// Anything unparseable renders as the empty string; a bad timestamp
// must not take the inbox page down.
func FormatTimestamp(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case int:
		return time.Unix(int64(t), 0).Format(huShortFormat)
	case int64:
		return time.Unix(t, 0).Format(huShortFormat)
	case float64:
		return time.Unix(int64(t), 0).Format(huShortFormat)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return ""
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.Unix(n, 0).Format(huShortFormat)
		}
		// "YYYY-MM-DD HH:MM:SS" needs its space turned into the
		// date/time separator first.
		s = strings.Replace(s, " ", "T", 1)
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts.Format(huShortFormat)
			}
		}
		return ""
	}
	return ""
}
