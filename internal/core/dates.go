package core

import "time"

// dateLayouts are the formats records carry: created_at stamps are RFC 3339,
// user-entered dates come from date pickers as YYYY-MM-DD.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses a record date string. Returns false for empty or
// unparseable input; callers fall back to created_at ordering in that case.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
