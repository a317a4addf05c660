package repository

import (
	"fmt"
	"time"
)

// timeLayouts are the formats SQLite hands back for DATE/DATETIME columns,
// plus RFC3339 for values written by application code.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

// ParseTime parses a database timestamp string in any supported layout.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date: %q", str)
}
