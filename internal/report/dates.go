package report

import (
	"fmt"
	"strings"
	"time"
)

// receivedLayouts are the timestamp formats Broadchains exports use for
// date_received, tried in order. No timezone conversion is applied; the
// partition date is whatever the source wrote.
var receivedLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// ParseReceived parses a date_received value. Rows whose value does not
// parse are dropped from output by the pipeline; the error here is counted,
// not fatal.
func ParseReceived(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date_received")
	}

	for _, layout := range receivedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date_received %q", s)
}

// DateKey returns the calendar-date partition key for a parsed
// date_received, used in output file names.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
