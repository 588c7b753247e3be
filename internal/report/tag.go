// =============================================================================
// Broadchains Report Parser - Tag Synthesis
// =============================================================================
//
// The Tag column is a grouping key combining the UDH prefix (or the
// recipient when no UDH is present), the recipient number, and a time-of-day
// fragment from date_received:
//
//   UDH present: "{udh minus last 4 chars}-{to}-{HHMM}"
//   UDH absent:  "{to}-{HHMMSS}"
//
// The UDH-present form carries hours and minutes only; the UDH-absent form
// adds seconds. When date_received did not parse, the time suffix is
// omitted entirely. Note that the prefix here strips the last 4 characters
// of the UDH, which is unrelated to the [-4:-2] and [-2:] slices used for
// the parts columns.
//
// =============================================================================

package report

import (
	"strings"
	"time"
)

// SynthesizeTag builds the Tag value for one row. received and hasTime come
// from ParseReceived; hasTime is false when date_received was blank or
// unparseable, in which case no time suffix is appended.
//
// When the UDH is absent the recipient is concatenated directly with the
// dash-prefixed time suffix, so an empty recipient yields a bare
// "-HHMMSS" tag rather than an empty string.
func SynthesizeTag(udh, to string, received time.Time, hasTime bool) string {
	udh = strings.TrimSpace(udh)
	base := to
	hasUDH := udh != ""
	if hasUDH {
		prefix := udh
		if len(udh) > 4 {
			prefix = udh[:len(udh)-4]
		}
		base = prefix + "-" + to
	}

	if !hasTime {
		return base
	}
	if hasUDH {
		return base + received.Format("-1504")
	}
	return base + received.Format("-150405")
}
