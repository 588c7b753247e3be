package report

import "strings"

// SanitizeMessageBody trims a raw message_body value and strips every
// literal quote character from it. The serializer wraps the clean value in
// exactly one pair of quotes at write time; the sanitizer itself never adds
// quotes, so quoting happens in exactly one place.
//
// The second return reports whether sanitization changed the value, which
// feeds the summary counter for bodies that needed cleaning.
func SanitizeMessageBody(s string) (string, bool) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), `"`, "")
	return clean, clean != s
}
