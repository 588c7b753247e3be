// =============================================================================
// Broadchains Report Parser - UDH Derivations
// =============================================================================
//
// The UDH (User Data Header) is a hexadecimal protocol fragment describing
// multi-part message segmentation. Two columns are derived from it:
//
//   Total Parts = hex value of the characters at positions [-4:-2]
//   Part Num    = hex value of the characters at positions [-2:]
//
// Both derivations slice the raw UDH string independently; neither is
// computed from the other's intermediate result. Any value that cannot be
// decoded falls back to "1" rather than failing the row.
//
// =============================================================================

package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrNotHex indicates a field value that cannot be decoded as hexadecimal.
var ErrNotHex = errors.New("not a hexadecimal value")

// DecodeHexField decodes a 1-2 character hex fragment into its decimal
// string representation. Empty input, input whose first character is a
// letter, and unparseable input all return ErrNotHex; callers collapse the
// error to the "1" fallback.
//
// The leading-letter short circuit mirrors the upstream report tooling,
// which treats any value starting with a letter as non-hex without
// attempting a parse.
func DecodeHexField(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty field: %w", ErrNotHex)
	}
	if unicode.IsLetter(rune(s[0])) {
		return "", fmt.Errorf("leading letter in %q: %w", s, ErrNotHex)
	}

	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", s, ErrNotHex)
	}
	return strconv.FormatUint(v, 10), nil
}

// TotalParts derives the "Total Parts" column from the raw UDH: the decimal
// value of the hex digits at positions [-4:-2]. Returns "1" when the UDH is
// blank, shorter than 4 characters, or not decodable.
func TotalParts(udh string) string {
	udh = strings.TrimSpace(udh)
	if len(udh) < 4 {
		return "1"
	}

	dec, err := DecodeHexField(udh[len(udh)-4 : len(udh)-2])
	if err != nil {
		return "1"
	}
	return dec
}

// PartNum derives the "Part Num" column from the raw UDH: the decimal value
// of the last two hex digits. Returns "1" when the UDH is shorter than 2
// characters, the trailing pair is not alphanumeric, or decoding fails.
func PartNum(udh string) string {
	udh = strings.TrimSpace(udh)
	if len(udh) < 2 {
		return "1"
	}

	tail := udh[len(udh)-2:]
	if !isAlphanumeric(tail) {
		return "1"
	}

	dec, err := DecodeHexField(tail)
	if err != nil {
		return "1"
	}
	return dec
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
