package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHexField(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "simple hex", in: "03", want: "3"},
		{name: "two digit hex", in: "1f", want: "31"},
		{name: "leading digit with hex letter", in: "0A", want: "10"},
		{name: "whitespace trimmed", in: " 05 ", want: "5"},
		{name: "empty", in: "", wantErr: true},
		{name: "whitespace only", in: "  ", wantErr: true},
		{name: "leading letter short circuits", in: "A0", wantErr: true},
		{name: "not hex at all", in: "ZZ", wantErr: true},
		{name: "punctuation", in: "0-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeHexField(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNotHex)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTotalParts(t *testing.T) {
	tests := []struct {
		name string
		udh  string
		want string
	}{
		{name: "standard concat header", udh: "050003020301", want: "3"},
		{name: "ten char header", udh: "0500030201", want: "2"},
		{name: "exactly four chars", udh: "0301", want: "3"},
		{name: "empty", udh: "", want: "1"},
		{name: "too short", udh: "031", want: "1"},
		{name: "hex letters in slice", udh: "050003ff01", want: "1"},
		{name: "whitespace only", udh: "   ", want: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalParts(tt.udh))
		})
	}
}

func TestPartNum(t *testing.T) {
	tests := []struct {
		name string
		udh  string
		want string
	}{
		{name: "standard concat header", udh: "050003020301", want: "1"},
		{name: "second part", udh: "050003020302", want: "2"},
		{name: "tenth part", udh: "05000302030a", want: "10"},
		{name: "empty", udh: "", want: "1"},
		{name: "single char", udh: "5", want: "1"},
		{name: "trailing letters not hex", udh: "050003ZZ", want: "1"},
		{name: "trailing punctuation", udh: "0500030-", want: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PartNum(tt.udh))
		})
	}
}

// The three UDH derivations slice the same raw string independently.
func TestDerivationsAreIndependent(t *testing.T) {
	udh := "050003020301"

	assert.Equal(t, "3", TotalParts(udh))
	assert.Equal(t, "1", PartNum(udh))

	// Tag strips the last 4 characters, unrelated to the parts slices.
	tag := SynthesizeTag(udh, "12345", mustParseReceived(t, "2025-05-09 14:07:33"), true)
	assert.Equal(t, "05000302-12345-1407", tag)
}
