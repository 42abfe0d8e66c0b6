package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeUS(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"5551234567", "+15551234567"},
		{"15551234567", "+15551234567"},
		{"(555) 123-4567", "+15551234567"},
		{"555.123.4567", "+15551234567"},
		{"+1 555 123 4567", "+15551234567"},
		{"5550234567", "+15550234567"},
		{"5551934567", "+15551934567"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := NormalizeUS(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeUS_Rejects(t *testing.T) {
	cases := []string{
		"",
		"12345",
		"555123456789",         // too many digits
		"25551234567",          // eleven digits without leading 1
		"0551234567",           // area code starts with 0
		"1551234567",           // area code starts with 1
		"5551234567 ext. 1234", // extension digits bleed in
	}
	for _, in := range cases {
		t.Run(in, func(t *testing.T) {
			_, err := NormalizeUS(in)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}
