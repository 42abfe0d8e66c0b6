// Package phone normalizes US phone numbers into E.164 for the calling
// provider.
package phone

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalid = errors.New("phone: invalid US number")

// NormalizeUS converts common US formats to E.164 (+1XXXXXXXXXX). Accepted
// inputs are ten digits, or eleven digits with a leading 1, with any mix of
// separators. The area code cannot start with 0 or 1.
func NormalizeUS(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	n := digits.String()

	switch {
	case len(n) == 11 && n[0] == '1':
		n = n[1:]
	case len(n) == 10:
	default:
		return "", fmt.Errorf("%w: %q has %d digits", ErrInvalid, raw, len(n))
	}

	if n[0] == '0' || n[0] == '1' {
		return "", fmt.Errorf("%w: area code cannot start with %c", ErrInvalid, n[0])
	}

	return "+1" + n, nil
}
