package conversion

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numberPattern is the accepted number grammar: an optional sign, then NaN,
// Infinity, a decimal with optional exponent, or a hex float with a binary
// exponent. Decimal and hex forms may end in a type suffix (f, F, d, D).
var numberPattern = regexp.MustCompile(`^[+-]?(?:NaN|Infinity|(?:` +
	`[0-9]+\.?[0-9]*(?:[eE][+-]?[0-9]+)?` +
	`|\.[0-9]+(?:[eE][+-]?[0-9]+)?` +
	`|0[xX](?:[0-9a-fA-F]+\.?|[0-9a-fA-F]*\.[0-9a-fA-F]+)[pP][+-]?[0-9]+` +
	`)[fFdD]?)$`)

// ParseInput reads raw as a float64, falling back to 0 when it is not a number.
// Leading and trailing whitespace and ASCII control characters are ignored.
// Magnitudes outside the float64 range saturate to ±Inf.
func ParseInput(raw string) float64 {
	v, ok := TryParse(raw)
	if !ok {
		return 0
	}
	return v
}

// TryParse is ParseInput that also reports whether raw held a number.
// Hosts use it to flag degraded input; Convert does not need it.
func TryParse(raw string) (float64, bool) {
	s := strings.TrimFunc(raw, func(r rune) bool { return r <= ' ' })
	if !numberPattern.MatchString(s) {
		return 0, false
	}
	// strconv rejects a signed NaN.
	if strings.TrimLeft(s, "+-") == "NaN" {
		return math.NaN(), true
	}
	// strconv has no type suffixes; hex digits never end a hex float, so
	// a trailing d or f is always a suffix here.
	s = strings.TrimRight(s, "fFdD")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return v, true
		}
		return 0, false
	}
	return v, true
}
