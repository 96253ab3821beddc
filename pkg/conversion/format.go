package conversion

import (
	"math"
	"strconv"
	"strings"
)

const (
	sciLowerBound = 1e-3
	sciUpperBound = 1e7
)

// FormatNumber renders v in the canonical double format.
//
//	1000     -> "1000.0"
//	0.25     -> "0.25"
//	1.5e7    -> "1.5E7"
//	0.0001   -> "1.0E-4"
//	+Inf     -> "Infinity"
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		if math.Signbit(v) {
			return "-0.0"
		}
		return "0.0"
	}

	abs := math.Abs(v)
	if abs >= sciLowerBound && abs < sciUpperBound {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}

	// strconv gives "1.5e+07" / "1e-04"; reshape into "1.5E7" / "1.0E-4".
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	n, err := strconv.Atoi(exp)
	if err != nil {
		return s
	}
	return mantissa + "E" + strconv.Itoa(n)
}
