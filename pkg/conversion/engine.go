package conversion

import (
	"math"
	"strconv"

	"github.com/aretw0/unitconv/pkg/domain"
)

// Convert computes the formatted result for raw under mode.
func Convert(raw string, mode domain.Mode) string {
	x := ParseInput(raw)

	switch mode {
	case domain.ModeDistance:
		return FormatNumber(x*1000) + " " + LabelMeters
	case domain.ModeTemperature:
		return strconv.FormatInt(RoundHalfUp((x-32)*5/9), 10) + " " + LabelCelsius
	case domain.ModeWeight:
		return FormatNumber(x/1000) + " " + LabelKilograms
	default:
		return domain.ResultInvalid
	}
}

// RoundHalfUp rounds v to the nearest integer, ties toward positive infinity.
// NaN rounds to 0 and the result saturates to the 32-bit integer range.
func RoundHalfUp(v float64) int64 {
	if math.IsNaN(v) {
		return 0
	}
	f := math.Floor(v)
	if v-f >= 0.5 {
		f++
	}
	switch {
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int64(f)
}
