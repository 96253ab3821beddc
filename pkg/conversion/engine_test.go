package conversion_test

import (
	"testing"

	"github.com/aretw0/unitconv/pkg/conversion"
	"github.com/aretw0/unitconv/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		mode domain.Mode
		want string
	}{
		{"distance integer", "1", domain.ModeDistance, "1000.0 Meters"},
		{"distance hundred", "100", domain.ModeDistance, "100000.0 Meters"},
		{"distance fraction", "2.5", domain.ModeDistance, "2500.0 Meters"},
		{"distance negative", "-3", domain.ModeDistance, "-3000.0 Meters"},
		{"distance scientific output", "12345", domain.ModeDistance, "1.2345E7 Meters"},
		{"distance overflow", "1e400", domain.ModeDistance, "Infinity Meters"},
		{"distance NaN", "NaN", domain.ModeDistance, "NaN Meters"},
		{"distance surrounding space", " 5 ", domain.ModeDistance, "5000.0 Meters"},

		{"temperature freezing", "32", domain.ModeTemperature, "0 °C"},
		{"temperature boiling", "212", domain.ModeTemperature, "100 °C"},
		{"temperature body", "98.6", domain.ModeTemperature, "37 °C"},
		{"temperature hundred", "100", domain.ModeTemperature, "38 °C"},
		{"temperature below tie", "33.5", domain.ModeTemperature, "1 °C"},
		{"temperature positive tie", "36.5", domain.ModeTemperature, "3 °C"},
		{"temperature negative tie", "27.5", domain.ModeTemperature, "-2 °C"},
		{"temperature minus forty", "-40", domain.ModeTemperature, "-40 °C"},
		{"temperature NaN", "NaN", domain.ModeTemperature, "0 °C"},
		{"temperature overflow saturates", "1e400", domain.ModeTemperature, "2147483647 °C"},

		{"weight kilo", "1000", domain.ModeWeight, "1.0 Kilograms"},
		{"weight gram", "1", domain.ModeWeight, "0.001 Kilograms"},
		{"weight quarter", "250", domain.ModeWeight, "0.25 Kilograms"},
		{"weight tiny", "0.5", domain.ModeWeight, "5.0E-4 Kilograms"},

		{"unknown mode", "10", domain.Mode("Volume"), "Invalid"},
		{"empty mode", "10", domain.Mode(""), "Invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, conversion.Convert(tt.raw, tt.mode))
		})
	}
}

func TestConvert_MalformedInputDegradesToZero(t *testing.T) {
	inputs := []string{
		"", "abc", "1.2.3", "12abc", "--5", "1,5", "   ",
		"1_000", "0x1_0p0", "inf", "INF", "infinity", "nan", "+inf", "NAN",
		"0x10", "1e", ".", "1.5ff", "NaNd", "Infinityf", "１２",
	}

	for _, raw := range inputs {
		t.Run(raw, func(t *testing.T) {
			assert.Equal(t, "0.0 Meters", conversion.Convert(raw, domain.ModeDistance))
			assert.Equal(t, "0.0 Kilograms", conversion.Convert(raw, domain.ModeWeight))
			// 0 °F is -17.78 °C.
			assert.Equal(t, "-18 °C", conversion.Convert(raw, domain.ModeTemperature))
			assert.Equal(t, conversion.Convert("0", domain.ModeTemperature), conversion.Convert(raw, domain.ModeTemperature))
		})
	}
}

func TestConvert_AcceptedNumberForms(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"1.5f", "1500.0 Meters"},
		{"2d", "2000.0 Meters"},
		{"3F", "3000.0 Meters"},
		{"-4D", "-4000.0 Meters"},
		{"5.", "5000.0 Meters"},
		{".5", "500.0 Meters"},
		{"+1e1", "10000.0 Meters"},
		{"0x1p4", "16000.0 Meters"},
		{"0X1.8P1d", "3000.0 Meters"},
		{"NaN", "NaN Meters"},
		{"-NaN", "NaN Meters"},
		{"Infinity", "Infinity Meters"},
		{"-Infinity", "-Infinity Meters"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, conversion.Convert(tt.raw, domain.ModeDistance))
		})
	}
}

func TestConvert_DistanceMatchesFormatNumber(t *testing.T) {
	for _, raw := range []string{"0", "0.001", "7", "42.42", "-0.5", "9999.999", "1e-9", "3e10"} {
		x := conversion.ParseInput(raw)
		assert.Equal(t, conversion.FormatNumber(x*1000)+" Meters", conversion.Convert(raw, domain.ModeDistance), raw)
	}
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, int64(3), conversion.RoundHalfUp(2.5))
	assert.Equal(t, int64(-2), conversion.RoundHalfUp(-2.5))
	assert.Equal(t, int64(0), conversion.RoundHalfUp(0.49999999999999994))
	assert.Equal(t, int64(-3), conversion.RoundHalfUp(-2.51))
	assert.Equal(t, int64(-2147483648), conversion.RoundHalfUp(-1e300))
}
