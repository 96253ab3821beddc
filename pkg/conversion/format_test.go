package conversion_test

import (
	"math"
	"testing"

	"github.com/aretw0/unitconv/pkg/conversion"
	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{1, "1.0"},
		{1000, "1000.0"},
		{0.25, "0.25"},
		{123.456, "123.456"},
		{-42, "-42.0"},
		{0.001, "0.001"},
		{9999999, "9999999.0"},
		{1e7, "1.0E7"},
		{1.5e7, "1.5E7"},
		{1e21, "1.0E21"},
		{0.0001, "1.0E-4"},
		{-1.5e-5, "-1.5E-5"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, conversion.FormatNumber(tt.in))
		})
	}
}

func TestTryParse(t *testing.T) {
	v, ok := conversion.TryParse("12.5")
	assert.True(t, ok)
	assert.Equal(t, 12.5, v)

	v, ok = conversion.TryParse("\t-3\n")
	assert.True(t, ok)
	assert.Equal(t, -3.0, v)

	_, ok = conversion.TryParse("twelve")
	assert.False(t, ok)

	_, ok = conversion.TryParse("")
	assert.False(t, ok)

	v, ok = conversion.TryParse("-1e999")
	assert.True(t, ok)
	assert.True(t, math.IsInf(v, -1))
}
