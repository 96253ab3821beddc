package conversion_test

import (
	"testing"

	"github.com/aretw0/unitconv/pkg/conversion"
	"github.com/aretw0/unitconv/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModes_MenuOrder(t *testing.T) {
	assert.Equal(t,
		[]domain.Mode{domain.ModeDistance, domain.ModeTemperature, domain.ModeWeight},
		conversion.Modes(),
	)
}

func TestUnits(t *testing.T) {
	pair, ok := conversion.Units(domain.ModeTemperature)
	require.True(t, ok)
	assert.Equal(t, "Fahrenheit", pair.From)
	assert.Equal(t, "Celsius", pair.To)
	assert.Equal(t, "°C", pair.Label)
	assert.Equal(t, "Temperature (Fahrenheit to Celsius)", pair.Description())

	_, ok = conversion.Units(domain.Mode("Volume"))
	assert.False(t, ok)
}

func TestPairs_ReturnsCopy(t *testing.T) {
	p := conversion.Pairs()
	p[0].Label = "changed"
	assert.Equal(t, "Meters", conversion.Pairs()[0].Label)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Mode
	}{
		{"Distance", domain.ModeDistance},
		{"temperature", domain.ModeTemperature},
		{"  WEIGHT ", domain.ModeWeight},
	}
	for _, tt := range tests {
		got, err := conversion.ParseMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := conversion.ParseMode("volume")
	assert.ErrorIs(t, err, domain.ErrUnknownMode)
}
