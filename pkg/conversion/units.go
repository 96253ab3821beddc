package conversion

import (
	"fmt"
	"strings"

	"github.com/aretw0/unitconv/pkg/domain"
)

// Result labels appended to converted values.
const (
	LabelMeters    = "Meters"
	LabelCelsius   = "°C"
	LabelKilograms = "Kilograms"
)

// UnitPair describes what a mode converts from and to.
type UnitPair struct {
	Mode  domain.Mode `json:"mode"`
	From  string      `json:"from"`
	To    string      `json:"to"`
	Label string      `json:"label"`
}

// Description renders the menu text for the pair, e.g. "Distance (Kilometers to Meters)".
func (u UnitPair) Description() string {
	return fmt.Sprintf("%s (%s to %s)", u.Mode, u.From, u.To)
}

// Menu order.
var pairs = []UnitPair{
	{Mode: domain.ModeDistance, From: "Kilometers", To: "Meters", Label: LabelMeters},
	{Mode: domain.ModeTemperature, From: "Fahrenheit", To: "Celsius", Label: LabelCelsius},
	{Mode: domain.ModeWeight, From: "Grams", To: "Kilograms", Label: LabelKilograms},
}

// Modes lists the declared modes in menu order.
func Modes() []domain.Mode {
	out := make([]domain.Mode, len(pairs))
	for i, p := range pairs {
		out[i] = p.Mode
	}
	return out
}

// Pairs returns the unit pairs in menu order.
func Pairs() []UnitPair {
	out := make([]UnitPair, len(pairs))
	copy(out, pairs)
	return out
}

// Units returns the unit pair for mode. The boolean is false for unknown modes.
func Units(mode domain.Mode) (UnitPair, bool) {
	for _, p := range pairs {
		if p.Mode == mode {
			return p, true
		}
	}
	return UnitPair{}, false
}

// ParseMode matches name against the declared modes, ignoring case and surrounding space.
func ParseMode(name string) (domain.Mode, error) {
	name = strings.TrimSpace(name)
	for _, p := range pairs {
		if strings.EqualFold(name, string(p.Mode)) {
			return p.Mode, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownMode, name)
}
