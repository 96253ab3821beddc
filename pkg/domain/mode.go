package domain

// Mode selects which unit pair a session converts between.
// Values outside the declared constants are tolerated and convert to "Invalid".
type Mode string

const (
	ModeDistance    Mode = "Distance"    // Kilometers to Meters
	ModeTemperature Mode = "Temperature" // Fahrenheit to Celsius
	ModeWeight      Mode = "Weight"      // Grams to Kilograms
)

// DefaultMode is the mode a new session starts in.
const DefaultMode = ModeDistance

// Known reports whether m is one of the declared modes.
func (m Mode) Known() bool {
	switch m {
	case ModeDistance, ModeTemperature, ModeWeight:
		return true
	}
	return false
}

func (m Mode) String() string {
	return string(m)
}
