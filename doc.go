/*
Package unitconv is a small unit conversion core meant to sit behind any front-end.

It converts a numeric value between three fixed unit pairs, selected by a mode:

  - Distance: kilometers to meters
  - Temperature: Fahrenheit to Celsius (rounded to the nearest integer)
  - Weight: grams to kilograms

# Concept

The core has two parts. The conversion engine (package conversion) is a pure
function from raw text and mode to a display string; it never fails, treating
unparsable text as 0. The session (package session) owns the input text, the
selected mode and the displayed result, and recomputes the result on every
change so it is never stale.

The front-end forwards events and re-reads the state:

	c := unitconv.New()
	s := c.NewSession()

	s.OnInputChanged("100")
	fmt.Println(s.CurrentState().Result) // 100000.0 Meters

	s.OnModeSelected(domain.ModeTemperature)
	fmt.Println(s.CurrentState().Result) // 38 °C

# Hosting

Shared front-ends (the HTTP and MCP adapters, the CLI with --session) use the
Converter's session Manager instead, which serializes events per session and
persists snapshots through a ports.StateStore (memory, file or redis).
*/
package unitconv
