/*
Package conversion implements the stateless conversion engine.

Convert maps a raw text value and a domain.Mode to a formatted result such as
"1000.0 Meters". It never fails: text that does not parse as a number is
treated as 0, and a mode outside the declared set yields "Invalid".

Numbers are rendered in the canonical double format: the shortest decimal that
round-trips, integral values keep a trailing ".0", and magnitudes at or above
1e7 or below 1e-3 use scientific notation ("1.0E7"). Temperatures are rounded
to the nearest integer with ties going toward positive infinity (2.5 -> 3,
-2.5 -> -2).
*/
package conversion
