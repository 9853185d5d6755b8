// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package units normalizes, formats, and parses nominal component values.
// Formatting is presentational only; part-number encoding lives in
// internal/encode and never reads formatted strings.
package units

import (
	"math"
	"strconv"
)

// significantDigits bounds the precision kept by Normalize. Twelve digits
// absorb the error of multiplying a decade anchor by a table multiplier
// while staying well clear of any real E-series distinction.
const significantDigits = 12

// Normalize rounds v to twelve significant decimal digits so that values
// produced by float multiplication compare exactly against decimal
// literals (1e-12 * 1e5 * 1.0 == 1e-7).
func Normalize(v float64) float64 {
	if v == 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	n, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', significantDigits, 64), 64)
	if err != nil {
		return v
	}
	return n
}

// prefixed is one metric prefix used by the formatters, largest first.
type prefixed struct {
	scale  float64
	symbol string
}

var resistancePrefixes = []prefixed{
	{1e6, "M"},
	{1e3, "k"},
	{1, ""},
}

var capacitancePrefixes = []prefixed{
	{1e-6, "µ"},
	{1e-9, "n"},
	{1e-12, "p"},
}

var inductancePrefixes = []prefixed{
	{1e-6, "µ"},
	{1e-9, "n"},
}

// FormatResistance renders ohms as "4.7 kΩ", "1.5 MΩ", or "100 Ω".
func FormatResistance(ohms float64) string {
	return format(ohms, resistancePrefixes, "Ω")
}

// FormatCapacitance renders farads as "100 pF", "4.7 nF", or "1 µF".
func FormatCapacitance(farads float64) string {
	return format(farads, capacitancePrefixes, "F")
}

// FormatInductance renders henries as "330 nH", "4.7 µH", or "22 µH".
func FormatInductance(henries float64) string {
	return format(henries, inductancePrefixes, "H")
}

// format picks the largest prefix keeping the displayed magnitude at or
// above one. Values below the smallest prefix use it anyway.
func format(v float64, prefixes []prefixed, unit string) string {
	chosen := prefixes[len(prefixes)-1]
	for _, p := range prefixes {
		if Normalize(v/p.scale) >= 1 {
			chosen = p
			break
		}
	}
	return Mantissa(v/chosen.scale) + " " + chosen.symbol + unit
}

// Mantissa renders a number with at most six significant digits and no
// trailing zeros, matching printf's %g.
func Mantissa(v float64) string {
	return strconv.FormatFloat(Normalize(v), 'g', 6, 64)
}
