// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package encode turns nominal values into the value fields of
// manufacturer part numbers.
//
// Resistance codes follow the Panasonic ERJ convention: R-notation below
// 100 Ω ("10R2"), three significant digits plus a multiplier digit above
// ("1002" for 10 kΩ). Capacitance codes follow the Murata GCM convention:
// R-notation below 10 pF, the rounded picofarad value below 1000 pF with
// multiples of ten bumped by one ("101" for 100 pF), and two significant
// digits plus a zero count from 1000 pF up ("475" for 4.7 µF). Inductance
// codes follow Coilcraft: two significant digits of the nanohenry value
// plus a zero count ("102" for 1 µH).
package encode

import (
	"fmt"
	"math"

	"github.com/pdiddy/partcatalog/internal/units"
)

// Global bounds shared by every series of a family. A series may narrow
// the maximum further.
const (
	MinResistance = 10.0
	MaxResistance = 2.2e6

	MinCapacitance = 1e-12
	MaxCapacitance = 1e-2
)

// RangeError reports a value outside the bounds of its family.
type RangeError struct {
	Kind  string
	Value float64
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %g outside range [%g, %g]", e.Kind, e.Value, e.Min, e.Max)
}

// ResistanceCode returns the four-character ERJ value code for ohms.
// max is the series maximum; it is clamped to MaxResistance.
func ResistanceCode(ohms, max float64) (string, error) {
	max = math.Min(max, MaxResistance)
	v := units.Normalize(ohms)
	if v < MinResistance || v > max {
		return "", &RangeError{Kind: "resistance", Value: ohms, Min: MinResistance, Max: max}
	}

	if v < 100 {
		tenths := int(math.Round(v * 10))
		if tenths < 1000 {
			return fmt.Sprintf("%02dR%d", tenths/10, tenths%10), nil
		}
	}

	exp := 2
	for v >= units.Normalize(math.Pow10(exp+1)) {
		exp++
	}
	significant := int(math.Round(units.Normalize(v / math.Pow10(exp-2))))
	multiplier := exp - 2
	if significant >= 1000 {
		significant /= 10
		multiplier++
	}
	return fmt.Sprintf("%03d%d", significant, multiplier), nil
}

// CapacitanceCode returns the GCM value code for farads.
func CapacitanceCode(farads float64) (string, error) {
	c := units.Normalize(farads)
	if c < MinCapacitance || c > MaxCapacitance {
		return "", &RangeError{Kind: "capacitance", Value: farads, Min: MinCapacitance, Max: MaxCapacitance}
	}

	pf := units.Normalize(c * 1e12)
	if pf < 10 {
		tenths := int(math.Round(pf * 10))
		if tenths < 100 {
			return fmt.Sprintf("%dR%d", tenths/10, tenths%10), nil
		}
	}

	if pf < 1000 {
		significant := int(math.Round(pf))
		if significant%10 == 0 {
			significant++
		}
		return fmt.Sprintf("%03d", significant), nil
	}

	// Two significant digits and a zero count: 4700 pF is "472".
	exp := 3
	for pf >= units.Normalize(math.Pow10(exp+1)) {
		exp++
	}
	digits := int(math.Round(units.Normalize(pf / math.Pow10(exp-1))))
	if digits >= 100 {
		digits /= 10
		exp++
	}
	return fmt.Sprintf("%d%d", digits, exp-1), nil
}

// characteristicThreshold is 0.01 µF.
const characteristicThreshold = 1e-8

// CharacteristicCode returns the GCM characteristic code: "A55" at or
// above 0.01 µF, "A37" below.
func CharacteristicCode(farads float64) string {
	if units.Normalize(farads) >= characteristicThreshold {
		return "A55"
	}
	return "A37"
}
