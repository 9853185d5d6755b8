// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package series expands the E96, E24, and E12 preferred-number tables into
// lazy sequences of nominal values within a range.
//
// Every sequence is an iter.Seq and is restartable: ranging over it again
// recomputes the values from the table. Products are normalized to twelve
// significant digits before they are compared against range bounds, so a
// value such as 0.1 µF produced as 1e-12 * 1e5 is never spuriously excluded.
package series

import (
	"fmt"
	"iter"
	"math"

	"github.com/pdiddy/partcatalog/internal/units"
	"github.com/pdiddy/partcatalog/pkg/types"
)

// Series identifies a standard preferred-number table.
type Series int

const (
	E96 Series = iota
	E24
	E12
)

// decadeFloor is the first decade anchor (1 pF when the unit is farads).
const decadeFloor = -12

var names = map[Series]string{
	E96: "E96",
	E24: "E24",
	E12: "E12",
}

func (s Series) String() string {
	if n, ok := names[s]; ok {
		return n
	}
	return fmt.Sprintf("Series(%d)", int(s))
}

var e96 = []float64{
	1.00, 1.02, 1.05, 1.07, 1.10, 1.13, 1.15, 1.18, 1.21, 1.24, 1.27, 1.30,
	1.33, 1.37, 1.40, 1.43, 1.47, 1.50, 1.54, 1.58, 1.62, 1.65, 1.69, 1.74,
	1.78, 1.82, 1.87, 1.91, 1.96, 2.00, 2.05, 2.10, 2.15, 2.21, 2.26, 2.32,
	2.37, 2.43, 2.49, 2.55, 2.61, 2.67, 2.74, 2.80, 2.87, 2.94, 3.01, 3.09,
	3.16, 3.24, 3.32, 3.40, 3.48, 3.57, 3.65, 3.74, 3.83, 3.92, 4.02, 4.12,
	4.22, 4.32, 4.42, 4.53, 4.64, 4.75, 4.87, 4.99, 5.11, 5.23, 5.36, 5.49,
	5.62, 5.76, 5.90, 6.04, 6.19, 6.34, 6.49, 6.65, 6.81, 6.98, 7.15, 7.32,
	7.50, 7.68, 7.87, 8.06, 8.25, 8.45, 8.66, 8.87, 9.09, 9.31, 9.53, 9.76,
}

var e24 = []float64{
	1.0, 1.1, 1.2, 1.3, 1.5, 1.6, 1.8, 2.0, 2.2, 2.4, 2.7, 3.0,
	3.3, 3.6, 3.9, 4.3, 4.7, 5.1, 5.6, 6.2, 6.8, 7.5, 8.2, 9.1,
}

var e12 = []float64{
	1.0, 1.2, 1.5, 1.8, 2.2, 2.7, 3.3, 3.9, 4.7, 5.6, 6.8, 8.2,
}

// Multipliers returns a copy of the series' decade multipliers in [1, 10),
// strictly increasing and starting at 1.0.
func (s Series) Multipliers() []float64 {
	var table []float64
	switch s {
	case E96:
		table = e96
	case E24:
		table = e24
	case E12:
		table = e12
	}
	out := make([]float64, len(table))
	copy(out, table)
	return out
}

// Decades yields every multiplier × 10^k within r in increasing order.
// The decade anchor starts at 1e-12 and stops once it exceeds r.Max.
// Values listed in exclude are skipped after normalization. A range with a
// non-finite bound yields nothing.
func Decades(s Series, r types.ValueRange, exclude ...float64) iter.Seq[float64] {
	table := s.Multipliers()
	skip := exclusionSet(exclude)
	return func(yield func(float64) bool) {
		if !r.Bounded() {
			return
		}
		for exp := decadeFloor; ; exp++ {
			anchor := math.Pow10(exp)
			if anchor > r.Max {
				return
			}
			for _, m := range table {
				v := units.Normalize(m * anchor)
				if !r.Contains(v) || skip[v] {
					continue
				}
				if !yield(v) {
					return
				}
			}
		}
	}
}

// Scaled yields base × 10^k for k = 0, 1, 2, ... while the product stays at
// or below r.Max, skipping products below r.Min.
func Scaled(base float64, r types.ValueRange) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if base <= 0 || !r.Bounded() {
			return
		}
		for k := 0; ; k++ {
			v := units.Normalize(base * math.Pow10(k))
			if v > r.Max {
				return
			}
			if v < r.Min {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}

// ScaledSeries yields Scaled(m, r) for each multiplier m in table order.
// This is the resistor enumeration order: all decades of 1.00, then all
// decades of 1.02, and so on.
func ScaledSeries(s Series, r types.ValueRange) iter.Seq[float64] {
	table := s.Multipliers()
	return func(yield func(float64) bool) {
		for _, m := range table {
			for v := range Scaled(m, r) {
				if !yield(v) {
					return
				}
			}
		}
	}
}

func exclusionSet(values []float64) map[float64]bool {
	set := make(map[float64]bool, len(values))
	for _, v := range values {
		set[units.Normalize(v)] = true
	}
	return set
}
