// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package encode

import (
	"errors"
	"fmt"
	"math"

	"github.com/pdiddy/partcatalog/internal/units"
)

// Inductance bounds in henries.
const (
	MinInductance = 10e-9
	MaxInductance = 1e-3
)

// ErrPrecision reports an inductance the three-digit code cannot carry.
var ErrPrecision = errors.New("more than two significant digits")

// InductanceCode returns the Coilcraft value code for henries: two
// significant digits of the nanohenry value followed by a zero count.
// 330 nH is "331", 1 µH is "102", 220 µH is "224".
func InductanceCode(henries float64) (string, error) {
	v := units.Normalize(henries)
	if v < MinInductance || v > MaxInductance {
		return "", &RangeError{Kind: "inductance", Value: henries, Min: MinInductance, Max: MaxInductance}
	}

	nh := units.Normalize(v * 1e9)
	zeros := 0
	for nh >= 100 {
		nh = units.Normalize(nh / 10)
		zeros++
	}
	digits := math.Round(nh)
	if digits != nh {
		return "", fmt.Errorf("inductance %g H: %w", henries, ErrPrecision)
	}
	return fmt.Sprintf("%02d%d", int(digits), zeros), nil
}
