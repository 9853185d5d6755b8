// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package encode

import (
	"strconv"
	"strings"

	"github.com/pdiddy/partcatalog/pkg/types"
)

// HighValueThreshold is the resistance above which only the tightest
// tolerance is offered.
const HighValueThreshold = 1e6

// Tolerances returns the tolerance options available at ohms. Above
// HighValueThreshold the series' highValue set replaces offered; when the
// series declares none, the tightest offered option is used alone.
func Tolerances(ohms float64, offered, highValue []types.ToleranceOption) []types.ToleranceOption {
	if ohms <= HighValueThreshold || len(offered) == 0 {
		return offered
	}
	if len(highValue) > 0 {
		return highValue
	}
	return []types.ToleranceOption{Tightest(offered)}
}

// Tightest returns the option with the smallest percentage. Options whose
// display does not parse as a percentage sort last. Ties keep the first.
func Tightest(opts []types.ToleranceOption) types.ToleranceOption {
	best := opts[0]
	bestPct := percent(best.Display)
	for _, o := range opts[1:] {
		if p := percent(o.Display); p < bestPct {
			best, bestPct = o, p
		}
	}
	return best
}

func percent(display string) float64 {
	p, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(display, "%")), 64)
	if err != nil {
		return 1e9
	}
	return p
}
