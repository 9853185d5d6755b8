// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"
	"slices"

	"github.com/pdiddy/partcatalog/internal/encode"
	"github.com/pdiddy/partcatalog/internal/series"
	"github.com/pdiddy/partcatalog/internal/units"
	"github.com/pdiddy/partcatalog/pkg/types"
)

// Dielectric is a ceramic capacitor material class. The set is closed.
type Dielectric int

const (
	X7R Dielectric = iota
)

var dielectricNames = map[Dielectric]string{
	X7R: "X7R",
}

func (d Dielectric) String() string {
	if n, ok := dielectricNames[d]; ok {
		return n
	}
	return fmt.Sprintf("Dielectric(%d)", int(d))
}

// DielectricRange is the value range and tolerances a series offers in one
// dielectric.
type DielectricRange struct {
	Dielectric Dielectric

	// Code is the dielectric's MPN field (e.g. "R7" for X7R).
	Code string

	Range      types.ValueRange
	Tolerances []types.ToleranceOption
}

// CapacitorSpec describes one Murata GCM automotive MLCC series.
type CapacitorSpec struct {
	Series       string
	Manufacturer string
	Footprint    string
	CaseCodeIn   string
	CaseCodeMM   string
	Packaging    []string
	Voltages     []types.VoltageOption
	Dielectrics  []DielectricRange

	// Excluded lists E12 values the series does not offer.
	Excluded []float64
}

func (s CapacitorSpec) Key() string { return s.Series }

// Records expands every (value, voltage, tolerance, packaging) combination
// and sorts the result by dielectric then value. The sort is stable, so
// ties keep generation order.
func (s CapacitorSpec) Records() ([]types.PartRecord, error) {
	var records []types.PartRecord
	for _, d := range s.Dielectrics {
		if err := d.Range.Validate(); err != nil {
			return nil, fmt.Errorf("series %s %s: %w", s.Series, d.Dielectric, err)
		}
		for farads := range series.Decades(series.E12, d.Range, s.Excluded...) {
			code, err := encode.CapacitanceCode(farads)
			if err != nil {
				return nil, err
			}
			for _, v := range s.Voltages {
				for _, tol := range d.Tolerances {
					for _, pkg := range s.Packaging {
						records = append(records, s.record(d, farads, code, v, tol, pkg))
					}
				}
			}
		}
	}

	slices.SortStableFunc(records, func(a, b types.PartRecord) int {
		if a.Dielectric != b.Dielectric {
			if a.Dielectric < b.Dielectric {
				return -1
			}
			return 1
		}
		switch {
		case a.Value < b.Value:
			return -1
		case a.Value > b.Value:
			return 1
		}
		return 0
	})
	return records, nil
}

func (s CapacitorSpec) record(d DielectricRange, farads float64, code string, v types.VoltageOption, tol types.ToleranceOption, pkg string) types.PartRecord {
	mpn := s.Series + d.Code + v.Code + code + tol.Code + encode.CharacteristicCode(farads) + pkg
	value := units.FormatCapacitance(farads)
	return types.PartRecord{
		SymbolName:       "C_" + mpn,
		Reference:        "C",
		Value:            farads,
		FormattedValue:   value,
		Footprint:        s.Footprint,
		Datasheet:        MurataDatasheet(mpn),
		Description:      fmt.Sprintf("CAP SMD %s %s %s %s %s", value, d.Dielectric, tol.Display, s.CaseCodeIn, v.Display),
		Manufacturer:     s.Manufacturer,
		MPN:              mpn,
		Tolerance:        tol.Display,
		VoltageRating:    v.Display,
		Dielectric:       d.Dielectric.String(),
		CaseCodeIn:       s.CaseCodeIn,
		CaseCodeMM:       s.CaseCodeMM,
		Series:           s.Series,
		TrustedpartsLink: TrustedpartsSearch + mpn,
	}
}

const murataDatasheets = "https://search.murata.co.jp/Ceramy/image/img/A01X/G101/ENG/"

// MurataDatasheet returns the datasheet URL for a GCM MPN. The trailing
// packaging code is not part of the datasheet name.
func MurataDatasheet(mpn string) string {
	if mpn == "" {
		return murataDatasheets
	}
	return murataDatasheets + mpn[:len(mpn)-1] + "-01.pdf"
}

var (
	tolK   = types.ToleranceOption{Code: "K", Display: "10%"}
	volt50 = types.VoltageOption{Code: "1H", Display: "50V"}
	volt25 = types.VoltageOption{Code: "1E", Display: "25V"}
)

func x7r(min, max float64) []DielectricRange {
	return []DielectricRange{{
		Dielectric: X7R,
		Code:       "R7",
		Range:      types.ValueRange{Min: min, Max: max},
		Tolerances: []types.ToleranceOption{tolK},
	}}
}

var capacitorSpecs = []CapacitorSpec{
	{
		Series:       "GCM155",
		Manufacturer: "Murata Electronics",
		Footprint:    "footprints:C_0402_1005Metric",
		CaseCodeIn:   "0402",
		CaseCodeMM:   "1005",
		Packaging:    []string{"D", "J"},
		Voltages:     []types.VoltageOption{volt50},
		Dielectrics:  x7r(220e-12, 0.1e-6),
		Excluded:     []float64{27e-9, 39e-9, 56e-9, 82e-9},
	},
	{
		Series:       "GCM188",
		Manufacturer: "Murata Electronics",
		Footprint:    "footprints:C_0603_1608Metric",
		CaseCodeIn:   "0603",
		CaseCodeMM:   "1608",
		Packaging:    []string{"D", "J"},
		Voltages:     []types.VoltageOption{volt50},
		Dielectrics:  x7r(1e-9, 220e-9),
		Excluded:     []float64{120e-9, 180e-9},
	},
	{
		Series:       "GCM216",
		Manufacturer: "Murata Electronics",
		Footprint:    "footprints:C_0805_2012Metric",
		CaseCodeIn:   "0805",
		CaseCodeMM:   "2012",
		Packaging:    []string{"D", "J"},
		Voltages:     []types.VoltageOption{volt50},
		Dielectrics:  x7r(1e-9, 22e-9),
	},
	{
		Series:       "GCM31M",
		Manufacturer: "Murata Electronics",
		Footprint:    "footprints:C_1206_3216Metric",
		CaseCodeIn:   "1206",
		CaseCodeMM:   "3216",
		Packaging:    []string{"K", "L"},
		Voltages:     []types.VoltageOption{volt50},
		Dielectrics:  x7r(100e-9, 1e-6),
		Excluded:     []float64{180e-9, 560e-9},
	},
	{
		Series:       "GCM31C",
		Manufacturer: "Murata Electronics",
		Footprint:    "footprints:C_1206_3216Metric",
		CaseCodeIn:   "1206",
		CaseCodeMM:   "3216",
		Packaging:    []string{"K", "L"},
		Voltages:     []types.VoltageOption{volt25},
		Dielectrics:  x7r(4.7e-6, 4.7e-6),
	},
}
