// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"

	"github.com/pdiddy/partcatalog/internal/encode"
	"github.com/pdiddy/partcatalog/internal/series"
	"github.com/pdiddy/partcatalog/internal/units"
	"github.com/pdiddy/partcatalog/pkg/types"
)

// SeriesTolerances binds a standard series to the tolerances offered for
// its values.
type SeriesTolerances struct {
	Series     series.Series
	Tolerances []types.ToleranceOption
}

// ResistorSpec describes one Panasonic ERJ thick-film series.
type ResistorSpec struct {
	Series       string
	Manufacturer string
	Footprint    string
	Datasheet    string
	Voltage      string
	CaseCodeIn   string
	CaseCodeMM   string
	Power        string

	// Range bounds generated values; Max is the series maximum.
	Range types.ValueRange

	Packaging []string

	// Tables are expanded in order, E96 before E24.
	Tables []SeriesTolerances

	// HighValue replaces the table tolerances above 1 MΩ when set.
	HighValue []types.ToleranceOption
}

func (s ResistorSpec) Key() string { return s.Series }

// Records expands every (value, tolerance, packaging) combination in
// generation order: table, then value, then tolerance, then packaging.
func (s ResistorSpec) Records() ([]types.PartRecord, error) {
	if err := s.Range.Validate(); err != nil {
		return nil, fmt.Errorf("series %s: %w", s.Series, err)
	}
	var records []types.PartRecord
	for _, table := range s.Tables {
		for ohms := range series.ScaledSeries(table.Series, s.Range) {
			code, err := encode.ResistanceCode(ohms, s.Range.Max)
			if err != nil {
				return nil, err
			}
			for _, tol := range encode.Tolerances(ohms, table.Tolerances, s.HighValue) {
				for _, pkg := range s.Packaging {
					records = append(records, s.record(ohms, code, tol, pkg))
				}
			}
		}
	}
	return records, nil
}

func (s ResistorSpec) record(ohms float64, code string, tol types.ToleranceOption, pkg string) types.PartRecord {
	mpn := s.Series + tol.Code + code + pkg
	value := units.FormatResistance(ohms)
	return types.PartRecord{
		SymbolName:       "R_" + mpn,
		Reference:        "R",
		Value:            ohms,
		FormattedValue:   value,
		Footprint:        s.Footprint,
		Datasheet:        s.Datasheet,
		Description:      fmt.Sprintf("RES SMD %s %s %s %s", value, tol.Display, s.CaseCodeIn, s.Voltage),
		Manufacturer:     s.Manufacturer,
		MPN:              mpn,
		Tolerance:        tol.Display,
		VoltageRating:    s.Voltage,
		CaseCodeIn:       s.CaseCodeIn,
		CaseCodeMM:       s.CaseCodeMM,
		Series:           s.Series,
		TrustedpartsLink: TrustedpartsSearch + mpn,
	}
}

const panasonicDatasheets = "https://industrial.panasonic.com/cdbs/www-data/pdf/"

var (
	tolF = types.ToleranceOption{Code: "F", Display: "1%"}
	tolJ = types.ToleranceOption{Code: "J", Display: "5%"}
)

// erj returns the tolerance tables shared by the ERJ series: e96 for E96
// values, e24 for E24 values.
func erj(e96, e24 types.ToleranceOption) []SeriesTolerances {
	return []SeriesTolerances{
		{Series: series.E96, Tolerances: []types.ToleranceOption{e96}},
		{Series: series.E24, Tolerances: []types.ToleranceOption{e24}},
	}
}

var resistorSpecs = []ResistorSpec{
	{
		Series:       "ERJ-2RK",
		Manufacturer: "Panasonic",
		Footprint:    "footprints:R_0402_1005Metric",
		Datasheet:    panasonicDatasheets + "RDA0000/AOA0000C304.pdf",
		Voltage:      "50V",
		CaseCodeIn:   "0402",
		CaseCodeMM:   "1005",
		Power:        "0.1W",
		Range:        types.ValueRange{Min: encode.MinResistance, Max: 1e6},
		Packaging:    []string{"X"},
		Tables:       erj(tolF, tolJ),
	},
	{
		Series:       "ERJ-3EK",
		Manufacturer: "Panasonic",
		Footprint:    "footprints:R_0603_1608Metric",
		Datasheet:    panasonicDatasheets + "RDA0000/AOA0000C304.pdf",
		Voltage:      "75V",
		CaseCodeIn:   "0603",
		CaseCodeMM:   "1608",
		Power:        "0.1W",
		Range:        types.ValueRange{Min: encode.MinResistance, Max: 1e6},
		Packaging:    []string{"V"},
		Tables:       erj(tolF, tolJ),
	},
	{
		Series:       "ERJ-6EN",
		Manufacturer: "Panasonic",
		Footprint:    "footprints:R_0805_2012Metric",
		Datasheet:    panasonicDatasheets + "RDA0000/AOA0000C304.pdf",
		Voltage:      "150V",
		CaseCodeIn:   "0805",
		CaseCodeMM:   "2012",
		Power:        "0.125W",
		Range:        types.ValueRange{Min: encode.MinResistance, Max: 2.2e6},
		Packaging:    []string{"V"},
		Tables:       erj(tolF, tolJ),
		HighValue:    []types.ToleranceOption{tolF},
	},
	{
		Series:       "ERJ-P08",
		Manufacturer: "Panasonic",
		Footprint:    "footprints:R_1206_3216Metric",
		Datasheet:    panasonicDatasheets + "RDO0000/AOA0000C331.pdf",
		Voltage:      "500V",
		CaseCodeIn:   "1206",
		CaseCodeMM:   "3216",
		Power:        "0.66W",
		Range:        types.ValueRange{Min: encode.MinResistance, Max: 1e6},
		Packaging:    []string{"V"},
		Tables:       erj(tolF, tolF),
	},
	{
		Series:       "ERJ-P06",
		Manufacturer: "Panasonic",
		Footprint:    "footprints:R_0805_2012Metric",
		Datasheet:    panasonicDatasheets + "RDO0000/AOA0000C331.pdf",
		Voltage:      "400V",
		CaseCodeIn:   "0805",
		CaseCodeMM:   "2012",
		Power:        "0.5W",
		Range:        types.ValueRange{Min: encode.MinResistance, Max: 1e6},
		Packaging:    []string{"V"},
		Tables:       erj(tolF, tolF),
	},
	{
		Series:       "ERJ-P03",
		Manufacturer: "Panasonic",
		Footprint:    "footprints:R_0603_1608Metric",
		Datasheet:    panasonicDatasheets + "RDO0000/AOA0000C331.pdf",
		Voltage:      "150V",
		CaseCodeIn:   "0603",
		CaseCodeMM:   "1608",
		Power:        "0.25W",
		Range:        types.ValueRange{Min: encode.MinResistance, Max: 1e6},
		Packaging:    []string{"V"},
		Tables:       erj(tolF, tolF),
	},
}
