// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"strconv"

	"github.com/pdiddy/partcatalog/internal/units"
	"github.com/pdiddy/partcatalog/pkg/types"
)

// Column names shared by the family layouts.
const (
	ColSymbolName    = "Symbol Name"
	ColReference     = "Reference"
	ColValue         = "Value"
	ColFootprint     = "Footprint"
	ColDatasheet     = "Datasheet"
	ColDescription   = "Description"
	ColManufacturer  = "Manufacturer"
	ColMPN           = "MPN"
	ColDielectric    = "Dielectric"
	ColTolerance     = "Tolerance"
	ColVoltageRating = "Voltage Rating"
	ColCaseCodeIn    = "Case Code - in"
	ColCaseCodeMM    = "Case Code - mm"
	ColSeries        = "Series"
	ColPins          = "Pins"
	ColPitch         = "Pitch"
	ColMaxCurrent    = "Max DC Current"
	ColTrustedparts  = "Trustedparts Search"
)

var resistorColumns = []string{
	ColSymbolName, ColReference, ColValue, ColFootprint, ColDatasheet,
	ColDescription, ColManufacturer, ColMPN, ColTolerance, ColVoltageRating,
	ColCaseCodeIn, ColCaseCodeMM, ColSeries, ColTrustedparts,
}

var capacitorColumns = []string{
	ColSymbolName, ColReference, ColValue, ColFootprint, ColDatasheet,
	ColDescription, ColManufacturer, ColMPN, ColDielectric, ColTolerance,
	ColVoltageRating, ColCaseCodeIn, ColCaseCodeMM, ColSeries, ColTrustedparts,
}

var connectorColumns = []string{
	ColSymbolName, ColReference, ColValue, ColFootprint, ColDatasheet,
	ColDescription, ColManufacturer, ColMPN, ColSeries, ColPins, ColPitch,
	ColTrustedparts,
}

var inductorColumns = []string{
	ColSymbolName, ColReference, ColValue, ColFootprint, ColDatasheet,
	ColDescription, ColManufacturer, ColMPN, ColTolerance, ColSeries,
	ColMaxCurrent, ColTrustedparts,
}

var cells = map[string]func(types.PartRecord) string{
	ColSymbolName:    func(r types.PartRecord) string { return r.SymbolName },
	ColReference:     func(r types.PartRecord) string { return r.Reference },
	ColValue:         func(r types.PartRecord) string { return r.FormattedValue },
	ColFootprint:     func(r types.PartRecord) string { return r.Footprint },
	ColDatasheet:     func(r types.PartRecord) string { return r.Datasheet },
	ColDescription:   func(r types.PartRecord) string { return r.Description },
	ColManufacturer:  func(r types.PartRecord) string { return r.Manufacturer },
	ColMPN:           func(r types.PartRecord) string { return r.MPN },
	ColDielectric:    func(r types.PartRecord) string { return r.Dielectric },
	ColTolerance:     func(r types.PartRecord) string { return r.Tolerance },
	ColVoltageRating: func(r types.PartRecord) string { return r.VoltageRating },
	ColCaseCodeIn:    func(r types.PartRecord) string { return r.CaseCodeIn },
	ColCaseCodeMM:    func(r types.PartRecord) string { return r.CaseCodeMM },
	ColSeries:        func(r types.PartRecord) string { return r.Series },
	ColPins:          func(r types.PartRecord) string { return strconv.Itoa(r.Pins) },
	ColPitch:         func(r types.PartRecord) string { return units.Mantissa(r.Pitch) },
	ColMaxCurrent:    maxCurrentCell,
	ColTrustedparts:  func(r types.PartRecord) string { return r.TrustedpartsLink },
}

// maxCurrentCell renders "22 A", or nothing when no rating is published.
func maxCurrentCell(r types.PartRecord) string {
	if r.MaxCurrent == 0 {
		return ""
	}
	return units.Mantissa(r.MaxCurrent) + " A"
}

// Table is a materialized catalog: a header and one row per record, all
// cells rendered as strings.
type Table struct {
	Header []string
	Rows   [][]string
}

// Len returns the number of data rows.
func (t Table) Len() int { return len(t.Rows) }

// Column returns the index of name in the header, or -1.
func (t Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Tabulate lays records out in the family's column order.
func Tabulate(f Family, records []types.PartRecord) Table {
	header := f.Columns()
	rows := make([][]string, len(records))
	for i, r := range records {
		row := make([]string, len(header))
		for j, col := range header {
			row[j] = cells[col](r)
		}
		rows[i] = row
	}
	return Table{Header: header, Rows: rows}
}
