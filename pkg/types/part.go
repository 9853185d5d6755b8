// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"math"
)

// ValueRange bounds nominal values in base units (ohms, farads or henries).
// Both bounds are inclusive.
type ValueRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Validate reports a range whose bounds are not finite or do not satisfy
// 0 < Min <= Max.
func (r ValueRange) Validate() error {
	if !finite(r.Min) || !finite(r.Max) {
		return fmt.Errorf("range bounds %g..%g must be finite", r.Min, r.Max)
	}
	if r.Min <= 0 {
		return fmt.Errorf("range minimum %g must be positive", r.Min)
	}
	if r.Min > r.Max {
		return fmt.Errorf("range minimum %g exceeds maximum %g", r.Min, r.Max)
	}
	return nil
}

// Bounded reports whether both bounds are finite numbers.
func (r ValueRange) Bounded() bool {
	return finite(r.Min) && finite(r.Max)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Contains reports whether v lies within the range, bounds included.
func (r ValueRange) Contains(v float64) bool {
	return r.Min <= v && v <= r.Max
}

// ToleranceOption pairs a manufacturer tolerance code with its display form.
type ToleranceOption struct {
	// Code is the letter embedded in the MPN (e.g. "F").
	Code string `json:"code" yaml:"code"`

	// Display is the human-readable tolerance (e.g. "1%").
	Display string `json:"display" yaml:"display"`
}

// VoltageOption pairs a manufacturer voltage code with its display form.
type VoltageOption struct {
	// Code is the rated-voltage code embedded in the MPN (e.g. "1H").
	Code string `json:"code" yaml:"code"`

	// Display is the human-readable rating (e.g. "50V").
	Display string `json:"display" yaml:"display"`
}

// PartRecord is one fully materialized catalog row. Records are built once
// per (value, tolerance, packaging, voltage) combination and never mutated.
type PartRecord struct {
	// SymbolName is the KiCad symbol identifier (e.g. "R_ERJ-3EKF1000V").
	SymbolName string `json:"symbol_name" yaml:"symbol_name"`

	// Reference is the reference designator prefix ("R", "C", "L", "J").
	Reference string `json:"reference" yaml:"reference"`

	// Value is the nominal value in base units. Connectors carry their pin count.
	Value float64 `json:"value" yaml:"value"`

	// FormattedValue is the human-readable value (e.g. "4.7 kΩ").
	FormattedValue string `json:"formatted_value" yaml:"formatted_value"`

	Footprint    string `json:"footprint" yaml:"footprint"`
	Datasheet    string `json:"datasheet" yaml:"datasheet"`
	Description  string `json:"description" yaml:"description"`
	Manufacturer string `json:"manufacturer" yaml:"manufacturer"`

	// MPN is the manufacturer part number.
	MPN string `json:"mpn" yaml:"mpn"`

	Tolerance     string `json:"tolerance,omitempty" yaml:"tolerance,omitempty"`
	VoltageRating string `json:"voltage_rating,omitempty" yaml:"voltage_rating,omitempty"`
	Dielectric    string `json:"dielectric,omitempty" yaml:"dielectric,omitempty"`
	CaseCodeIn    string `json:"case_code_in,omitempty" yaml:"case_code_in,omitempty"`
	CaseCodeMM    string `json:"case_code_mm,omitempty" yaml:"case_code_mm,omitempty"`

	// Series is the manufacturer series key the record was generated from.
	Series string `json:"series" yaml:"series"`

	// TrustedpartsLink is a search URL for the MPN.
	TrustedpartsLink string `json:"trustedparts_link" yaml:"trustedparts_link"`

	// MaxCurrent is an inductor's rated DC current in amperes, zero when
	// the manufacturer publishes none.
	MaxCurrent float64 `json:"max_current,omitempty" yaml:"max_current,omitempty"`

	// Pins and Pitch describe connector records; zero for passives.
	Pins  int     `json:"pins,omitempty" yaml:"pins,omitempty"`
	Pitch float64 `json:"pitch,omitempty" yaml:"pitch,omitempty"`
}
