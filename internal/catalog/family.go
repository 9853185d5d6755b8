// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog assembles complete part-number catalogs from static
// series specifications.
//
// Each family (resistors, capacitors, connectors, inductors) owns an
// ordered table of series specifications. Generate expands one series into its full,
// deterministically ordered record list; Tabulate lays records out in the
// family's fixed CSV column order.
package catalog

import (
	"fmt"
	"strings"

	"github.com/pdiddy/partcatalog/pkg/types"
)

// Family is a component family. The set is closed.
type Family int

const (
	Resistors Family = iota
	Capacitors
	Connectors
	Inductors
)

// TrustedpartsSearch is the base URL for per-MPN distributor searches.
const TrustedpartsSearch = "https://www.trustedparts.com/en/search/"

// familyInfo is the per-family lookup table entry.
type familyInfo struct {
	name      string
	label     string
	reference string
	columns   []string
	specs     []Spec
}

var families = map[Family]familyInfo{
	Resistors: {
		name:      "resistors",
		label:     "RESISTORS",
		reference: "R",
		columns:   resistorColumns,
		specs:     specList(resistorSpecs),
	},
	Capacitors: {
		name:      "capacitors",
		label:     "CAPACITORS",
		reference: "C",
		columns:   capacitorColumns,
		specs:     specList(capacitorSpecs),
	},
	Connectors: {
		name:      "connectors",
		label:     "CONNECTORS",
		reference: "J",
		columns:   connectorColumns,
		specs:     specList(connectorSpecs),
	},
	Inductors: {
		name:      "inductors",
		label:     "INDUCTORS",
		reference: "L",
		columns:   inductorColumns,
		specs:     specList(inductorSpecs),
	},
}

// Families returns every family in declaration order.
func Families() []Family {
	return []Family{Resistors, Capacitors, Connectors, Inductors}
}

// ParseFamily resolves a family by name ("resistors", "capacitors",
// "connectors", "inductors"), case-insensitively.
func ParseFamily(name string) (Family, error) {
	for _, f := range Families() {
		if strings.EqualFold(families[f].name, name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown family %q", name)
}

func (f Family) String() string {
	if info, ok := families[f]; ok {
		return info.name
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// Label is the upper-case name used in artifact file names
// (e.g. "RESISTORS" in UNITED_RESISTORS_DATA_BASE.csv).
func (f Family) Label() string { return families[f].label }

// Reference is the schematic reference designator prefix.
func (f Family) Reference() string { return families[f].reference }

// Columns returns the family's CSV header in its fixed order.
func (f Family) Columns() []string {
	return append([]string(nil), families[f].columns...)
}

// SeriesKeys returns the family's series keys in declaration order.
func (f Family) SeriesKeys() []string {
	specs := families[f].specs
	keys := make([]string, len(specs))
	for i, s := range specs {
		keys[i] = s.Key()
	}
	return keys
}

// Spec is one series specification able to expand itself into records.
type Spec interface {
	// Key is the series key the spec is registered under.
	Key() string

	// Records expands the spec into its complete, ordered record list.
	Records() ([]types.PartRecord, error)
}

// UnknownSeriesError reports a series key with no specification.
type UnknownSeriesError struct {
	Family Family
	Key    string
}

func (e *UnknownSeriesError) Error() string {
	return fmt.Sprintf("unknown %s series %q", e.Family, e.Key)
}

// Lookup returns the specification registered for key.
func Lookup(f Family, key string) (Spec, error) {
	info, ok := families[f]
	if !ok {
		return nil, &UnknownSeriesError{Family: f, Key: key}
	}
	for _, s := range info.specs {
		if s.Key() == key {
			return s, nil
		}
	}
	return nil, &UnknownSeriesError{Family: f, Key: key}
}

// Generate expands the series registered under key into its full record
// list. The list is materialized before it is returned, so a RangeError
// part-way through never yields partial output.
func Generate(f Family, key string) ([]types.PartRecord, error) {
	spec, err := Lookup(f, key)
	if err != nil {
		return nil, err
	}
	records, err := spec.Records()
	if err != nil {
		return nil, fmt.Errorf("generating %s series %s: %w", f, key, err)
	}
	return records, nil
}

func specList[S Spec](specs []S) []Spec {
	out := make([]Spec, len(specs))
	for i, s := range specs {
		out[i] = s
	}
	return out
}
