// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"

	"github.com/pdiddy/partcatalog/pkg/types"
)

// ConnectorSpec describes one terminal-block series offered in several
// pin counts.
type ConnectorSpec struct {
	// Series is the full series key including pitch (e.g. "TBP02R2-381").
	// Footprint layouts and footprint names use this key.
	Series string

	// BaseSeries prefixes the MPN (e.g. "TBP02R2").
	BaseSeries   string
	Manufacturer string
	Datasheet    string

	// Pitch is the pin spacing in millimetres.
	Pitch     float64
	PinCounts []int
}

func (s ConnectorSpec) Key() string { return s.Series }

// Records returns one record per pin count in declaration order.
func (s ConnectorSpec) Records() ([]types.PartRecord, error) {
	records := make([]types.PartRecord, 0, len(s.PinCounts))
	for _, pins := range s.PinCounts {
		if pins < 1 {
			return nil, fmt.Errorf("series %s: invalid pin count %d", s.Series, pins)
		}
		records = append(records, s.record(pins))
	}
	return records, nil
}

func (s ConnectorSpec) record(pins int) types.PartRecord {
	mpn := ConnectorMPN(s.BaseSeries, pins)
	value := fmt.Sprintf("%dP", pins)
	return types.PartRecord{
		SymbolName:       "J_" + mpn,
		Reference:        "J",
		Value:            float64(pins),
		FormattedValue:   value,
		Footprint:        "footprints:" + ConnectorMPN(s.Series, pins),
		Datasheet:        s.Datasheet,
		Description:      "CONNECTOR " + value,
		Manufacturer:     s.Manufacturer,
		MPN:              mpn,
		Series:           s.Series,
		TrustedpartsLink: TrustedpartsSearch + mpn,
		Pins:             pins,
		Pitch:            s.Pitch,
	}
}

// ConnectorMPN formats a terminal-block part name: series, dash, two-digit
// pin count, "P". Footprint names use the same form over the full key.
func ConnectorMPN(series string, pins int) string {
	return fmt.Sprintf("%s-%02dP", series, pins)
}

var connectorSpecs = []ConnectorSpec{
	{
		Series:       "TBP02R2-381",
		BaseSeries:   "TBP02R2",
		Manufacturer: "Same Sky",
		Datasheet:    "https://www.sameskydevices.com/product/resource/tbp02r2-381.pdf",
		Pitch:        3.81,
		PinCounts:    []int{2, 3, 4, 5, 6, 8, 10, 12},
	},
}
