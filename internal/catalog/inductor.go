// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"

	"github.com/pdiddy/partcatalog/internal/encode"
	"github.com/pdiddy/partcatalog/internal/units"
	"github.com/pdiddy/partcatalog/pkg/types"
)

// Every Coilcraft XAL/XFL part is AEC-Q200 qualified, carries the "ME"
// suffix and is specified at ±20%.
const (
	coilcraft         = "Coilcraft"
	coilcraftMedia    = "https://www.coilcraft.com/getmedia/"
	inductorTolerance = "±20%"
	aecSuffix         = "ME"
)

// InductorSpec describes one Coilcraft shielded power inductor series.
// Its values are a published list, not a standard series.
type InductorSpec struct {
	Series    string
	Datasheet string

	// Values are nominal inductances in microhenries, in catalog order.
	Values []float64

	// MaxCurrent holds the rated DC current in amperes for each value.
	// Empty when the datasheet gives none.
	MaxCurrent []float64
}

func (s InductorSpec) Key() string { return s.Series }

// Records returns one record per listed value in declaration order.
func (s InductorSpec) Records() ([]types.PartRecord, error) {
	if len(s.MaxCurrent) > 0 && len(s.MaxCurrent) != len(s.Values) {
		return nil, fmt.Errorf("series %s: %d current ratings for %d values", s.Series, len(s.MaxCurrent), len(s.Values))
	}
	records := make([]types.PartRecord, 0, len(s.Values))
	for i, uh := range s.Values {
		henries := units.Normalize(uh * 1e-6)
		code, err := encode.InductanceCode(henries)
		if err != nil {
			return nil, err
		}
		var current float64
		if len(s.MaxCurrent) > 0 {
			current = s.MaxCurrent[i]
		}
		records = append(records, s.record(henries, code, current))
	}
	return records, nil
}

func (s InductorSpec) record(henries float64, code string, current float64) types.PartRecord {
	mpn := s.Series + "-" + code + aecSuffix
	value := units.FormatInductance(henries)
	return types.PartRecord{
		SymbolName:       "L_" + mpn,
		Reference:        "L",
		Value:            henries,
		FormattedValue:   value,
		Footprint:        "footprints:" + s.Series,
		Datasheet:        s.Datasheet,
		Description:      fmt.Sprintf("INDUCTOR SMD %s %s AEC-Q200", value, inductorTolerance),
		Manufacturer:     coilcraft,
		MPN:              mpn,
		Tolerance:        inductorTolerance,
		Series:           s.Series,
		TrustedpartsLink: TrustedpartsSearch + mpn,
		MaxCurrent:       current,
	}
}

var inductorSpecs = []InductorSpec{
	{
		Series:     "XAL1513",
		Datasheet:  coilcraftMedia + "129ad6f3-0445-47fd-a0b3-edeb49177c17/xal1513.pdf",
		Values:     []float64{15},
		MaxCurrent: []float64{22},
	},
	{
		Series:     "XAL1510",
		Datasheet:  coilcraftMedia + "cd1cef27-13f0-4568-8894-f7311475209b/xal1510.pdf",
		Values:     []float64{4.7, 6.8, 8.2, 10, 15, 22, 33},
		MaxCurrent: []float64{29, 26, 24, 22, 18, 14, 12},
	},
	{
		Series:     "XAL1580",
		Datasheet:  coilcraftMedia + "7fdfd306-5217-4ddc-b6b7-a2659ceeb6e3/xal1580.pdf",
		Values:     []float64{0.4, 0.74, 1, 1.3, 1.8, 2, 3, 4.5, 5.3, 6.1},
		MaxCurrent: []float64{60, 59.7, 57.5, 46.7, 43.8, 39.9, 34.4, 27, 26.5, 22.6},
	},
	{
		Series:     "XAL1350",
		Datasheet:  coilcraftMedia + "dc536f86-3a3b-454f-950e-8e153260e61c/xal1350.pdf",
		Values:     []float64{0.63, 0.93, 1.3, 2.2, 3},
		MaxCurrent: []float64{38, 33, 32, 24, 21},
	},
	{
		Series:     "XAL1010",
		Datasheet:  coilcraftMedia + "dd74e670-e705-456a-9a69-585fe02eaf3c/xal1010.pdf",
		Values:     []float64{0.22, 0.45, 0.68, 1, 1.5, 2.2, 3.3, 4.7, 5.6, 6.8, 8.2, 10, 15},
		MaxCurrent: []float64{55.5, 53, 48, 43.5, 40.5, 32, 25, 24, 21.2, 18.5, 17.1, 15.5, 13.8},
	},
	{
		Series:     "XAL1080",
		Datasheet:  coilcraftMedia + "18b60eaf-2c95-4723-8b7f-5f43f66ed007/xal1080.pdf",
		Values:     []float64{10, 12, 15, 18, 22, 33},
		MaxCurrent: []float64{14.8, 13.9, 11.7, 10.8, 10, 7.5},
	},
	{
		Series:     "XAL1060",
		Datasheet:  coilcraftMedia + "8909f858-b441-4d60-acff-8b8ca36f9ede/xal1060.pdf",
		Values:     []float64{0.18, 0.4, 0.68, 1.2, 1.5, 2.2, 3.3, 4.7},
		MaxCurrent: []float64{46, 36.8, 33.9, 26.3, 24.4, 20, 16.8, 14},
	},
	{
		Series:     "XAL1030",
		Datasheet:  coilcraftMedia + "7b108457-7731-456d-9256-ca72f2e1a551/xal1030.pdf",
		Values:     []float64{0.16, 0.3, 0.56, 1},
		MaxCurrent: []float64{42, 35, 32, 23},
	},
	{
		Series:     "XAL8080",
		Datasheet:  coilcraftMedia + "345e50d6-a804-4ecb-9a92-5185221faf3e/xal8080.pdf",
		Values:     []float64{0.68, 0.84, 1, 2.2, 4.7, 6.8, 10, 12, 15, 18, 22, 33, 47},
		MaxCurrent: []float64{37, 35, 34.1, 21.5, 14.6, 11.3, 8.7, 10.5, 9.4, 8.3, 7.6, 6, 4.8},
	},
	{
		Series:     "XAL8050",
		Datasheet:  coilcraftMedia + "5885ede8-ea4f-464a-9dcb-18dbf143a845/xal8050.pdf",
		Values:     []float64{22},
		MaxCurrent: []float64{5.2},
	},
	{
		Series:     "XAL7070",
		Datasheet:  coilcraftMedia + "1ba55433-bcc8-4838-9b21-382f497e12e0/xal7070.pdf",
		Values:     []float64{0.16, 0.3, 0.55, 0.65, 0.8, 1, 1.2, 1.8, 2.2, 3.3, 4.7, 5.6, 6.8, 10, 12, 15, 18, 22, 33, 47},
		MaxCurrent: []float64{36.1, 33.4, 29, 26.5, 25.8, 25, 21.6, 21, 17.8, 15.1, 13.6, 11.4, 9.2, 9.3, 8.2, 7.4, 6.8, 6.5, 4.9, 4.1},
	},
	{
		Series:     "XAL7050",
		Datasheet:  coilcraftMedia + "13a991b3-4273-4be3-81ba-f3cf372b4691/xal7050.pdf",
		Values:     []float64{10, 15, 18, 22, 33, 47},
		MaxCurrent: []float64{8.5, 7, 6.2, 5, 4.6, 3.5},
	},
	{
		Series:     "XAL7030",
		Datasheet:  coilcraftMedia + "0d05a05e-d55d-4a0c-911d-46bd73686633/xal7030.pdf",
		Values:     []float64{0.16, 0.3, 0.6, 1, 1.5, 2.2, 2.7, 3.3, 4.7, 5.6, 6.8, 8.2, 10},
		MaxCurrent: []float64{32.5, 27.6, 23, 21.8, 15, 12.9, 11.4, 10, 9, 7.3, 6.8, 5.9, 5.3},
	},
	{
		Series:     "XAL7020",
		Datasheet:  coilcraftMedia + "0197e98c-67f7-4375-9e38-14d7376a46f3/xal7020.pdf",
		Values:     []float64{0.15, 0.27, 0.33, 0.47, 0.68, 1, 1.2, 1.5, 2.2},
		MaxCurrent: []float64{24, 21, 20, 17, 13, 11, 10, 9, 7},
	},
	{
		Series:     "XAL6060",
		Datasheet:  coilcraftMedia + "ea51f14b-7f32-4dc6-8dfe-d4b70549040f/xal60xx.pdf",
		Values:     []float64{4.7, 5.6, 6.8, 8.2, 10, 15, 22, 33},
		MaxCurrent: []float64{11, 10, 9, 8, 7, 6, 5, 3.6},
	},
	{
		Series:     "XAL6030",
		Datasheet:  coilcraftMedia + "ea51f14b-7f32-4dc6-8dfe-d4b70549040f/xal60xx.pdf",
		Values:     []float64{0.18, 0.33, 0.56, 1, 1.2, 1.8, 2.2, 3.3},
		MaxCurrent: []float64{32, 25, 22, 18, 16, 14, 10, 8},
	},
	{
		Series:     "XAL6020",
		Datasheet:  coilcraftMedia + "467ff589-8942-4e57-92d0-5bef6e04ce09/xal6020.pdf",
		Values:     []float64{0.12, 0.16, 0.27, 0.45, 0.6, 0.9, 1.1},
		MaxCurrent: []float64{27, 26, 25, 22, 18.5, 15.2, 12},
	},
	{
		Series:     "XAL5050",
		Datasheet:  coilcraftMedia + "49bc46c8-4b2c-45b9-9b6c-2eaa235ea698/xal50xx.pdf",
		Values:     []float64{4.7, 5.6, 6.8, 8.2, 10, 15, 22},
		MaxCurrent: []float64{8.2, 7.2, 6.4, 6.1, 4.9, 3.9, 3.4},
	},
	{
		Series:     "XAL5030",
		Datasheet:  coilcraftMedia + "49bc46c8-4b2c-45b9-9b6c-2eaa235ea698/xal50xx.pdf",
		Values:     []float64{0.16, 0.33, 0.6, 0.8, 1, 1.2, 2.2, 3.3, 4.7},
		MaxCurrent: []float64{22.2, 19.2, 17.7, 13, 11.1, 10.4, 9.7, 8.1, 5.9},
	},
	{
		Series:     "XAL5020",
		Datasheet:  coilcraftMedia + "1941eff1-c018-493c-8cd6-d88d2edf5029/xal5020.pdf",
		Values:     []float64{0.16, 0.33, 0.56, 0.8, 1.2},
		MaxCurrent: []float64{18.8, 14.4, 13.9, 13, 9.4},
	},
	{
		Series:     "XAL4040",
		Datasheet:  coilcraftMedia + "6adcb47d-8b55-416c-976e-1e22e0d2848c/xal4000.pdf",
		Values:     []float64{8.2, 10, 15},
		MaxCurrent: []float64{3.4, 3.1, 2.8},
	},
	{
		Series:     "XAL4030",
		Datasheet:  coilcraftMedia + "6adcb47d-8b55-416c-976e-1e22e0d2848c/xal4000.pdf",
		Values:     []float64{3.3, 4.7, 6.8},
		MaxCurrent: []float64{6.6, 5.1, 3.9},
	},
	{
		Series:     "XAL4020",
		Datasheet:  coilcraftMedia + "6adcb47d-8b55-416c-976e-1e22e0d2848c/xal4000.pdf",
		Values:     []float64{0.22, 0.4, 0.6, 1, 1.2, 1.5, 2.2},
		MaxCurrent: []float64{16.8, 14, 11.7, 9.6, 9, 7.5, 5.5},
	},
	{
		Series:     "XFL2005",
		Datasheet:  coilcraftMedia + "73b70df2-8cfe-46c3-92db-66951708f060/xfl2005.pdf",
		Values:     []float64{0.15, 0.22, 0.33, 0.47, 0.68, 1, 1.5, 2.2, 3.3, 4.7, 5.6, 6.8, 8.2, 10},
		MaxCurrent: []float64{1.6, 1.48, 1.3, 1.25, 1.05, 0.84, 0.7, 0.66, 0.5, 0.41, 0.39, 0.38, 0.33, 0.29},
	},
	{
		Series:     "XFL2006",
		Datasheet:  coilcraftMedia + "65419ba7-9eac-409b-830a-74bf182a8aca/xfl2006.pdf",
		Values:     []float64{1, 2.2, 3.3, 4.7, 5.6, 6.8, 8.2, 10, 15, 22, 33, 47, 56, 68, 82, 100},
		MaxCurrent: []float64{1.22, 0.95, 0.72, 0.66, 0.6, 0.52, 0.49, 0.44, 0.35, 0.305, 0.205, 0.205, 0.195, 0.155, 0.165, 0.135},
	},
	{
		Series:     "XFL2010",
		Datasheet:  coilcraftMedia + "50382b97-998f-4b75-b5ee-4a93b0ac4411/xfl2010.pdf",
		Values:     []float64{0.04, 0.12, 0.22, 0.38, 0.6, 0.82, 1, 1.5, 2.2, 3.3, 4.7, 6.8, 8.2, 10, 18, 22, 33, 47, 56, 68, 82, 100, 220},
		MaxCurrent: []float64{4.8, 3.7, 3.1, 2.85, 2.35, 2.15, 1.8, 1.55, 1.35, 1.2, 0.91, 0.79, 0.76, 0.67, 0.46, 0.42, 0.35, 0.31, 0.27, 0.26, 0.21, 0.2, 0.14},
	},
	{
		Series:    "XFL3012",
		Datasheet: coilcraftMedia + "f76a3c9b-4fff-4397-8028-ef8e043eb200/xfl3012.pdf",
		Values:    []float64{0.33, 0.56, 0.68, 1, 1.5, 2.2, 3.3, 4.7, 6.8, 10, 15, 22, 33, 39, 47, 56, 68, 82, 100, 220},
	},
	{
		Series:    "XFL3010",
		Datasheet: coilcraftMedia + "0118859e-f2e2-4063-93cf-e50ed636ea4e/xfl3010.pdf",
		Values:    []float64{0.6, 1, 1.5, 2.2, 3.3, 4.7, 6.8, 10, 15, 22, 33, 47, 68, 82, 100},
	},
	{
		Series:    "XFL4012",
		Datasheet: coilcraftMedia + "2d7c4d90-1677-4c05-9569-33b6dc7153e7/xfl4012.pdf",
		Values:    []float64{0.12, 0.25, 0.47, 0.6},
	},
	{
		Series:    "XFL4015",
		Datasheet: coilcraftMedia + "84927b8b-f089-421b-a7f4-a0fa23afe908/xfl4015.pdf",
		Values:    []float64{0.18, 0.33, 0.47, 0.7, 1.2},
	},
	{
		Series:    "XFL4020",
		Datasheet: coilcraftMedia + "50632d43-da1b-4cdb-8ab4-3029cab51df3/xfl4020.pdf",
		Values:    []float64{0.12, 0.24, 0.33, 0.47, 0.56, 1, 1.5, 2.2, 3.3, 4.7},
	},
	{
		Series:    "XFL4030",
		Datasheet: coilcraftMedia + "d12f7f67-cfc1-404a-9993-f09a1451b0a9/xfl4030.pdf",
		Values:    []float64{0.47, 1, 2, 3, 4.7},
	},
	{
		Series:    "XFL5015",
		Datasheet: coilcraftMedia + "5f7b596c-8f2f-415e-931e-74a5b6804936/xfl5015.pdf",
		Values:    []float64{0.22, 0.42, 0.68, 1.2, 1.5},
	},
	{
		Series:    "XFL5018",
		Datasheet: coilcraftMedia + "5f7b596c-8f2f-415e-931e-74a5b6804936/xfl5015.pdf",
		Values:    []float64{2.2, 3.3},
	},
	{
		Series:    "XFL5030",
		Datasheet: coilcraftMedia + "f01e4ccd-6be9-43eb-bb01-c23b4deeb2c5/xfl5030.pdf",
		Values:    []float64{0.27, 0.56, 1, 2.2, 3.3, 4.7},
	},
	{
		Series:    "XFL6012",
		Datasheet: coilcraftMedia + "ae4a44fc-deeb-45d7-81a6-abe1d0432add/xfl6012.pdf",
		Values:    []float64{0.18, 0.39, 0.6, 0.8, 1},
	},
	{
		Series:    "XFL6060",
		Datasheet: coilcraftMedia + "9e8cc1df-cee0-4215-90fb-b5193fa22761/xfl6060-473.pdf",
		Values:    []float64{47},
	},
	{
		Series:    "XFL7015",
		Datasheet: coilcraftMedia + "ccf09628-6e8c-462a-9dc9-fa4346e7cf0a/xfl7015.pdf",
		Values:    []float64{0.25, 0.47, 0.68, 1, 1.5},
	},
}
