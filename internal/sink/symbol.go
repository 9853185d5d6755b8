// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sink

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/template"

	"github.com/pdiddy/partcatalog/internal/catalog"
)

// Connector symbol geometry in millimetres.
const (
	pinSpacing      = 2.54
	connectorPinX   = -5.08
	minBoxHeight    = 7.62
	connectorBoxHW  = 2.54
	connectorRefTag = "J"
)

// symbolProperty is one (property ...) form of a symbol.
type symbolProperty struct {
	Name     string
	Value    string
	X, Y     float64
	Size     float64
	Justify  string
	ShowName bool
	Hide     bool
}

// connectorPin is one pin of a connector box symbol.
type connectorPin struct {
	Number string
	Y      float64
}

// symbolData is the template input for one symbol.
type symbolData struct {
	Kind          string
	Name          string
	HidePinNums   bool
	PinNameOffset float64
	Properties    []symbolProperty

	// Connector box only.
	Pins      []connectorPin
	BoxTop    float64
	BoxBottom float64
}

// propertyLayout places one CSV column on a passive symbol.
type propertyLayout struct {
	column string
	x, y   float64
	hidden bool
}

var resistorLayout = []propertyLayout{
	{catalog.ColReference, 2.54, 1.27, false},
	{catalog.ColValue, 2.54, -1.27, false},
	{catalog.ColFootprint, 2.54, -8.89, true},
	{catalog.ColDatasheet, 2.54, -3.81, true},
	{catalog.ColDescription, 2.54, -6.35, true},
	{catalog.ColManufacturer, 2.54, -11.43, true},
	{catalog.ColMPN, 2.54, -13.97, true},
	{catalog.ColTolerance, 2.794, -16.51, true},
	{catalog.ColVoltageRating, 2.54, -19.05, true},
}

var capacitorLayout = []propertyLayout{
	{catalog.ColReference, 2.54, 1.27, false},
	{catalog.ColValue, 2.54, -1.27, false},
	{catalog.ColFootprint, 2.54, -8.89, true},
	{catalog.ColDatasheet, 2.54, -3.81, true},
	{catalog.ColDescription, 2.54, -6.35, true},
	{catalog.ColMPN, 2.54, -11.43, true},
	{catalog.ColVoltageRating, 2.54, -13.97, true},
	{catalog.ColTolerance, 2.54, -16.51, true},
	{catalog.ColManufacturer, 2.54, -19.05, true},
	{catalog.ColDielectric, 2.54, -21.59, true},
}

var inductorLayout = []propertyLayout{
	{catalog.ColReference, 2.54, 1.27, false},
	{catalog.ColValue, 2.54, -1.27, false},
	{catalog.ColFootprint, 2.54, -8.89, true},
	{catalog.ColDatasheet, 2.54, -3.81, true},
	{catalog.ColDescription, 2.54, -6.35, true},
	{catalog.ColManufacturer, 2.54, -11.43, true},
	{catalog.ColMPN, 2.54, -13.97, true},
	{catalog.ColTolerance, 2.54, -16.51, true},
	{catalog.ColMaxCurrent, 2.54, -19.05, true},
}

var connectorLayout = []propertyLayout{
	{catalog.ColValue, 3.81, 2.54, true},
	{catalog.ColFootprint, 3.81, 0, true},
	{catalog.ColDatasheet, 3.81, -2.54, true},
	{catalog.ColDescription, 3.81, -5.08, true},
	{catalog.ColManufacturer, 3.81, -7.62, true},
	{catalog.ColMPN, 3.81, -10.16, true},
}

var symbolFuncs = template.FuncMap{
	"q":   quote,
	"mm":  mm,
	"neg": func(v float64) float64 { return -v },
	"line": func(pts, width string) map[string]string {
		return map[string]string{"Pts": pts, "Width": width}
	},
	"arc": func(start, mid, end string) map[string]string {
		return map[string]string{"Start": start, "Mid": mid, "End": end}
	},
	"pins": func(name, length string) map[string]string {
		return map[string]string{"Name": name, "Length": length}
	},
}

// symbolLibTmpl renders a KiCad 8 symbol library. The drawing templates
// are parsed separately so they add nothing to the library body.
var symbolLibTmpl = template.Must(template.Must(
	template.New("lib").Funcs(symbolFuncs).Parse(symbolLibText)).Parse(symbolDrawingText))

const symbolLibText = `(kicad_symbol_lib
	(version 20231120)
	(generator "kicad_symbol_editor")
	(generator_version "8.0")
{{- range .}}
	(symbol "{{q .Name}}"
{{- if .HidePinNums}}
		(pin_numbers hide)
{{- end}}
		(pin_names
			(offset {{mm .PinNameOffset}})
		)
		(exclude_from_sim no)
		(in_bom yes)
		(on_board yes)
{{- range .Properties}}
		(property "{{q .Name}}" "{{q .Value}}"
			(at {{mm .X}} {{mm .Y}} 0)
{{- if .ShowName}}
			(show_name)
{{- end}}
			(effects
				(font
					(size {{mm .Size}} {{mm .Size}})
				)
				(justify {{.Justify}})
{{- if .Hide}}
				(hide yes)
{{- end}}
			)
		)
{{- end}}
{{- if eq .Kind "resistors"}}{{template "resistor" .}}
{{- else if eq .Kind "capacitors"}}{{template "capacitor" .}}
{{- else if eq .Kind "inductors"}}{{template "inductor" .}}
{{- else}}{{template "connector" .}}
{{- end}}
	)
{{- end}}
)
`

const symbolDrawingText = `
{{define "polyline"}}
			(polyline
				(pts
					{{.Pts}}
				)
				(stroke
					(width {{.Width}})
					(type default)
				)
				(fill
					(type none)
				)
			)
{{- end}}
{{define "twopin"}}
		(symbol "{{q .Name}}_1_1"
			(pin passive line
				(at 0 3.81 270)
				(length {{.Length}})
				(name "~"
					(effects
						(font
							(size 1.27 1.27)
						)
					)
				)
				(number "1"
					(effects
						(font
							(size 1.27 1.27)
						)
					)
				)
			)
			(pin passive line
				(at 0 -3.81 90)
				(length {{.Length}})
				(name "~"
					(effects
						(font
							(size 1.27 1.27)
						)
					)
				)
				(number "2"
					(effects
						(font
							(size 1.27 1.27)
						)
					)
				)
			)
		)
{{- end}}
{{define "resistor"}}
		(symbol "{{q .Name}}_0_1"
{{- template "polyline" (line "(xy 0 -2.286) (xy 0 -2.54)" "0")}}
{{- template "polyline" (line "(xy 0 2.286) (xy 0 2.54)" "0")}}
{{- template "polyline" (line "(xy 0 -0.762) (xy 1.016 -1.143) (xy 0 -1.524) (xy -1.016 -1.905) (xy 0 -2.286)" "0")}}
{{- template "polyline" (line "(xy 0 0.762) (xy 1.016 0.381) (xy 0 0) (xy -1.016 -0.381) (xy 0 -0.762)" "0")}}
{{- template "polyline" (line "(xy 0 2.286) (xy 1.016 1.905) (xy 0 1.524) (xy -1.016 1.143) (xy 0 0.762)" "0")}}
		)
{{- template "twopin" (pins .Name "1.27")}}
{{- end}}
{{define "capacitor"}}
		(symbol "{{q .Name}}_0_1"
{{- template "polyline" (line "(xy -2.032 -0.762) (xy 2.032 -0.762)" "0.508")}}
{{- template "polyline" (line "(xy -2.032 0.762) (xy 2.032 0.762)" "0.508")}}
		)
{{- template "twopin" (pins .Name "2.794")}}
{{- end}}
{{define "arc"}}
			(arc
				(start {{.Start}})
				(mid {{.Mid}})
				(end {{.End}})
				(stroke
					(width 0)
					(type default)
				)
				(fill
					(type none)
				)
			)
{{- end}}
{{define "inductor"}}
		(symbol "{{q .Name}}_0_1"
{{- template "arc" (arc "0 -2.54" "0.6323 -1.905" "0 -1.27")}}
{{- template "arc" (arc "0 -1.27" "0.6323 -0.635" "0 0")}}
{{- template "arc" (arc "0 0" "0.6323 0.635" "0 1.27")}}
{{- template "arc" (arc "0 1.27" "0.6323 1.905" "0 2.54")}}
		)
{{- template "twopin" (pins .Name "1.27")}}
{{- end}}
{{define "connector"}}
		(symbol "{{q .Name}}_0_0"
{{- range .Pins}}
			(pin passive line
				(at {{mm $.PinX}} {{mm .Y}} 0)
				(length 2.54)
				(name "{{.Number}}"
					(effects
						(font
							(size 1.016 1.016)
						)
					)
				)
				(number "{{.Number}}"
					(effects
						(font
							(size 1.016 1.016)
						)
					)
				)
			)
{{- end}}
		)
		(symbol "{{q .Name}}_1_0"
			(rectangle
				(start {{mm (neg .BoxHalfWidth)}} {{mm .BoxTop}})
				(end {{mm .BoxHalfWidth}} {{mm .BoxBottom}})
				(stroke
					(width 0.254)
					(type solid)
				)
				(fill
					(type none)
				)
			)
		)
{{- end}}
`

// PinX and BoxHalfWidth are constants exposed to the connector template.
func (symbolData) PinX() float64         { return connectorPinX }
func (symbolData) BoxHalfWidth() float64 { return connectorBoxHW }

// WriteSymbolLibrary reads a catalog CSV and writes one KiCad symbol per
// row to outPath, drawn for the given family.
func WriteSymbolLibrary(f catalog.Family, csvPath, outPath string) error {
	table, err := ReadCSV(csvPath)
	if err != nil {
		return err
	}

	symbols := make([]symbolData, 0, table.Len())
	for _, r := range rowsOf(table) {
		symbols = append(symbols, buildSymbol(f, r))
	}

	err = WriteAtomic(outPath, func(w io.Writer) error {
		return renderSymbols(w, symbols)
	})
	if err != nil {
		return &SinkIOError{Op: "write symbol library", Path: outPath, Err: err}
	}
	return nil
}

func renderSymbols(w io.Writer, symbols []symbolData) error {
	if err := symbolLibTmpl.Execute(w, symbols); err != nil {
		return fmt.Errorf("rendering symbols: %w", err)
	}
	return nil
}

func buildSymbol(f catalog.Family, r row) symbolData {
	s := symbolData{
		Kind: f.String(),
		Name: r.get(catalog.ColSymbolName),
	}

	switch f {
	case catalog.Resistors:
		s.HidePinNums = true
		s.PinNameOffset = 0
		s.Properties = passiveProperties(r, resistorLayout)
	case catalog.Capacitors:
		s.HidePinNums = true
		s.PinNameOffset = 0.254
		s.Properties = passiveProperties(r, capacitorLayout)
	case catalog.Inductors:
		s.HidePinNums = true
		s.PinNameOffset = 0
		s.Properties = passiveProperties(r, inductorLayout)
	default:
		s.PinNameOffset = 1.016
		s.Properties = connectorProperties(r)
		n := pinCount(r)
		height := math.Max(minBoxHeight, float64(n)*pinSpacing+pinSpacing)
		s.BoxTop, s.BoxBottom = height/2, -height/2
		startY := float64(n-1) * pinSpacing / 2
		for i := 0; i < n; i++ {
			s.Pins = append(s.Pins, connectorPin{
				Number: strconv.Itoa(i + 1),
				Y:      startY - float64(i)*pinSpacing,
			})
		}
	}
	return s
}

func passiveProperties(r row, layout []propertyLayout) []symbolProperty {
	props := make([]symbolProperty, 0, len(layout))
	for _, l := range layout {
		if !r.has(l.column) {
			continue
		}
		props = append(props, symbolProperty{
			Name:     l.column,
			Value:    r.get(l.column),
			X:        l.x,
			Y:        l.y,
			Size:     1.27,
			Justify:  "left",
			ShowName: l.hidden,
			Hide:     l.hidden,
		})
	}
	return props
}

// connectorProperties always emits a "J" reference, whatever the CSV says.
func connectorProperties(r row) []symbolProperty {
	props := []symbolProperty{{
		Name:    catalog.ColReference,
		Value:   connectorRefTag,
		X:       0,
		Y:       5.08,
		Size:    1.27,
		Justify: "left bottom",
	}}
	for _, l := range connectorLayout {
		if !r.has(l.column) {
			continue
		}
		props = append(props, symbolProperty{
			Name:     l.column,
			Value:    r.get(l.column),
			X:        l.x,
			Y:        l.y,
			Size:     1.27,
			Justify:  "left",
			ShowName: true,
			Hide:     true,
		})
	}
	return props
}

// pinCount reads the Pins column, defaulting to two.
func pinCount(r row) int {
	n, err := strconv.Atoi(strings.TrimSpace(r.get(catalog.ColPins)))
	if err != nil || n < 1 {
		return 2
	}
	return n
}

var kicadEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// quote escapes s for use inside a KiCad string literal.
func quote(s string) string { return kicadEscaper.Replace(s) }

// mm renders a coordinate rounded to 0.1 µm with no trailing zeros.
func mm(v float64) string {
	v = math.Round(v*1e4) / 1e4
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
