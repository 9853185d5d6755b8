// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sink

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/google/uuid"

	"github.com/pdiddy/partcatalog/internal/catalog"
)

// footprintNamespace seeds the name-based UUIDs of footprint elements so a
// re-run over the same CSV produces byte-identical files.
var footprintNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("partcatalog/footprints"))

// Courtyard outline stroke in millimetres.
const courtyardWidth = 0.00635

// FootprintReport lists what one WriteFootprints call produced.
type FootprintReport struct {
	// Written holds the paths of footprint files written, in CSV order.
	Written []string
	// Failed holds one error per skipped row: *MissingSeriesError or
	// *SinkIOError.
	Failed []error
}

type footprintPad struct {
	Number string
	Shape  string
	X      float64
	UUID   string
}

type footprintData struct {
	// Name is the library footprint name; MPN is the part it was built for.
	Name string
	MPN  string
	Spec FootprintSpec

	Left, Right float64
	MarkerX     float64
	MarkerEndX  float64
	ValueY      float64
	Pads        []footprintPad
	Model       Vec3

	// UUIDs by element name.
	IDs map[string]string
}

var footprintFuncs = template.FuncMap{
	"q":    quote,
	"mm":   mm,
	"f3":   func(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) },
	"neg":  func(v float64) float64 { return -v },
	"cu":   func() float64 { return courtyardWidth },
	"rect": func(d footprintData, layer string, width float64) map[string]any {
		return map[string]any{"D": d, "Layer": layer, "Width": width}
	},
}

var footprintTmpl = template.Must(template.Must(
	template.New("footprint").Funcs(footprintFuncs).Parse(footprintText)).Parse(footprintShapeText))

const footprintText = `(footprint "{{q .Name}}"
	(version 20240108)
	(generator "pcbnew")
	(generator_version "8.0")
	(layer "F.Cu")
	(property "Reference" "REF**"
		(at {{mm .Spec.RefX}} {{mm .Spec.RefY}} 0)
		(layer "F.SilkS")
		(uuid "{{index .IDs "reference"}}")
		(effects
			(font
				(size 0.762 0.762)
				(thickness 0.1524)
			)
		)
	)
	(property "Value" "{{q .MPN}}"
		(at 0 {{mm .ValueY}} 0)
		(layer "F.Fab")
		(uuid "{{index .IDs "value"}}")
		(effects
			(font
				(size 0.762 0.762)
				(thickness 0.1524)
			)
			(justify left)
		)
	)
{{- template "hidden" (rect . "Footprint" 0)}}
{{- template "hidden" (rect . "Datasheet" 0)}}
{{- template "hidden" (rect . "Description" 0)}}
	(attr through_hole)
{{- template "rect" (rect . "F.SilkS" .Spec.SilkWidth)}}
{{- template "marker" (rect . "F.SilkS" .Spec.SilkWidth)}}
{{- template "rect" (rect . "F.CrtYd" cu)}}
{{- template "rect" (rect . "F.Fab" .Spec.SilkWidth)}}
{{- template "marker" (rect . "F.Fab" .Spec.SilkWidth)}}
{{- range .Pads}}
	(pad "{{.Number}}" thru_hole {{.Shape}}
		(at {{f3 .X}} 0)
		(size {{mm $.Spec.PadSize}} {{mm $.Spec.PadSize}})
		(drill {{mm $.Spec.DrillSize}})
		(layers "*.Cu" "*.Mask")
		(remove_unused_layers no)
		(solder_mask_margin {{mm $.Spec.MaskMargin}})
		(uuid "{{.UUID}}")
	)
{{- end}}
	(model "${KIPRJMOD}/KiCAD_Symbol_Generator/3D_models/CUI_DEVICES_{{q .MPN}}.step"
		(offset
			(xyz {{f3 .Model.X}} {{mm .Model.Y}} {{mm .Model.Z}})
		)
		(scale
			(xyz 1 1 1)
		)
		(rotate
			(xyz {{mm .Spec.ModelRotation.X}} {{mm .Spec.ModelRotation.Y}} {{mm .Spec.ModelRotation.Z}})
		)
	)
)
`

// Element templates take {D footprintData, Layer string, Width float64}.
// "hidden" reuses Layer as the property name.
const footprintShapeText = `
{{define "hidden"}}
	(property "{{.Layer}}" ""
		(at 0 0 0)
		(layer "F.Fab")
		(hide yes)
		(uuid "{{index .D.IDs .Layer}}")
		(effects
			(font
				(size 1.27 1.27)
				(thickness 0.15)
			)
		)
	)
{{- end}}
{{define "rect"}}
	(fp_rect
		(start {{f3 (neg .D.Left)}} {{mm .D.Spec.HeightBottom}})
		(end {{f3 .D.Right}} {{mm .D.Spec.HeightTop}})
		(stroke
			(width {{mm .Width}})
			(type default)
		)
		(fill none)
		(layer "{{.Layer}}")
		(uuid "{{index .D.IDs (print "rect " .Layer)}}")
	)
{{- end}}
{{define "marker"}}
	(fp_circle
		(center {{mm .D.MarkerX}} {{mm .D.Spec.CircleY}})
		(end {{mm .D.MarkerEndX}} {{mm .D.Spec.CircleY}})
		(stroke
			(width {{mm .Width}})
			(type solid)
		)
		(fill none)
		(layer "{{.Layer}}")
		(uuid "{{index .D.IDs (print "marker " .Layer)}}")
	)
{{- end}}
`

// footprintElements names every uuid-bearing element except pads.
var footprintElements = []string{
	"reference", "value", "Footprint", "Datasheet", "Description",
	"rect F.SilkS", "marker F.SilkS", "rect F.CrtYd", "rect F.Fab", "marker F.Fab",
}

// WriteFootprints reads a connector CSV and writes one <name>.kicad_mod per
// row into outDir, named after the row's Footprint reference. Rows whose series has no layout, or whose file cannot be
// written, are reported in FootprintReport.Failed and do not stop the rest.
// The returned error is set only when the CSV itself cannot be read.
func WriteFootprints(csvPath, outDir string) (FootprintReport, error) {
	var report FootprintReport

	table, err := ReadCSV(csvPath)
	if err != nil {
		return report, err
	}

	for _, r := range rowsOf(table) {
		mpn := r.get(catalog.ColMPN)
		series := r.get(catalog.ColSeries)
		spec, ok := FootprintLayout(series)
		if !ok {
			report.Failed = append(report.Failed, &MissingSeriesError{MPN: mpn, Series: series})
			continue
		}

		name := footprintName(r.get(catalog.ColFootprint), mpn)
		data := buildFootprint(name, mpn, pinCount(r), pitchOf(r, spec), spec)
		path := filepath.Join(outDir, name+".kicad_mod")
		err := WriteAtomic(path, func(w io.Writer) error {
			return renderFootprint(w, data)
		})
		if err != nil {
			report.Failed = append(report.Failed, &SinkIOError{Op: "write footprint", Path: path, Err: err})
			continue
		}
		report.Written = append(report.Written, path)
	}
	return report, nil
}

func renderFootprint(w io.Writer, d footprintData) error {
	if err := footprintTmpl.Execute(w, d); err != nil {
		return fmt.Errorf("rendering footprint %s: %w", d.Name, err)
	}
	return nil
}

// buildFootprint computes the outline, pads, and model placement for an
// n-pin part. Pads are centred on the origin; pad 1 is square.
func buildFootprint(name, mpn string, pins int, pitch float64, spec FootprintSpec) footprintData {
	extra := float64(pins-2) * spec.WidthPerPin / 2
	markerX := spec.CircleX - extra

	d := footprintData{
		Name:       name,
		MPN:        mpn,
		Spec:       spec,
		Left:       spec.WidthLeft + extra,
		Right:      spec.WidthRight + extra,
		MarkerX:    markerX,
		MarkerEndX: markerX - spec.CircleRadius,
		ValueY:     spec.HeightTop + 1.042,
		Model:      spec.ModelOffsetFor(pins),
		IDs:        make(map[string]string, len(footprintElements)),
	}
	for _, element := range footprintElements {
		d.IDs[element] = elementUUID(name, element)
	}

	start := -float64(pins-1) * pitch / 2
	for i := 0; i < pins; i++ {
		shape := "circle"
		if i == 0 {
			shape = "rect"
		}
		n := strconv.Itoa(i + 1)
		d.Pads = append(d.Pads, footprintPad{
			Number: n,
			Shape:  shape,
			X:      start + float64(i)*pitch,
			UUID:   elementUUID(name, "pad "+n),
		})
	}
	return d
}

func elementUUID(name, element string) string {
	return uuid.NewSHA1(footprintNamespace, []byte(name+"/"+element)).String()
}

// footprintName strips the library prefix from a "lib:name" reference. An
// empty reference falls back to the MPN.
func footprintName(ref, mpn string) string {
	if i := strings.LastIndexByte(ref, ':'); i >= 0 {
		ref = ref[i+1:]
	}
	if ref == "" {
		return mpn
	}
	return ref
}

// pitchOf reads the Pitch column, falling back to the layout's pin width.
func pitchOf(r row, spec FootprintSpec) float64 {
	p, err := strconv.ParseFloat(strings.TrimSpace(r.get(catalog.ColPitch)), 64)
	if err != nil || p <= 0 {
		return spec.WidthPerPin
	}
	return p
}
