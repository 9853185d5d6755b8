// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sink

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/partcatalog/internal/catalog"
)

// --- test helpers ---

func generateTable(t *testing.T, f catalog.Family, key string, limit int) catalog.Table {
	t.Helper()
	records, err := catalog.Generate(f, key)
	require.NoError(t, err)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return catalog.Tabulate(f, records)
}

func writeTableCSV(t *testing.T, table catalog.Table) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parts.csv")
	require.NoError(t, WriteCSV(path, table))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// --- CSV ---

func TestCSVRoundTrip(t *testing.T) {
	table := generateTable(t, catalog.Connectors, "TBP02R2-381", 0)
	path := writeTableCSV(t, table)

	got, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, table.Header, got.Header)
	assert.Equal(t, table.Rows, got.Rows)
}

func TestWriteCSVLeavesNoTempFiles(t *testing.T) {
	table := generateTable(t, catalog.Connectors, "TBP02R2-381", 2)
	path := writeTableCSV(t, table)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "parts.csv", entries[0].Name())
}

func TestWriteAtomicKeepsOldFileOnRenderError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("family: connectors\n"), 0o644))

	err := WriteAtomic(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "fam")
		return errors.New("interrupted")
	})
	require.Error(t, err)
	assert.Equal(t, "family: connectors\n", readFile(t, path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestReadCSVMissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	var ioErr *SinkIOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "read csv", ioErr.Op)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadCSVEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := ReadCSV(path)
	assert.ErrorContains(t, err, "missing header row")
}

func TestWriteCSVUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := WriteCSV(filepath.Join(blocker, "parts.csv"), catalog.Table{Header: []string{"MPN"}})
	var ioErr *SinkIOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "write csv", ioErr.Op)
}

// --- Arrow ---

func TestArrowRoundTrip(t *testing.T) {
	table := generateTable(t, catalog.Capacitors, "GCM155", 20)
	path := filepath.Join(t.TempDir(), "parts.arrow")
	require.NoError(t, WriteArrow(path, table))

	got, err := ReadArrow(path)
	require.NoError(t, err)
	assert.Equal(t, table.Header, got.Header)
	assert.Equal(t, table.Rows, got.Rows)
}

func TestReadArrowMissingFile(t *testing.T) {
	_, err := ReadArrow(filepath.Join(t.TempDir(), "nope.arrow"))
	var ioErr *SinkIOError
	assert.True(t, errors.As(err, &ioErr))
}

// --- symbols ---

func TestWriteSymbolLibraryPerFamily(t *testing.T) {
	cases := []struct {
		family catalog.Family
		key    string
		marker string
	}{
		{catalog.Resistors, "ERJ-2RK", "(xy 1.016 -1.143)"},
		{catalog.Capacitors, "GCM155", "(xy -2.032 -0.762) (xy 2.032 -0.762)"},
		{catalog.Connectors, "TBP02R2-381", "(rectangle"},
		{catalog.Inductors, "XFL2010", "(mid 0.6323 -1.905)"},
	}
	for _, tc := range cases {
		t.Run(tc.family.String(), func(t *testing.T) {
			table := generateTable(t, tc.family, tc.key, 3)
			csvPath := writeTableCSV(t, table)
			out := filepath.Join(t.TempDir(), "lib.kicad_sym")

			require.NoError(t, WriteSymbolLibrary(tc.family, csvPath, out))
			require.NoError(t, VerifyFile(out, HeadSymbolLib))

			text := readFile(t, out)
			assert.True(t, strings.HasPrefix(text, "(kicad_symbol_lib\n"))
			assert.Contains(t, text, tc.marker)
			assert.Equal(t, 3, strings.Count(text, "\n\t(symbol \""))

			mpnCol := table.Column(catalog.ColMPN)
			for _, r := range table.Rows {
				assert.Contains(t, text, `"`+r[mpnCol]+`"`)
			}
		})
	}
}

func TestConnectorSymbolPins(t *testing.T) {
	table := generateTable(t, catalog.Connectors, "TBP02R2-381", 0)
	pins := 0
	for _, r := range table.Rows[:2] {
		n := row{header: map[string]int{catalog.ColPins: table.Column(catalog.ColPins)}, cells: r}
		pins += pinCount(n)
	}
	table.Rows = table.Rows[:2]
	csvPath := writeTableCSV(t, table)
	out := filepath.Join(t.TempDir(), "lib.kicad_sym")

	require.NoError(t, WriteSymbolLibrary(catalog.Connectors, csvPath, out))
	text := readFile(t, out)
	assert.Equal(t, 5, pins)
	assert.Equal(t, pins, strings.Count(text, "(pin passive line"))
	assert.Contains(t, text, `(property "Reference" "J"`)
}

func TestBuildSymbolConnectorBox(t *testing.T) {
	header := map[string]int{catalog.ColSymbolName: 0, catalog.ColPins: 1}
	s := buildSymbol(catalog.Connectors, row{header: header, cells: []string{"J_X", "6"}})

	require.Len(t, s.Pins, 6)
	assert.InDelta(t, 6.35, s.Pins[0].Y, 1e-9)
	assert.InDelta(t, -6.35, s.Pins[5].Y, 1e-9)
	assert.InDelta(t, 8.89, s.BoxTop, 1e-9)

	s = buildSymbol(catalog.Connectors, row{header: header, cells: []string{"J_Y", "2"}})
	assert.InDelta(t, 3.81, s.BoxTop, 1e-9)
}

func TestSymbolLibraryMissingCSV(t *testing.T) {
	err := WriteSymbolLibrary(catalog.Resistors, filepath.Join(t.TempDir(), "nope.csv"), filepath.Join(t.TempDir(), "x.kicad_sym"))
	var ioErr *SinkIOError
	assert.True(t, errors.As(err, &ioErr))
}

// --- footprints ---

func TestWriteFootprints(t *testing.T) {
	table := generateTable(t, catalog.Connectors, "TBP02R2-381", 0)
	csvPath := writeTableCSV(t, table)
	outDir := filepath.Join(t.TempDir(), "connector_footprints.pretty")

	report, err := WriteFootprints(csvPath, outDir)
	require.NoError(t, err)
	assert.Empty(t, report.Failed)
	require.Len(t, report.Written, table.Len())
	assert.Equal(t, filepath.Join(outDir, "TBP02R2-381-02P.kicad_mod"), report.Written[0])

	for _, path := range report.Written {
		require.NoError(t, VerifyFile(path, HeadFootprint))
	}

	text := readFile(t, report.Written[0])
	assert.True(t, strings.HasPrefix(text, `(footprint "TBP02R2-381-02P"`))
	assert.Contains(t, text, `(pad "1" thru_hole rect`)
	assert.Contains(t, text, `(pad "2" thru_hole circle`)
	assert.Equal(t, 2, strings.Count(text, "(pad "))
	assert.Contains(t, text, "(at -1.905 0)")
	assert.Contains(t, text, `(property "Value" "TBP02R2-02P"`)
	assert.Contains(t, text, "CUI_DEVICES_TBP02R2-02P.step")
	assert.Contains(t, text, "(xyz 17.145 -6.477 18.288)")
	assert.Contains(t, text, "(xyz 90 0 -90)")
}

func TestWriteFootprintsDeterministic(t *testing.T) {
	table := generateTable(t, catalog.Connectors, "TBP02R2-381", 3)
	csvPath := writeTableCSV(t, table)

	first, err := WriteFootprints(csvPath, filepath.Join(t.TempDir(), "a"))
	require.NoError(t, err)
	second, err := WriteFootprints(csvPath, filepath.Join(t.TempDir(), "b"))
	require.NoError(t, err)

	require.Len(t, second.Written, len(first.Written))
	for i := range first.Written {
		assert.Equal(t, readFile(t, first.Written[i]), readFile(t, second.Written[i]))
	}
}

func TestWriteFootprintsMissingSeries(t *testing.T) {
	table := generateTable(t, catalog.Connectors, "TBP02R2-381", 2)
	seriesCol := table.Column(catalog.ColSeries)
	mpnCol := table.Column(catalog.ColMPN)
	table.Rows[0][seriesCol] = "TBX99-100"
	table.Rows[0][mpnCol] = "TBX99-02P"
	csvPath := writeTableCSV(t, table)

	report, err := WriteFootprints(csvPath, t.TempDir())
	require.NoError(t, err)
	require.Len(t, report.Written, 1)
	require.Len(t, report.Failed, 1)

	var missing *MissingSeriesError
	require.True(t, errors.As(report.Failed[0], &missing))
	assert.Equal(t, "TBX99-100", missing.Series)
	assert.Equal(t, "TBX99-02P", missing.MPN)
}

func TestWriteFootprintsMissingCSV(t *testing.T) {
	_, err := WriteFootprints(filepath.Join(t.TempDir(), "nope.csv"), t.TempDir())
	var ioErr *SinkIOError
	assert.True(t, errors.As(err, &ioErr))
}

func TestBuildFootprintGeometry(t *testing.T) {
	spec, ok := FootprintLayout("TBP02R2-381")
	require.True(t, ok)

	d := buildFootprint("TBP02R2-381-04P", "TBP02R2-04P", 4, 3.81, spec)
	assert.InDelta(t, 8.255, d.Left, 1e-9)
	assert.InDelta(t, 8.255, d.Right, 1e-9)
	assert.InDelta(t, -10.81, d.MarkerX, 1e-9)
	assert.InDelta(t, spec.CircleRadius, d.MarkerX-d.MarkerEndX, 1e-9)

	require.Len(t, d.Pads, 4)
	wantX := []float64{-5.715, -1.905, 1.905, 5.715}
	for i, p := range d.Pads {
		assert.InDelta(t, wantX[i], p.X, 1e-9)
	}
	assert.Equal(t, "rect", d.Pads[0].Shape)
	assert.Equal(t, "circle", d.Pads[3].Shape)

	assert.InDelta(t, 13.335, d.Model.X, 1e-9)
	assert.InDelta(t, -6.477, d.Model.Y, 1e-9)
}

func TestFootprintName(t *testing.T) {
	assert.Equal(t, "TBP02R2-381-02P", footprintName("footprints:TBP02R2-381-02P", "TBP02R2-02P"))
	assert.Equal(t, "TB004-508-03P", footprintName("TB004-508-03P", "TB004-03P"))
	assert.Equal(t, "TBP02R2-02P", footprintName("", "TBP02R2-02P"))
}

func TestFootprintUUIDsDistinct(t *testing.T) {
	spec, _ := FootprintLayout("TB004-508")
	d := buildFootprint("TB004-508-03P", "TB004-03P", 3, 5.08, spec)

	seen := map[string]bool{}
	for _, id := range d.IDs {
		seen[id] = true
	}
	for _, p := range d.Pads {
		seen[p.UUID] = true
	}
	assert.Len(t, seen, len(footprintElements)+3)
}

func TestOffsetOpApply(t *testing.T) {
	base := Vec3{X: 1, Y: 2, Z: 3}
	assert.Equal(t, Vec3{X: 3.5, Y: 2, Z: 3}, OffsetAdd.Apply(base, 2.5))
	assert.Equal(t, Vec3{X: -1.5, Y: 2, Z: 3}, OffsetSubtract.Apply(base, 2.5))
	assert.Equal(t, "subtract", OffsetSubtract.String())
}

func TestFootprintLayoutsCoverConnectorSeries(t *testing.T) {
	for _, key := range catalog.Connectors.SeriesKeys() {
		_, ok := FootprintLayout(key)
		assert.True(t, ok, key)
	}
	_, ok := FootprintLayout("TBP02R2")
	assert.False(t, ok)
}

// --- verify ---

func TestVerify(t *testing.T) {
	assert.NoError(t, Verify(strings.NewReader(`(footprint "X" (layer "F.Cu"))`), HeadFootprint))
	assert.Error(t, Verify(strings.NewReader(`(kicad_symbol_lib (version 1))`), HeadFootprint))
	assert.Error(t, Verify(strings.NewReader(`(footprint "A") (footprint "B")`), HeadFootprint))
	assert.Error(t, Verify(strings.NewReader(`footprint`), HeadFootprint))
	assert.Error(t, Verify(strings.NewReader(`((footprint) "X")`), HeadFootprint))
	assert.NoError(t, Verify(strings.NewReader(`(kicad_symbol_lib (version 20211014) (generator partcatalog))`), HeadSymbolLib))
}

func TestMM(t *testing.T) {
	assert.Equal(t, "0", mm(0))
	assert.Equal(t, "0", mm(-0.00001))
	assert.Equal(t, "2.54", mm(2.54))
	assert.Equal(t, "-19.05", mm(-19.05))
	assert.Equal(t, "1.016", mm(1.016))
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `a\"b\\c\n`, quote("a\"b\\c\n"))
}
