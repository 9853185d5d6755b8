// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives catalog generation for one family: per-series
// CSV, Arrow and symbol library files, connector footprints, and the unified
// family database, followed by a run manifest.
//
// A failure in one series or one file is reported and the run moves on;
// only cancellation or an unwritable manifest stops Run early.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/partcatalog/internal/catalog"
	"github.com/pdiddy/partcatalog/internal/encode"
	"github.com/pdiddy/partcatalog/internal/sink"
	"github.com/pdiddy/partcatalog/pkg/types"
)

// Artifact kinds recorded in the manifest.
const (
	KindCSV       = "csv"
	KindArrow     = "arrow"
	KindSymbols   = "symbols"
	KindFootprint = "footprint"
)

// Artifact is one file written by a run.
type Artifact struct {
	Path    string `yaml:"path"`
	Kind    string `yaml:"kind"`
	Series  string `yaml:"series,omitempty"`
	Records int    `yaml:"records,omitempty"`
}

// Failure is one diagnostic from a run.
type Failure struct {
	Series string `yaml:"series,omitempty"`
	Path   string `yaml:"path,omitempty"`
	Kind   string `yaml:"kind"`
	Error  string `yaml:"error"`
}

// Manifest summarises a run. It carries no timestamps so reruns over the
// same configuration produce the same file.
type Manifest struct {
	Family    string     `yaml:"family"`
	Series    []string   `yaml:"series"`
	Records   int        `yaml:"records"`
	Artifacts []Artifact `yaml:"artifacts"`
	Failures  []Failure  `yaml:"failures,omitempty"`
}

// HasFailures reports whether any series or file failed.
func (m Manifest) HasFailures() bool { return len(m.Failures) > 0 }

// Runner generates catalogs into the directories named by Config. Summary
// lines go to Out; diagnostics go to both Out and Log.
type Runner struct {
	Config types.OutputConfig
	Out    io.Writer
	Log    *zap.Logger
}

// NewRunner returns a Runner with a no-op logger and discarded output.
func NewRunner(cfg types.OutputConfig) *Runner {
	return &Runner{Config: cfg, Out: io.Discard, Log: zap.NewNop()}
}

// Run generates the given series of family f, or every series when keys is
// empty. The context is checked between series.
func (r *Runner) Run(ctx context.Context, f catalog.Family, keys []string) (Manifest, error) {
	if len(keys) == 0 {
		keys = f.SeriesKeys()
	}
	m := Manifest{Family: f.String(), Series: keys}
	log := r.logger().With(zap.String("family", f.String()))

	var united []types.PartRecord
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return m, fmt.Errorf("generating %s: %w", f, err)
		}
		records, ok := r.runSeries(&m, log, f, key)
		if ok {
			united = append(united, records...)
		}
	}

	if len(united) > 0 {
		r.writeUnited(&m, log, f, united)
	}
	m.Records = len(united)

	manifestPath := r.ManifestPath(f)
	if err := writeManifest(manifestPath, m); err != nil {
		return m, err
	}
	log.Info("run complete",
		zap.Int("records", m.Records),
		zap.Int("artifacts", len(m.Artifacts)),
		zap.Int("failures", len(m.Failures)),
		zap.String("manifest", manifestPath))
	return m, nil
}

// runSeries writes every artifact for one series. The records are returned
// for the unified list as long as the series generated and its CSV landed.
func (r *Runner) runSeries(m *Manifest, log *zap.Logger, f catalog.Family, key string) ([]types.PartRecord, bool) {
	records, err := catalog.Generate(f, key)
	if err != nil {
		r.fail(m, log, key, "", err)
		return nil, false
	}
	table := catalog.Tabulate(f, records)

	csvPath := r.SeriesCSVPath(key)
	if err := sink.WriteCSV(csvPath, table); err != nil {
		r.fail(m, log, key, csvPath, err)
		return nil, false
	}
	m.Artifacts = append(m.Artifacts, Artifact{Path: csvPath, Kind: KindCSV, Series: key, Records: len(records)})
	fmt.Fprintf(r.out(), "Generated %d part numbers in '%s'\n", len(records), csvPath)

	if r.Config.Arrow {
		arrowPath := r.SeriesArrowPath(key)
		if err := sink.WriteArrow(arrowPath, table); err != nil {
			r.fail(m, log, key, arrowPath, err)
		} else {
			m.Artifacts = append(m.Artifacts, Artifact{Path: arrowPath, Kind: KindArrow, Series: key, Records: len(records)})
		}
	}

	symPath := r.SeriesSymbolPath(f, key)
	if err := r.writeSymbols(f, csvPath, symPath); err != nil {
		r.fail(m, log, key, symPath, err)
	} else {
		m.Artifacts = append(m.Artifacts, Artifact{Path: symPath, Kind: KindSymbols, Series: key, Records: len(records)})
	}

	if f == catalog.Connectors {
		r.writeFootprints(m, log, key, csvPath)
	}

	log.Debug("series complete", zap.String("series", key), zap.Int("records", len(records)))
	return records, true
}

func (r *Runner) writeUnited(m *Manifest, log *zap.Logger, f catalog.Family, records []types.PartRecord) {
	table := catalog.Tabulate(f, records)

	csvPath := r.UnitedCSVPath(f)
	if err := sink.WriteCSV(csvPath, table); err != nil {
		r.fail(m, log, "", csvPath, err)
		return
	}
	m.Artifacts = append(m.Artifacts, Artifact{Path: csvPath, Kind: KindCSV, Records: len(records)})
	fmt.Fprintf(r.out(), "Generated unified CSV file with %d part numbers\n", len(records))

	symPath := r.UnitedSymbolPath(f)
	if err := r.writeSymbols(f, csvPath, symPath); err != nil {
		r.fail(m, log, "", symPath, err)
		return
	}
	m.Artifacts = append(m.Artifacts, Artifact{Path: symPath, Kind: KindSymbols, Records: len(records)})
}

func (r *Runner) writeSymbols(f catalog.Family, csvPath, symPath string) error {
	if err := sink.WriteSymbolLibrary(f, csvPath, symPath); err != nil {
		return err
	}
	if r.Config.Verify {
		return sink.VerifyFile(symPath, sink.HeadSymbolLib)
	}
	return nil
}

func (r *Runner) writeFootprints(m *Manifest, log *zap.Logger, key, csvPath string) {
	report, err := sink.WriteFootprints(csvPath, r.Config.FootprintDir)
	if err != nil {
		r.fail(m, log, key, csvPath, err)
		return
	}
	for _, ferr := range report.Failed {
		r.fail(m, log, key, "", ferr)
	}
	for _, path := range report.Written {
		if r.Config.Verify {
			if err := sink.VerifyFile(path, sink.HeadFootprint); err != nil {
				r.fail(m, log, key, path, err)
				continue
			}
		}
		m.Artifacts = append(m.Artifacts, Artifact{Path: path, Kind: KindFootprint, Series: key})
	}
	fmt.Fprintf(r.out(), "Generated %d footprints in '%s'\n", len(report.Written), r.Config.FootprintDir)
}

// fail records a diagnostic and prints it as one line.
func (r *Runner) fail(m *Manifest, log *zap.Logger, series, path string, err error) {
	kind := Classify(err)
	m.Failures = append(m.Failures, Failure{Series: series, Path: path, Kind: kind, Error: err.Error()})

	subject := series
	if path != "" {
		subject = path
	}
	fmt.Fprintf(r.out(), "failed:  %s (%s: %v)\n", subject, kind, err)
	log.Error("generation failed",
		zap.String("series", series),
		zap.String("path", path),
		zap.String("kind", kind),
		zap.Error(err))
}

// Classify names the kind of a generation error for diagnostics.
func Classify(err error) string {
	var rangeErr *encode.RangeError
	var unknownErr *catalog.UnknownSeriesError
	var missingErr *sink.MissingSeriesError
	var ioErr *sink.SinkIOError
	var staleErr *StaleError
	switch {
	case errors.As(err, &rangeErr):
		return "range"
	case errors.Is(err, encode.ErrPrecision):
		return "precision"
	case errors.As(err, &unknownErr):
		return "unknown-series"
	case errors.As(err, &missingErr):
		return "missing-footprint"
	case errors.As(err, &staleErr):
		return "stale"
	case errors.As(err, &ioErr):
		return "io"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}

func (r *Runner) out() io.Writer {
	if r.Out == nil {
		return io.Discard
	}
	return r.Out
}

func (r *Runner) logger() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}
	return r.Log
}

// SeriesCSVPath is data/<key>_part_numbers.csv.
func (r *Runner) SeriesCSVPath(key string) string {
	return filepath.Join(r.Config.DataDir, key+"_part_numbers.csv")
}

// SeriesArrowPath is data/<key>_part_numbers.arrow.
func (r *Runner) SeriesArrowPath(key string) string {
	return filepath.Join(r.Config.DataDir, key+"_part_numbers.arrow")
}

// SeriesSymbolPath is series_kicad_sym/<LABEL>_<key>_DATA_BASE.kicad_sym.
func (r *Runner) SeriesSymbolPath(f catalog.Family, key string) string {
	return filepath.Join(r.Config.SeriesSymbolDir, fmt.Sprintf("%s_%s_DATA_BASE.kicad_sym", f.Label(), key))
}

// UnitedCSVPath is data/UNITED_<LABEL>_DATA_BASE.csv.
func (r *Runner) UnitedCSVPath(f catalog.Family) string {
	return filepath.Join(r.Config.DataDir, fmt.Sprintf("UNITED_%s_DATA_BASE.csv", f.Label()))
}

// UnitedSymbolPath is symbols/UNITED_<LABEL>_DATA_BASE.kicad_sym.
func (r *Runner) UnitedSymbolPath(f catalog.Family) string {
	return filepath.Join(r.Config.SymbolDir, fmt.Sprintf("UNITED_%s_DATA_BASE.kicad_sym", f.Label()))
}

// ManifestPath is data/<family>_manifest.yaml.
func (r *Runner) ManifestPath(f catalog.Family) string {
	return filepath.Join(r.Config.DataDir, f.String()+"_manifest.yaml")
}

func writeManifest(path string, m Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	err = sink.WriteAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		return &sink.SinkIOError{Op: "write manifest", Path: path, Err: err}
	}
	return nil
}

// ReadManifest loads a manifest written by Run.
func ReadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, &sink.SinkIOError{Op: "read manifest", Path: path, Err: err}
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}
