// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"

	"github.com/pdiddy/partcatalog/internal/sink"
)

// StaleError reports an artifact whose row count no longer matches the
// manifest that recorded it.
type StaleError struct {
	Path string
	Want int
	Got  int
}

func (e *StaleError) Error() string {
	return fmt.Sprintf("%s has %d rows, manifest records %d", e.Path, e.Got, e.Want)
}

// Check re-reads every artifact listed in m and returns a Failure for each
// one that is missing, unparsable or holds a different row count.
func Check(m Manifest) []Failure {
	var out []Failure
	for _, a := range m.Artifacts {
		if err := checkArtifact(a); err != nil {
			out = append(out, Failure{Series: a.Series, Path: a.Path, Kind: Classify(err), Error: err.Error()})
		}
	}
	return out
}

func checkArtifact(a Artifact) error {
	var rows int
	switch a.Kind {
	case KindCSV:
		t, err := sink.ReadCSV(a.Path)
		if err != nil {
			return err
		}
		rows = t.Len()
	case KindArrow:
		t, err := sink.ReadArrow(a.Path)
		if err != nil {
			return err
		}
		rows = t.Len()
	case KindSymbols:
		return sink.VerifyFile(a.Path, sink.HeadSymbolLib)
	case KindFootprint:
		return sink.VerifyFile(a.Path, sink.HeadFootprint)
	default:
		if _, err := os.Stat(a.Path); err != nil {
			return &sink.SinkIOError{Op: "stat", Path: a.Path, Err: err}
		}
		return nil
	}
	if rows != a.Records {
		return &StaleError{Path: a.Path, Want: a.Records, Got: rows}
	}
	return nil
}
