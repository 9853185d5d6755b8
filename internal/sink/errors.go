// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sink

import "fmt"

// SinkIOError reports a failed read or write of one artifact.
type SinkIOError struct {
	// Op names the step that failed (e.g. "write csv", "read csv").
	Op   string
	Path string
	Err  error
}

func (e *SinkIOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *SinkIOError) Unwrap() error { return e.Err }

// MissingSeriesError reports a connector row whose series has no footprint
// layout. Only that row's footprint is skipped.
type MissingSeriesError struct {
	MPN    string
	Series string
}

func (e *MissingSeriesError) Error() string {
	return fmt.Sprintf("no footprint layout for series %q (%s)", e.Series, e.MPN)
}
