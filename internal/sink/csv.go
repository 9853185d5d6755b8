// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sink writes assembled catalogs to disk: CSV part databases, Arrow
// IPC tables, KiCad symbol libraries, and connector footprints.
//
// CAD writers consume the CSV a catalog was written to, not the in-memory
// records, so every artifact is derived from the same file downstream tools
// read. All writes go through a temp file and a rename.
package sink

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/partcatalog/internal/catalog"
)

// WriteCSV writes the table, header first, to path.
func WriteCSV(path string, table catalog.Table) error {
	err := WriteAtomic(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(table.Header); err != nil {
			return err
		}
		if err := cw.WriteAll(table.Rows); err != nil {
			return err
		}
		return cw.Error()
	})
	if err != nil {
		return &SinkIOError{Op: "write csv", Path: path, Err: err}
	}
	return nil
}

// ReadCSV loads a catalog CSV written by WriteCSV.
func ReadCSV(path string) (catalog.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return catalog.Table{}, &SinkIOError{Op: "read csv", Path: path, Err: err}
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return catalog.Table{}, &SinkIOError{Op: "read csv", Path: path, Err: err}
	}
	if len(records) == 0 {
		return catalog.Table{}, &SinkIOError{Op: "read csv", Path: path, Err: fmt.Errorf("missing header row")}
	}
	return catalog.Table{Header: records[0], Rows: records[1:]}, nil
}

// row is a CSV row addressed by column name. Missing columns read as "".
type row struct {
	header map[string]int
	cells  []string
}

func rowsOf(t catalog.Table) []row {
	header := make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		header[h] = i
	}
	out := make([]row, len(t.Rows))
	for i, cells := range t.Rows {
		out[i] = row{header: header, cells: cells}
	}
	return out
}

func (r row) get(col string) string {
	i, ok := r.header[col]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return r.cells[i]
}

func (r row) has(col string) bool {
	_, ok := r.header[col]
	return ok
}
