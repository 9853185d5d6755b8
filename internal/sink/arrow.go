// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sink

import (
	"fmt"
	"io"
	"os"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"

	"github.com/pdiddy/partcatalog/internal/catalog"
)

// tableSchema maps every CSV column to a utf8 field.
func tableSchema(header []string) *arrow.Schema {
	fields := make([]arrow.Field, len(header))
	for i, name := range header {
		fields[i] = arrow.Field{Name: name, Type: arrow.BinaryTypes.String}
	}
	return arrow.NewSchema(fields, nil)
}

// WriteArrow writes the table as a single-record Arrow IPC stream.
func WriteArrow(path string, table catalog.Table) error {
	pool := memory.NewGoAllocator()
	schema := tableSchema(table.Header)

	b := array.NewRecordBuilder(pool, schema)
	defer b.Release()
	for _, cells := range table.Rows {
		for i := range table.Header {
			sb := b.Field(i).(*array.StringBuilder)
			if i < len(cells) {
				sb.Append(cells[i])
			} else {
				sb.AppendNull()
			}
		}
	}
	rec := b.NewRecord()
	defer rec.Release()

	err := WriteAtomic(path, func(w io.Writer) error {
		writer := ipc.NewWriter(w, ipc.WithSchema(schema), ipc.WithAllocator(pool))
		if err := writer.Write(rec); err != nil {
			writer.Close()
			return err
		}
		return writer.Close()
	})
	if err != nil {
		return &SinkIOError{Op: "write arrow", Path: path, Err: err}
	}
	return nil
}

// ReadArrow loads an Arrow IPC stream written by WriteArrow.
func ReadArrow(path string) (catalog.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return catalog.Table{}, &SinkIOError{Op: "read arrow", Path: path, Err: err}
	}
	defer f.Close()

	reader, err := ipc.NewReader(f, ipc.WithAllocator(memory.NewGoAllocator()))
	if err != nil {
		return catalog.Table{}, &SinkIOError{Op: "read arrow", Path: path, Err: err}
	}
	defer reader.Release()

	schema := reader.Schema()
	table := catalog.Table{Header: make([]string, schema.NumFields())}
	for i, field := range schema.Fields() {
		table.Header[i] = field.Name
	}

	for reader.Next() {
		rec := reader.Record()
		cols := make([]*array.String, rec.NumCols())
		for i := range cols {
			col, ok := rec.Column(i).(*array.String)
			if !ok {
				return catalog.Table{}, &SinkIOError{Op: "read arrow", Path: path,
					Err: fmt.Errorf("column %q is %s, want utf8", table.Header[i], rec.Column(i).DataType())}
			}
			cols[i] = col
		}
		for r := 0; r < int(rec.NumRows()); r++ {
			cells := make([]string, len(cols))
			for i, col := range cols {
				cells[i] = col.Value(r)
			}
			table.Rows = append(table.Rows, cells)
		}
	}
	if err := reader.Err(); err != nil {
		return catalog.Table{}, &SinkIOError{Op: "read arrow", Path: path, Err: err}
	}
	return table, nil
}
