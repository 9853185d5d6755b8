// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sink

import (
	"fmt"
	"io"
	"os"

	"github.com/chewxy/sexp"
)

// Root form heads of the KiCad artifacts this package writes.
const (
	HeadSymbolLib = "kicad_symbol_lib"
	HeadFootprint = "footprint"
)

// Verify parses r as a single KiCad s-expression whose root form starts
// with head. It catches unbalanced output before KiCad does.
func Verify(r io.Reader, head string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading artifact: %w", err)
	}

	forms, err := sexp.ParseString(string(data))
	if err != nil {
		return fmt.Errorf("parsing s-expression: %w", err)
	}
	if len(forms) != 1 {
		return fmt.Errorf("expected 1 top-level form, got %d", len(forms))
	}

	root, ok := forms[0].(sexp.List)
	if !ok || len(root) == 0 {
		return fmt.Errorf("root is not a list, want (%s ...)", head)
	}
	if sym, ok := root.Head().(sexp.Symbol); !ok || string(sym) != head {
		return fmt.Errorf("root form is not (%s ...)", head)
	}
	return nil
}

// VerifyFile runs Verify over the file at path.
func VerifyFile(path, head string) error {
	f, err := os.Open(path)
	if err != nil {
		return &SinkIOError{Op: "verify", Path: path, Err: err}
	}
	defer f.Close()

	if err := Verify(f, head); err != nil {
		return &SinkIOError{Op: "verify", Path: path, Err: err}
	}
	return nil
}
