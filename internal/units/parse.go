// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package units

import (
	"fmt"
	"math"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// valueLexer tokenizes formatted values such as "4.7 kΩ", "100pF",
// "330 nH" or "2.2 Mohm".
var valueLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Number", Pattern: `[0-9]+(?:\.[0-9]*)?(?:[eE][-+]?[0-9]+)?`},
	{Name: "Symbol", Pattern: `Ω|ohms?|F|H`},
	{Name: "Prefix", Pattern: `[pnuµμmkKM]`},
})

// quantity is the grammar of one formatted value: a magnitude, an optional
// metric prefix, and an optional unit symbol.
type quantity struct {
	Magnitude float64 `parser:"@Number"`
	Prefix    string  `parser:"@Prefix?"`
	Symbol    string  `parser:"@Symbol?"`
}

var valueParser = participle.MustBuild[quantity](
	participle.Lexer(valueLexer),
	participle.Elide("Whitespace"),
)

var prefixExponent = map[string]int{
	"":  0,
	"p": -12,
	"n": -9,
	"u": -6,
	"µ": -6,
	"μ": -6,
	"m": -3,
	"k": 3,
	"K": 3,
	"M": 6,
}

// ParseResistance parses a formatted resistance back into ohms.
func ParseResistance(s string) (float64, error) {
	return parse(s, "resistance", func(symbol string) bool { return symbol != "F" && symbol != "H" })
}

// ParseCapacitance parses a formatted capacitance back into farads.
func ParseCapacitance(s string) (float64, error) {
	return parse(s, "capacitance", func(symbol string) bool { return symbol == "" || symbol == "F" })
}

// ParseInductance parses a formatted inductance back into henries.
func ParseInductance(s string) (float64, error) {
	return parse(s, "inductance", func(symbol string) bool { return symbol == "" || symbol == "H" })
}

func parse(s, kind string, symbolOK func(string) bool) (float64, error) {
	q, err := valueParser.ParseString("", s)
	if err != nil {
		return 0, fmt.Errorf("parsing %s %q: %w", kind, s, err)
	}
	if !symbolOK(q.Symbol) {
		return 0, fmt.Errorf("parsing %s %q: unexpected unit %q", kind, s, q.Symbol)
	}
	exp, ok := prefixExponent[q.Prefix]
	if !ok {
		return 0, fmt.Errorf("parsing %s %q: unknown prefix %q", kind, s, q.Prefix)
	}
	return Normalize(q.Magnitude * math.Pow10(exp)), nil
}
