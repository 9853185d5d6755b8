// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package series

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/partcatalog/pkg/types"
)

func TestMultipliers_TableShape(t *testing.T) {
	for _, s := range []Series{E96, E24, E12} {
		t.Run(s.String(), func(t *testing.T) {
			m := s.Multipliers()
			require.NotEmpty(t, m)
			assert.Equal(t, 1.0, m[0])
			for i := 1; i < len(m); i++ {
				assert.Less(t, m[i-1], m[i], "index %d", i)
				assert.Less(t, m[i], 10.0)
			}
		})
	}
	assert.Len(t, E96.Multipliers(), 96)
	assert.Len(t, E24.Multipliers(), 24)
	assert.Len(t, E12.Multipliers(), 12)
}

func TestMultipliers_ReturnsCopy(t *testing.T) {
	m := E12.Multipliers()
	m[0] = 99
	assert.Equal(t, 1.0, E12.Multipliers()[0])
}

func TestDecades_E12CapacitorRange(t *testing.T) {
	got := slices.Collect(Decades(E12, types.ValueRange{Min: 1e-9, Max: 10e-9}))
	want := []float64{1e-9, 1.2e-9, 1.5e-9, 1.8e-9, 2.2e-9, 2.7e-9, 3.3e-9, 3.9e-9, 4.7e-9, 5.6e-9, 6.8e-9, 8.2e-9, 10e-9}
	assert.Equal(t, want, got)
}

func TestDecades_IncludesExactBounds(t *testing.T) {
	got := slices.Collect(Decades(E12, types.ValueRange{Min: 220e-12, Max: 0.1e-6}))
	require.NotEmpty(t, got)
	assert.Equal(t, 220e-12, got[0])
	assert.Equal(t, 0.1e-6, got[len(got)-1])
}

func TestDecades_SingleValueRange(t *testing.T) {
	got := slices.Collect(Decades(E12, types.ValueRange{Min: 4.7e-6, Max: 4.7e-6}))
	assert.Equal(t, []float64{4.7e-6}, got)
}

func TestDecades_Exclusions(t *testing.T) {
	r := types.ValueRange{Min: 100e-9, Max: 1e-6}
	got := slices.Collect(Decades(E12, r, 180e-9, 560e-9))
	assert.NotContains(t, got, 180e-9)
	assert.NotContains(t, got, 560e-9)
	assert.Contains(t, got, 150e-9)
	assert.Len(t, got, 11)
}

func TestDecades_RangeAndMonotonic(t *testing.T) {
	ranges := []types.ValueRange{
		{Min: 1e-12, Max: 1e-2},
		{Min: 10, Max: 1e6},
		{Min: 1e-9, Max: 220e-9},
	}
	for _, s := range []Series{E96, E24, E12} {
		for _, r := range ranges {
			prev := 0.0
			count := 0
			for v := range Decades(s, r) {
				assert.True(t, r.Contains(v), "%s %v outside %+v", s, v, r)
				assert.Greater(t, v, prev)
				prev = v
				count++
			}
			assert.Positive(t, count)
		}
	}
}

func TestDecades_Restartable(t *testing.T) {
	seq := Decades(E24, types.ValueRange{Min: 10, Max: 1000})
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
}

func TestDecades_EarlyStop(t *testing.T) {
	var got []float64
	for v := range Decades(E12, types.ValueRange{Min: 1e-12, Max: 1e-2}) {
		got = append(got, v)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []float64{1e-12, 1.2e-12, 1.5e-12}, got)
}

func TestScaled(t *testing.T) {
	got := slices.Collect(Scaled(1.0, types.ValueRange{Min: 10, Max: 1e6}))
	assert.Equal(t, []float64{10, 100, 1000, 1e4, 1e5, 1e6}, got)

	got = slices.Collect(Scaled(2.2, types.ValueRange{Min: 10, Max: 2.2e6}))
	assert.Equal(t, []float64{22, 220, 2200, 22000, 220000, 2.2e6}, got)

	got = slices.Collect(Scaled(9.76, types.ValueRange{Min: 10, Max: 1e6}))
	assert.Equal(t, []float64{97.6, 976, 9760, 97600, 976000}, got)

	assert.Empty(t, slices.Collect(Scaled(0, types.ValueRange{Min: 1, Max: 10})))
}

func TestUnboundedRangeYieldsNothing(t *testing.T) {
	for _, r := range []types.ValueRange{
		{Min: 10, Max: math.Inf(1)},
		{Min: math.NaN(), Max: 100},
	} {
		assert.Empty(t, slices.Collect(Decades(E12, r)))
		assert.Empty(t, slices.Collect(Scaled(4.7, r)))
		assert.Empty(t, slices.Collect(ScaledSeries(E24, r)))
	}
}

func TestScaledSeries_Order(t *testing.T) {
	r := types.ValueRange{Min: 10, Max: 1e6}
	got := slices.Collect(ScaledSeries(E96, r))

	// Base-outer order: every decade of 1.00 before any decade of 1.02.
	assert.Equal(t, []float64{10, 100, 1000, 1e4, 1e5, 1e6, 10.2, 102}, got[:8])

	// 1.00 spans six decades in [10, 1e6]; the other 95 span five.
	assert.Len(t, got, 6+95*5)

	for _, v := range got {
		assert.True(t, r.Contains(v))
	}
}

func TestScaledSeries_SameSetAsDecades(t *testing.T) {
	r := types.ValueRange{Min: 10, Max: 2.2e6}
	scaled := slices.Collect(ScaledSeries(E24, r))
	slices.Sort(scaled)
	assert.Equal(t, slices.Collect(Decades(E24, r)), scaled)
}

func TestSeries_String(t *testing.T) {
	assert.Equal(t, "E96", E96.String())
	assert.Equal(t, "Series(9)", Series(9).String())
}
