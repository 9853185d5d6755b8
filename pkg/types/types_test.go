// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.yaml.in/yaml/v3"
)

func TestValueRangeValidate(t *testing.T) {
	assert.NoError(t, ValueRange{Min: 10, Max: 10}.Validate())
	assert.NoError(t, ValueRange{Min: 1e-12, Max: 1e-2}.Validate())
	assert.Error(t, ValueRange{Min: 0, Max: 10}.Validate())
	assert.Error(t, ValueRange{Min: -1, Max: 10}.Validate())
	assert.Error(t, ValueRange{Min: 100, Max: 10}.Validate())
}

func TestValueRangeValidateNonFinite(t *testing.T) {
	cases := []ValueRange{
		{Min: 10, Max: math.Inf(1)},
		{Min: math.NaN(), Max: 10},
		{Min: 10, Max: math.NaN()},
		{Min: math.Inf(-1), Max: 10},
	}
	for _, r := range cases {
		assert.Error(t, r.Validate(), "%v", r)
		assert.False(t, r.Bounded(), "%v", r)
	}
	assert.True(t, ValueRange{Min: 10, Max: 100}.Bounded())
}

func TestValueRangeContains(t *testing.T) {
	r := ValueRange{Min: 10, Max: 100}
	assert.True(t, r.Contains(10))
	assert.True(t, r.Contains(100))
	assert.True(t, r.Contains(47))
	assert.False(t, r.Contains(9.99))
	assert.False(t, r.Contains(100.01))
}

func TestConfigYAMLKeys(t *testing.T) {
	cfg := Config{Output: DefaultOutputConfig(), Browse: DefaultBrowseConfig()}
	data, err := yaml.Marshal(cfg)
	assert.NoError(t, err)

	var back Config
	assert.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, cfg, back)
	assert.Contains(t, string(data), "footprint_dir: connector_footprints.pretty")
	assert.Contains(t, string(data), "page_size: 50")
}
