// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/partcatalog/pkg/types"
)

func TestDecodeConfigDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := decodeConfig(v)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultOutputConfig(), cfg.Output)
	assert.Equal(t, types.DefaultBrowseConfig(), cfg.Browse)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestDecodeConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partcatalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
output:
  data_dir: out/data
  arrow: true
log:
  level: debug
browse:
  addr: "127.0.0.1:9000"
  page_size: 25
`), 0o644))

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := decodeConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "out/data", cfg.Output.DataDir)
	assert.True(t, cfg.Output.Arrow)
	assert.True(t, cfg.Output.Verify)
	assert.Equal(t, "symbols", cfg.Output.SymbolDir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:9000", cfg.Browse.Addr)
	assert.Equal(t, 25, cfg.Browse.PageSize)
	assert.Equal(t, "**/*.csv", cfg.Browse.Pattern)
}

func TestDecodeConfigEnv(t *testing.T) {
	t.Setenv("PARTCATALOG_OUTPUT_DATA_DIR", "/tmp/catalog")

	v := viper.New()
	v.SetEnvPrefix("PARTCATALOG")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	setDefaults(v)

	cfg, err := decodeConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/catalog", cfg.Output.DataDir)
}

func TestSeriesCommand(t *testing.T) {
	var out bytes.Buffer
	seriesCmd.SetOut(&out)
	seriesCmd.Run(seriesCmd, nil)

	assert.Contains(t, out.String(), "resistors:\n  ERJ-2RK\n")
	assert.Contains(t, out.String(), "connectors:\n  TBP02R2-381\n")
	assert.Contains(t, out.String(), "inductors:\n  XAL1513\n")
}
