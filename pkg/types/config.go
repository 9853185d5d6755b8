// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OutputConfig holds the directory layout for generated artifacts.
type OutputConfig struct {
	// DataDir receives per-series and unified CSV catalogs (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`

	// SeriesSymbolDir receives per-series KiCad symbol libraries
	// (default "series_kicad_sym").
	SeriesSymbolDir string `json:"series_symbol_dir" yaml:"series_symbol_dir" mapstructure:"series_symbol_dir"`

	// SymbolDir receives the unified KiCad symbol libraries (default "symbols").
	SymbolDir string `json:"symbol_dir" yaml:"symbol_dir" mapstructure:"symbol_dir"`

	// FootprintDir receives connector footprints
	// (default "connector_footprints.pretty").
	FootprintDir string `json:"footprint_dir" yaml:"footprint_dir" mapstructure:"footprint_dir"`

	// Arrow additionally writes each catalog as an Arrow IPC file.
	Arrow bool `json:"arrow" yaml:"arrow" mapstructure:"arrow"`

	// Verify parses every written KiCad artifact and reports malformed output.
	Verify bool `json:"verify" yaml:"verify" mapstructure:"verify"`
}

// DefaultOutputConfig returns the layout used when no config file is present.
func DefaultOutputConfig() OutputConfig {
	return OutputConfig{
		DataDir:         "data",
		SeriesSymbolDir: "series_kicad_sym",
		SymbolDir:       "symbols",
		FootprintDir:    "connector_footprints.pretty",
		Verify:          true,
	}
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	// Level is the minimum level: debug, info, warn, or error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format selects the encoder: "console" or "json" (default console).
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// Development enables zap's development mode (stack traces on warn).
	Development bool `json:"development" yaml:"development" mapstructure:"development"`
}

// BrowseConfig holds settings for the catalog browsing server.
type BrowseConfig struct {
	// Addr is the listen address (default ":8050").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// Pattern selects catalog files under the data directory (default "**/*.csv").
	Pattern string `json:"pattern" yaml:"pattern" mapstructure:"pattern"`

	// PageSize is the number of rows per table page (default 50).
	PageSize int `json:"page_size" yaml:"page_size" mapstructure:"page_size"`

	// Watch reloads a table when its CSV changes on disk.
	Watch bool `json:"watch" yaml:"watch" mapstructure:"watch"`
}

// DefaultBrowseConfig returns the server settings used when no config file
// is present.
func DefaultBrowseConfig() BrowseConfig {
	return BrowseConfig{
		Addr:     ":8050",
		Pattern:  "**/*.csv",
		PageSize: 50,
		Watch:    true,
	}
}

// Config groups all settings for the partcatalog CLI.
type Config struct {
	Output OutputConfig `json:"output" yaml:"output" mapstructure:"output"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
	Browse BrowseConfig `json:"browse" yaml:"browse" mapstructure:"browse"`
}
