// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the partcatalog CLI. Each component
// family is a subcommand that writes CSV databases, KiCad symbol libraries
// and, for connectors, footprints; serve browses the generated CSVs.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/partcatalog/internal/logging"
	"github.com/pdiddy/partcatalog/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// envKeyReplacer maps nested keys to variables: output.data_dir is
// PARTCATALOG_OUTPUT_DATA_DIR.
var envKeyReplacer = strings.NewReplacer(".", "_")

// logger is built in PersistentPreRunE once configuration is loaded.
var logger = zap.NewNop()

// rootCmd is the base command for the partcatalog CLI.
var rootCmd = &cobra.Command{
	Use:   "partcatalog",
	Short: "Generate electronic part-number catalogs and KiCad libraries",
	Long: `partcatalog expands standard value series (E96, E24, E12) into complete
manufacturer part-number catalogs for SMD resistors and MLCC capacitors,
alongside the published catalogs of terminal-block connectors and power
inductors. Each run writes CSV part databases, KiCad symbol libraries and
connector footprints; serve browses the generated CSVs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		l, err := logging.New(cfg.Log)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./partcatalog.yaml or ~/.config/partcatalog/partcatalog.yaml)")
	pf.String("data-dir", "", "directory for CSV part databases (default \"data\")")
	pf.Bool("arrow", false, "also write each catalog as an Arrow IPC file")
	pf.Bool("verify", true, "parse every written KiCad artifact")
	pf.String("log-level", "", "log level: debug, info, warn, error (default \"info\")")
	pf.String("log-format", "", "log format: console or json (default \"console\")")

	_ = viper.BindPFlag("output.data_dir", pf.Lookup("data-dir"))
	_ = viper.BindPFlag("output.arrow", pf.Lookup("arrow"))
	_ = viper.BindPFlag("output.verify", pf.Lookup("verify"))
	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", pf.Lookup("log-format"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("partcatalog")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "partcatalog"))
		}
	}

	viper.SetEnvPrefix("PARTCATALOG")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so environment variables and
// Unmarshal see it even when no file sets it.
func setDefaults(v *viper.Viper) {
	out := types.DefaultOutputConfig()
	v.SetDefault("output.data_dir", out.DataDir)
	v.SetDefault("output.series_symbol_dir", out.SeriesSymbolDir)
	v.SetDefault("output.symbol_dir", out.SymbolDir)
	v.SetDefault("output.footprint_dir", out.FootprintDir)
	v.SetDefault("output.arrow", out.Arrow)
	v.SetDefault("output.verify", out.Verify)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.development", false)

	b := types.DefaultBrowseConfig()
	v.SetDefault("browse.addr", b.Addr)
	v.SetDefault("browse.pattern", b.Pattern)
	v.SetDefault("browse.page_size", b.PageSize)
	v.SetDefault("browse.watch", b.Watch)
}

// loadConfig decodes the merged flag, environment, file and default
// settings. A decoding error is reported and defaults are used.
func loadConfig() types.Config {
	cfg, err := decodeConfig(viper.GetViper())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: invalid configuration: %v\n", err)
	}
	return cfg
}

func decodeConfig(v *viper.Viper) (types.Config, error) {
	cfg := types.Config{
		Output: types.DefaultOutputConfig(),
		Browse: types.DefaultBrowseConfig(),
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{Output: types.DefaultOutputConfig(), Browse: types.DefaultBrowseConfig()}, err
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
