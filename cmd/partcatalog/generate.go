// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/partcatalog/internal/catalog"
	"github.com/pdiddy/partcatalog/internal/pipeline"
)

// familyCommand builds the generate command for one family.
func familyCommand(f catalog.Family, short string) *cobra.Command {
	return &cobra.Command{
		Use:   f.String() + " [series...]",
		Short: short,
		Long: fmt.Sprintf(`Generate the %s catalog. With no arguments every series is generated;
otherwise only the named series. Known series: %s.

Writes <series>_part_numbers.csv per series, the unified
UNITED_%s_DATA_BASE.csv, and matching KiCad symbol libraries.`,
			f, strings.Join(f.SeriesKeys(), ", "), f.Label()),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFamilies(cmd, []catalog.Family{f}, args)
		},
	}
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Generate every family: resistors, capacitors, connectors, inductors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFamilies(cmd, catalog.Families(), nil)
	},
}

func runFamilies(cmd *cobra.Command, families []catalog.Family, keys []string) error {
	cfg := loadConfig()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := pipeline.NewRunner(cfg.Output)
	runner.Out = cmd.OutOrStdout()
	runner.Log = logger
	return generateFamilies(ctx, runner, families, keys)
}

// generateFamilies runs each family in turn. A family whose run fails is
// reported on one line and the rest still run; only cancellation stops the
// loop early.
func generateFamilies(ctx context.Context, runner *pipeline.Runner, families []catalog.Family, keys []string) error {
	failed := 0
	var runErrs []error
	for _, f := range families {
		m, err := runner.Run(ctx, f, keys)
		failed += len(m.Failures)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			fmt.Fprintf(runner.Out, "failed:  %s (%s: %v)\n", f, pipeline.Classify(err), err)
			runErrs = append(runErrs, fmt.Errorf("%s: %w", f, err))
		}
	}
	if len(runErrs) > 0 {
		return fmt.Errorf("%d family run(s) failed: %w", len(runErrs), errors.Join(runErrs...))
	}
	if failed > 0 {
		return fmt.Errorf("%d failure(s) during generation", failed)
	}
	return nil
}

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "List the series keys of every family",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, f := range catalog.Families() {
			fmt.Fprintf(out, "%s:\n", f)
			for _, key := range f.SeriesKeys() {
				fmt.Fprintf(out, "  %s\n", key)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(familyCommand(catalog.Resistors, "Generate Panasonic ERJ thick-film resistor catalogs"))
	rootCmd.AddCommand(familyCommand(catalog.Capacitors, "Generate Murata GCM MLCC capacitor catalogs"))
	rootCmd.AddCommand(familyCommand(catalog.Connectors, "Generate terminal-block connector catalogs and footprints"))
	rootCmd.AddCommand(familyCommand(catalog.Inductors, "Generate Coilcraft XAL/XFL power inductor catalogs"))
	rootCmd.AddCommand(allCmd)
	rootCmd.AddCommand(seriesCmd)
}
