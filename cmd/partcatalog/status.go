// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/pdiddy/partcatalog/internal/catalog"
	"github.com/pdiddy/partcatalog/internal/pipeline"
	"github.com/pdiddy/partcatalog/pkg/types"
)

var statusCmd = &cobra.Command{
	Use:   "status [family...]",
	Short: "Check generated artifacts against their run manifests",
	Long: `Status reads the manifest of each family (every family when none is named)
and re-reads the artifacts it lists. Tables whose row count changed, KiCad
files that no longer parse and missing files are reported as stale.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		families := catalog.Families()
		if len(args) > 0 {
			families = nil
			for _, name := range args {
				f, err := catalog.ParseFamily(name)
				if err != nil {
					return err
				}
				families = append(families, f)
			}
		}

		cfg := loadConfig()
		problems, err := reportStatus(cmd.OutOrStdout(), cfg.Output, families)
		if err != nil {
			return err
		}
		if problems > 0 {
			return fmt.Errorf("%d problem(s) found", problems)
		}
		return nil
	},
}

// reportStatus prints one summary line per family and one line per stale
// artifact. It returns the number of recorded failures plus stale artifacts.
func reportStatus(out io.Writer, cfg types.OutputConfig, families []catalog.Family) (int, error) {
	runner := pipeline.NewRunner(cfg)
	problems := 0
	for _, f := range families {
		m, err := pipeline.ReadManifest(runner.ManifestPath(f))
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(out, "%s: not generated\n", f)
			continue
		}
		if err != nil {
			return problems, err
		}

		stale := pipeline.Check(m)
		fmt.Fprintf(out, "%s: %d records, %d artifacts, %d failures, %d stale\n",
			f, m.Records, len(m.Artifacts), len(m.Failures), len(stale))
		for _, s := range stale {
			fmt.Fprintf(out, "  %s: %s\n", s.Kind, s.Error)
		}
		problems += len(m.Failures) + len(stale)
	}
	return problems, nil
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
