// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/partcatalog/internal/browse"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Browse generated CSV catalogs in a web browser",
	Long: `Serve loads every CSV under the data directory into an in-memory
database and serves searchable, sortable tables. With --watch, tables are
reloaded when their CSV changes. Prometheus metrics are exposed at /metrics.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return browse.Serve(ctx, cfg.Output.DataDir, cfg.Browse, logger)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default \":8050\")")
	serveCmd.Flags().Bool("watch", true, "reload tables when their CSV changes")
	serveCmd.Flags().Int("page-size", 0, "rows per table page (default 50)")

	_ = viper.BindPFlag("browse.addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("browse.watch", serveCmd.Flags().Lookup("watch"))
	_ = viper.BindPFlag("browse.page_size", serveCmd.Flags().Lookup("page-size"))

	rootCmd.AddCommand(serveCmd)
}
