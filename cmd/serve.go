// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sqb/cli/internal/server"
)

var (
	serveAddr  string
	servePages string
)

// serveCmd runs the preview HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve content pages with shortcodes expanded",
	Long: `The serve command starts an HTTP server that expands shortcode-query tags
against the site database:

  GET  /healthz            liveness probe
  GET  /{page}             expand <pages dir>/<page>.html
  POST /render             expand the request body
  POST /comments/preview   strip tags from the request body

Address, pages directory and request timeout come from the config file
(server.*) unless given as flags.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		eng, exec, err := openEngine(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := exec.Close(); cerr != nil {
				logger.Warn("error closing database connection", zap.Error(cerr))
			}
		}()

		sc := server.Config{
			Addr:           cfg.Server.Addr,
			PagesDir:       cfg.Server.PagesDir,
			RequestTimeout: cfg.Server.RequestTimeout,
		}
		if serveAddr != "" {
			sc.Addr = serveAddr
		}
		if servePages != "" {
			sc.PagesDir = servePages
		}

		logger.Info("database ready", zap.String("type", string(exec.Type())))
		return server.New(sc, eng, logger).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "HTTP listen address (default from config, :8080)")
	serveCmd.Flags().StringVar(&servePages, "pages", "", "Directory holding <page>.html files (default from config, pages)")
}
