package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vbonduro/planttracker/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		server := web.NewServer(tracker, images, logger)
		return server.ListenAndServe(ctx, cfg.ListenAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
