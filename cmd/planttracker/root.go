package main

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/vbonduro/planttracker/internal/config"
	"github.com/vbonduro/planttracker/internal/db"
	"github.com/vbonduro/planttracker/internal/imagestore/local"
	"github.com/vbonduro/planttracker/internal/logging"
	"github.com/vbonduro/planttracker/internal/qrcode"
	"github.com/vbonduro/planttracker/internal/service"
	"github.com/vbonduro/planttracker/internal/store"
)

var version = "dev"

var (
	envFile string

	cfg      *config.Config
	logger   *slog.Logger
	database *sqlx.DB
	images   *local.LocalImageStore
	tracker  *service.TrackerService

	closeLog = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "planttracker",
	Short: "Track houseplants, their pots and soils",
	Long: `planttracker keeps a catalogue of plants, pots and soil mixes, and the
history of which plant lived in which pot with which soil.

COMMANDS:

  $ planttracker serve          # Run the HTTP API
  $ planttracker mcp            # Run the MCP server over stdio
  $ planttracker qr ensure      # Generate any missing pot QR images

Configuration is read from the environment and, when present, from a .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		loaded, err := config.LoadDotEnv(envFile)
		if err != nil {
			return err
		}
		cfg = config.Load()

		logger, closeLog, err = logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if loaded {
			logger.Debug("loaded environment file", "path", envFile)
		}

		database, err = db.Open(cfg.DBDriver, cfg.DBSource())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}

		images, err = local.NewLocalImageStore(cfg.QRPath)
		if err != nil {
			return fmt.Errorf("failed to initialize qr code store: %w", err)
		}

		generator := qrcode.NewGenerator(images, cfg.PublicBaseURL, logger)
		tracker = service.NewTrackerService(store.New(database), generator, logger)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		defer closeLog()
		if database == nil {
			return nil
		}
		err := database.Close()
		database = nil
		if err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "planttracker %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "environment file to load before reading configuration")
	rootCmd.AddCommand(versionCmd)
}
