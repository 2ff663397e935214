package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/medidesk-api/internal/config"
	"github.com/jwalitptl/medidesk-api/pkg/logger"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "medidesk",
		Short:         "MediDesk hospital administration API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml")

	root.AddCommand(newServeCmd(), newMigrateCmd())

	if err := root.ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// loadConfig reads configuration and installs the global logger from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger.Setup(cfg.Log.ToLoggerConfig())
	return cfg, nil
}
