package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/avandermeer/shootrange/internal/config"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}

var configPath string

func rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "shootrange",
		Short:         "Train and evaluate a PPO agent on the shooting-range scenario",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(configPath); err != nil {
				return err
			}
			c := config.Get()
			setupLogging(c.Logging.Level, c.Logging.Format)
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")

	cmd.AddCommand(
		trainCommand(),
		evalCommand(),
		watchCommand(),
	)
	return cmd
}

func setupLogging(level, format string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	if format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
