package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/unixpickle/anyvec/anyvec32"

	"github.com/avandermeer/shootrange/internal/config"
	"github.com/avandermeer/shootrange/internal/env"
	"github.com/avandermeer/shootrange/internal/policy"
	"github.com/avandermeer/shootrange/internal/sim"
	"github.com/avandermeer/shootrange/internal/ui"
)

func watchCommand() *cobra.Command {
	var checkpointPath string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a saved policy play episodes in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			logger := log.Logger

			p, err := policy.Load(checkpointPath, anyvec32.CurrentCreator())
			if err != nil {
				return err
			}

			e, err := env.New(cfg.Paths.Scenario, true, logger)
			if err != nil {
				return err
			}
			defer e.Close()

			viewer, err := ui.NewViewer(e, &policy.GreedyAgent{Policy: p},
				cfg.Viewer.Scale, cfg.Viewer.TicksPerStep)
			if err != nil {
				return err
			}

			// Pick up viewer speed changes without restarting.
			config.WatchConfig(func() {
				viewer.SetInterval(config.Get().Viewer.TicksPerStep)
				logger.Info().Msg("Config reloaded")
			})

			ebiten.SetWindowSize(sim.ScreenWidth*cfg.Viewer.Scale, sim.ScreenHeight*cfg.Viewer.Scale)
			ebiten.SetWindowTitle("shootrange")
			return ebiten.RunGame(viewer)
		},
	}

	cmd.Flags().StringVar(&checkpointPath, "checkpoint", "", "Policy checkpoint to watch")
	cmd.MarkFlagRequired("checkpoint")
	return cmd
}
