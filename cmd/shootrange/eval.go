package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/unixpickle/anyvec/anyvec32"

	"github.com/avandermeer/shootrange/internal/config"
	"github.com/avandermeer/shootrange/internal/env"
	"github.com/avandermeer/shootrange/internal/eval"
	"github.com/avandermeer/shootrange/internal/policy"
)

func evalCommand() *cobra.Command {
	var checkpointPath string

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a saved policy checkpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			logger := log.Logger

			p, err := policy.Load(checkpointPath, anyvec32.CurrentCreator())
			if err != nil {
				return err
			}

			e, err := env.New(cfg.Paths.Scenario, cfg.Eval.Render, logger)
			if err != nil {
				return err
			}
			defer e.Close()

			agent := &policy.GreedyAgent{Policy: p}
			stats, err := eval.Run(e, agent, cfg.Eval.Episodes, cfg.Eval.MaxSteps, logger)
			if err != nil {
				return err
			}
			fmt.Printf("mean_reward=%.2f over %d episodes\n", stats.Mean, len(stats.EpisodeRewards))

			for ep := 0; ep < cfg.Eval.ManualEpisodes; ep++ {
				total, err := eval.RunEpisode(e, agent, cfg.Eval.MaxSteps)
				if err != nil {
					return err
				}
				fmt.Printf("Total Reward for episode %d is %.1f\n", ep, total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&checkpointPath, "checkpoint", "", "Policy checkpoint to evaluate")
	cmd.MarkFlagRequired("checkpoint")
	return cmd
}
