package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/unixpickle/anyvec/anyvec32"
	"github.com/unixpickle/rip"

	"github.com/avandermeer/shootrange/internal/checkpoint"
	"github.com/avandermeer/shootrange/internal/config"
	"github.com/avandermeer/shootrange/internal/env"
	"github.com/avandermeer/shootrange/internal/eval"
	"github.com/avandermeer/shootrange/internal/metrics"
	"github.com/avandermeer/shootrange/internal/policy"
	"github.com/avandermeer/shootrange/internal/sim"
	"github.com/avandermeer/shootrange/internal/trainer"
)

func trainCommand() *cobra.Command {
	var resume string
	var timesteps int

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a policy, then evaluate it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			if timesteps > 0 {
				cfg.Train.TotalTimesteps = timesteps
			}
			runID := uuid.NewString()[:8]
			logger := log.With().Str("run_id", runID).Logger()

			scenario, err := sim.LoadScenario(cfg.Paths.Scenario)
			if err != nil {
				return err
			}

			// Training phase. The sim allows one live instance, so the
			// training adapter must be closed before evaluation opens
			// its own.
			trainEnv, err := env.NewFromConfig(scenario,
				sim.Options{Seed: cfg.Train.Seed, Logger: logger}, logger)
			if err != nil {
				return err
			}
			report, p, err := runTraining(cmd.Context(), cfg, trainEnv, resume, runID, logger)
			closeErr := trainEnv.Close()
			if err != nil {
				return err
			}
			if closeErr != nil {
				return closeErr
			}
			logger.Info().
				Int("batches", report.Batches).
				Int("steps", report.Steps).
				Int("episodes", report.Episodes).
				Bool("interrupted", report.Interrupted).
				Msg("Training finished")

			// Evaluation phase on a fresh adapter. The render flag only
			// marks the sim visible; on-screen drawing lives in `watch`.
			evalEnv, err := env.NewFromConfig(scenario,
				sim.Options{Visible: cfg.Eval.Render, Logger: logger}, logger)
			if err != nil {
				return err
			}
			defer evalEnv.Close()

			agent := &policy.GreedyAgent{Policy: p}
			stats, err := eval.Run(evalEnv, agent, cfg.Eval.Episodes, cfg.Eval.MaxSteps, logger)
			if err != nil {
				return err
			}
			fmt.Printf("mean_reward=%.2f over %d episodes\n", stats.Mean, len(stats.EpisodeRewards))

			for ep := 0; ep < cfg.Eval.ManualEpisodes; ep++ {
				total, err := eval.RunEpisode(evalEnv, agent, cfg.Eval.MaxSteps)
				if err != nil {
					return err
				}
				fmt.Printf("Total Reward for episode %d is %.1f\n", ep, total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&resume, "resume", "", "Checkpoint to resume training from")
	cmd.Flags().IntVar(&timesteps, "timesteps", 0, "Override train.total_timesteps (0 to use config)")
	return cmd
}

// runTraining wires the policy, checkpoint saver and metrics workbook
// around the training loop. Ctrl+C cancels the loop; whatever has been
// learned so far is still saved.
func runTraining(parent context.Context, cfg *config.Config, trainEnv *env.Env,
	resume, runID string, logger zerolog.Logger) (*trainer.Report, *policy.Policy, error) {

	if err := env.Check(trainEnv); err != nil {
		return nil, nil, fmt.Errorf("environment contract check: %w", err)
	}

	creator := anyvec32.CurrentCreator()
	p, err := policy.LoadOrCreate(resume, creator, trainEnv.ActionSpace().N, logger)
	if err != nil {
		return nil, nil, err
	}

	saver, err := checkpoint.New(cfg.Train.CheckpointFreq, cfg.Paths.CheckpointDir,
		cfg.Train.CheckpointPrefix, p.Save, logger)
	if err != nil {
		return nil, nil, err
	}
	book, err := metrics.NewWorkbook(cfg.Paths.LogDir, runID, logger)
	if err != nil {
		return nil, nil, err
	}
	defer book.Close()

	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	go func() {
		<-rip.NewRIP().Chan()
		cancel()
	}()

	report, err := trainer.Train(ctx, trainer.Config{
		TotalTimesteps: cfg.Train.TotalTimesteps,
		StepsPerBatch:  cfg.Train.StepsPerBatch,
		Epochs:         cfg.Train.Epochs,
		LearningRate:   cfg.Train.LearningRate,
		Discount:       cfg.Train.Discount,
		Lambda:         cfg.Train.Lambda,
		EntropyCoeff:   cfg.Train.EntropyCoeff,
	}, trainEnv, p, saver, book, logger)
	if err != nil {
		return nil, nil, err
	}

	finalPath := filepath.Join(cfg.Paths.CheckpointDir, cfg.Train.CheckpointPrefix+"_final")
	if err := p.Save(finalPath); err != nil {
		return nil, nil, err
	}
	logger.Info().Str("path", finalPath).Msg("Final model saved")
	return report, p, nil
}
