// Package trainer runs PPO over the environment adapter.
package trainer

import (
	"compress/flate"
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/unixpickle/anydiff/anyseq"
	"github.com/unixpickle/anynet/anysgd"
	"github.com/unixpickle/anyrl"
	"github.com/unixpickle/anyrl/anypg"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/lazyseq"

	"github.com/avandermeer/shootrange/internal/checkpoint"
	"github.com/avandermeer/shootrange/internal/env"
	"github.com/avandermeer/shootrange/internal/metrics"
	"github.com/avandermeer/shootrange/internal/policy"
)

// Config holds the training hyperparameters.
type Config struct {
	// TotalTimesteps is the environment-step budget for the whole run.
	TotalTimesteps int
	// StepsPerBatch is the minimum number of steps gathered before each
	// round of PPO updates.
	StepsPerBatch int
	// Epochs is how many PPO gradient steps run per batch.
	Epochs       int
	LearningRate float64
	Discount     float64
	// Lambda is the GAE coefficient.
	Lambda       float64
	EntropyCoeff float64
}

// Validate rejects configurations the loop cannot run with.
func (c Config) Validate() error {
	if c.TotalTimesteps <= 0 {
		return fmt.Errorf("total timesteps must be positive, got %d", c.TotalTimesteps)
	}
	if c.StepsPerBatch <= 0 {
		return fmt.Errorf("steps per batch must be positive, got %d", c.StepsPerBatch)
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be positive, got %d", c.Epochs)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be positive, got %g", c.LearningRate)
	}
	if c.Discount <= 0 || c.Discount > 1 {
		return fmt.Errorf("discount must be in (0,1], got %g", c.Discount)
	}
	if c.Lambda < 0 || c.Lambda > 1 {
		return fmt.Errorf("lambda must be in [0,1], got %g", c.Lambda)
	}
	if c.EntropyCoeff < 0 {
		return fmt.Errorf("entropy coefficient must be non-negative, got %g", c.EntropyCoeff)
	}
	return nil
}

// Report summarizes a finished (or interrupted) training run.
type Report struct {
	Batches         int
	Steps           int
	Episodes        int
	FinalMeanReward float64
	Interrupted     bool
}

// Train runs PPO until the timestep budget is exhausted or ctx is
// cancelled. The checkpoint saver is notified on every environment step;
// the workbook gets one row per batch. The trained parameters live in p,
// which the caller keeps.
func Train(ctx context.Context, cfg Config, e *env.Env, p *policy.Policy,
	saver *checkpoint.Saver, book *metrics.Workbook, logger zerolog.Logger) (*Report, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.With().Str("component", "trainer").Logger()
	creator := p.Creator

	bridge := &env.Rollout{
		Env: e,
		OnStep: func(totalSteps int) error {
			if saver == nil {
				return nil
			}
			return saver.Step(totalSteps)
		},
	}

	actionSpace := anyrl.Softmax{}
	roller := &anyrl.RNNRoller{
		Block:       p.Block(),
		ActionSpace: actionSpace,
		Creator:     creator,

		// Frames stored raw would dominate memory; keep the input tape
		// compressed.
		MakeInputTape: func(c anyvec.Creator) (lazyseq.Tape, chan<- *anyseq.Batch) {
			return lazyseq.CompressedUint8Tape(c, flate.DefaultCompression)
		},
	}

	ppo := &anypg.PPO{
		Params: p.Parameters(),
		Base: func(in lazyseq.Rereader) lazyseq.Rereader {
			return lazyseq.Map(in, p.Trunk.Apply)
		},
		Actor: func(in lazyseq.Rereader) lazyseq.Rereader {
			return lazyseq.Map(in, p.Actor.Apply)
		},
		Critic: func(in lazyseq.Rereader) lazyseq.Rereader {
			return lazyseq.Map(in, p.Critic.Apply)
		},
		ActionSpace: actionSpace,
		Discount:    cfg.Discount,
		Lambda:      cfg.Lambda,
		Regularizer: &anypg.EntropyReg{
			Entropyer: actionSpace,
			Coeff:     cfg.EntropyCoeff,
		},
	}

	var adam anysgd.Adam
	progress := newProgress()
	defer progress.stop()

	report := &Report{}
	for batch := 0; bridge.Steps() < cfg.TotalTimesteps; batch++ {
		select {
		case <-ctx.Done():
			log.Warn().Int("steps", bridge.Steps()).Msg("Training interrupted")
			report.Interrupted = true
			return report, nil
		default:
		}

		start := time.Now()
		var rollouts []*anyrl.RolloutSet
		batchSteps, episodes := 0, 0
		for batchSteps < cfg.StepsPerBatch {
			r, err := roller.Rollout(bridge)
			if err != nil {
				return report, fmt.Errorf("rollout: %w", err)
			}
			batchSteps += r.NumSteps()
			episodes++
			rollouts = append(rollouts, r)
		}

		packed := anyrl.PackRolloutSets(creator, rollouts)
		mean := packed.Rewards.Mean()
		stddev := math.Sqrt(packed.Rewards.Variance())

		// The GAE tape is computed once per batch; the value function
		// drifts as the epochs run, so recomputing it mid-batch would
		// change the objective under the optimizer.
		adv := ppo.Advantage(packed)
		for i := 0; i < cfg.Epochs; i++ {
			grad, _ := ppo.Run(packed, adv)
			g := adam.Transform(grad)
			g.Scale(creator.MakeNumeric(cfg.LearningRate))
			g.AddToVars()
		}

		elapsed := time.Since(start)
		log.Info().
			Int("batch", batch).
			Int("steps", bridge.Steps()).
			Int("episodes", episodes).
			Float64("mean_reward", mean).
			Float64("stddev", stddev).
			Dur("elapsed", elapsed).
			Msg("Batch trained")
		progress.update(bridge.Steps(), cfg.TotalTimesteps, mean)

		if book != nil {
			err := book.AddBatch(metrics.BatchRow{
				Batch:           batch,
				CumulativeSteps: bridge.Steps(),
				Episodes:        episodes,
				MeanReward:      mean,
				RewardStddev:    stddev,
				DurationSeconds: elapsed.Seconds(),
			})
			if err != nil {
				return report, fmt.Errorf("record batch %d: %w", batch, err)
			}
		}

		report.Batches++
		report.Steps = bridge.Steps()
		report.Episodes += episodes
		report.FinalMeanReward = mean
	}
	return report, nil
}
