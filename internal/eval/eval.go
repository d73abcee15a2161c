// Package eval plays evaluation episodes with a fixed agent and
// aggregates reward statistics.
package eval

import (
	"fmt"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/avandermeer/shootrange/internal/env"
	"github.com/avandermeer/shootrange/internal/obs"
)

// Agent picks an action for an observation. Evaluation agents are
// expected to be deterministic.
type Agent interface {
	Act(o *obs.Observation) (int, error)
}

// Stats aggregates per-episode total rewards.
type Stats struct {
	EpisodeRewards []float64
	Mean           float64
	Stddev         float64
}

// RunEpisode plays a single episode to termination and returns its total
// reward. maxSteps bounds runaway episodes; hitting the bound is an
// error because scenario timeouts should always end an episode first.
func RunEpisode(e *env.Env, agent Agent, maxSteps int) (float64, error) {
	o, err := e.Reset()
	if err != nil {
		return 0, err
	}
	var total float64
	for step := 0; step < maxSteps; step++ {
		action, err := agent.Act(o)
		if err != nil {
			return total, fmt.Errorf("act at step %d: %w", step, err)
		}
		res, err := e.Step(action)
		if err != nil {
			return total, fmt.Errorf("step %d: %w", step, err)
		}
		total += res.Reward
		if res.Done {
			return total, nil
		}
		o = res.Obs
	}
	return total, fmt.Errorf("episode did not terminate within %d steps", maxSteps)
}

// Run plays the requested number of episodes and returns aggregate
// statistics.
func Run(e *env.Env, agent Agent, episodes, maxSteps int, logger zerolog.Logger) (*Stats, error) {
	if episodes <= 0 {
		return nil, fmt.Errorf("episodes must be positive, got %d", episodes)
	}
	log := logger.With().Str("component", "eval").Logger()

	rewards := make([]float64, 0, episodes)
	for ep := 0; ep < episodes; ep++ {
		total, err := RunEpisode(e, agent, maxSteps)
		if err != nil {
			return nil, fmt.Errorf("episode %d: %w", ep, err)
		}
		rewards = append(rewards, total)
		log.Debug().Int("episode", ep).Float64("reward", total).Msg("Evaluation episode done")
	}

	s := &Stats{EpisodeRewards: rewards, Mean: stat.Mean(rewards, nil)}
	if len(rewards) > 1 {
		s.Stddev = stat.StdDev(rewards, nil)
	}
	log.Info().
		Int("episodes", episodes).
		Float64("mean_reward", s.Mean).
		Float64("stddev", s.Stddev).
		Msg("Evaluation complete")
	return s, nil
}
