package policy

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/serializer"
)

// Save writes the trunk and both heads to path. The file format belongs
// to the serializer library; files written by one build load in another
// as long as the architecture matches.
func (p *Policy) Save(path string) error {
	if err := serializer.SaveAny(path, p.Trunk, p.Actor, p.Critic); err != nil {
		return fmt.Errorf("save policy %s: %w", path, err)
	}
	return nil
}

// Load reads a policy checkpoint from path.
func Load(path string, c anyvec.Creator) (*Policy, error) {
	var trunk, actor, critic anynet.Net
	if err := serializer.LoadAny(path, &trunk, &actor, &critic); err != nil {
		return nil, fmt.Errorf("load policy %s: %w", path, err)
	}
	return &Policy{Creator: c, Trunk: trunk, Actor: actor, Critic: critic}, nil
}

// LoadOrCreate loads the checkpoint at path when it exists, otherwise
// builds a fresh policy. An empty path always builds fresh.
func LoadOrCreate(path string, c anyvec.Creator, numActions int, logger zerolog.Logger) (*Policy, error) {
	if path != "" {
		if p, err := Load(path, c); err == nil {
			logger.Info().Str("path", path).Msg("Loaded policy checkpoint")
			return p, nil
		} else {
			logger.Warn().Err(err).Str("path", path).Msg("Checkpoint not loadable, starting fresh")
		}
	}
	logger.Info().Int("actions", numActions).Msg("Created new policy network")
	return New(c, numActions)
}
