// Package checkpoint persists in-training model snapshots at a fixed
// step cadence.
package checkpoint

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// SaveFunc writes the current model to the given path.
type SaveFunc func(path string) error

// Saver triggers a model save every freq step notifications. It never
// asks the training loop to stop, and it never deletes old snapshots:
// disk usage grows for as long as training runs.
type Saver struct {
	freq   int
	dir    string
	prefix string
	save   SaveFunc
	logger zerolog.Logger
	saved  int
}

// New creates a Saver and ensures the save directory exists, creating
// parents as needed.
func New(freq int, dir, prefix string, save SaveFunc, logger zerolog.Logger) (*Saver, error) {
	if freq <= 0 {
		return nil, fmt.Errorf("checkpoint frequency must be positive, got %d", freq)
	}
	if save == nil {
		return nil, fmt.Errorf("save function is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create checkpoint dir %s: %w", dir, err)
	}
	return &Saver{
		freq:   freq,
		dir:    dir,
		prefix: prefix,
		save:   save,
		logger: logger.With().Str("component", "checkpoint").Logger(),
	}, nil
}

// Step notifies the saver of the cumulative step count. It persists a
// snapshot named after the step count exactly when the count is a
// positive multiple of the configured frequency, and is a no-op
// otherwise. A failed write is returned as-is; there is no retry.
func (s *Saver) Step(totalSteps int) error {
	if totalSteps <= 0 || totalSteps%s.freq != 0 {
		return nil
	}
	path := filepath.Join(s.dir, fmt.Sprintf("%s_%d", s.prefix, totalSteps))
	if err := s.save(path); err != nil {
		return fmt.Errorf("checkpoint at step %d: %w", totalSteps, err)
	}
	s.saved++
	s.logger.Info().Str("path", path).Int("total_steps", totalSteps).Msg("Checkpoint saved")
	return nil
}

// Saved returns how many snapshots have been written.
func (s *Saver) Saved() int { return s.saved }

// Dir returns the save directory.
func (s *Saver) Dir() string { return s.dir }
