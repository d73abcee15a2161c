package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/avandermeer/shootrange/internal/sim"
)

// TestScenario returns a short, deterministic-friendly scenario: a small
// timeout so episodes end quickly and generous hit tolerance.
func TestScenario() sim.ScenarioConfig {
	return sim.ScenarioConfig{
		Name:           "test-range",
		EpisodeTimeout: 60,
		Ammo:           10,
		LivingReward:   -1,
		KillReward:     106,
		MissPenalty:    -5,
		MoveSpeed:      4,
		AttackCooldown: 2,
		HitTolerance:   12,
	}
}

// WriteScenarioFile writes a scenario YAML into a temp dir and returns
// its path. The file is cleaned up with the test's temp dir.
func WriteScenarioFile(t *testing.T, cfg sim.ScenarioConfig) string {
	t.Helper()
	content := fmt.Sprintf(`name: %s
episode_timeout: %d
ammo: %d
living_reward: %g
kill_reward: %g
miss_penalty: %g
move_speed: %d
attack_cooldown: %d
hit_tolerance: %d
`, cfg.Name, cfg.EpisodeTimeout, cfg.Ammo, cfg.LivingReward, cfg.KillReward,
		cfg.MissPenalty, cfg.MoveSpeed, cfg.AttackCooldown, cfg.HitTolerance)

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write scenario file: %v", err)
	}
	return path
}
