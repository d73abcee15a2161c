package sim

import (
	"fmt"

	"github.com/spf13/viper"
)

// ScenarioConfig describes one training-range scenario. It is loaded
// from a standalone scenario file, separate from the run configuration,
// so scenarios can be swapped without touching hyperparameters.
type ScenarioConfig struct {
	Name string `mapstructure:"name"`

	// EpisodeTimeout is the episode length limit in engine tics.
	EpisodeTimeout int `mapstructure:"episode_timeout"`
	// Ammo is the number of rounds the player starts each episode with.
	Ammo int `mapstructure:"ammo"`

	LivingReward float64 `mapstructure:"living_reward"`
	KillReward   float64 `mapstructure:"kill_reward"`
	MissPenalty  float64 `mapstructure:"miss_penalty"`

	// MoveSpeed is the strafe distance in pixels per tic.
	MoveSpeed int `mapstructure:"move_speed"`
	// AttackCooldown is the number of tics between shots.
	AttackCooldown int `mapstructure:"attack_cooldown"`
	// HitTolerance is the maximum offset, in pixels, between the
	// crosshair and the target's center for a shot to connect.
	HitTolerance int `mapstructure:"hit_tolerance"`
}

func setScenarioDefaults(v *viper.Viper) {
	v.SetDefault("name", "range")
	v.SetDefault("episode_timeout", 300)
	v.SetDefault("ammo", 50)
	v.SetDefault("living_reward", -1.0)
	v.SetDefault("kill_reward", 106.0)
	v.SetDefault("miss_penalty", -5.0)
	v.SetDefault("move_speed", 4)
	v.SetDefault("attack_cooldown", 4)
	v.SetDefault("hit_tolerance", 12)
}

// LoadScenario reads a scenario file. A missing or malformed file is a
// hard error; there is no fallback scenario.
func LoadScenario(path string) (ScenarioConfig, error) {
	v := viper.New()
	setScenarioDefaults(v)
	v.SetConfigFile(path)

	var cfg ScenarioConfig
	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("read scenario %s: %w", path, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode scenario %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("scenario %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the scenario for values the engine cannot run with.
func (c ScenarioConfig) Validate() error {
	if c.EpisodeTimeout <= 0 {
		return fmt.Errorf("episode_timeout must be positive")
	}
	if c.Ammo < 0 {
		return fmt.Errorf("ammo must be non-negative")
	}
	if c.MoveSpeed <= 0 {
		return fmt.Errorf("move_speed must be positive")
	}
	if c.AttackCooldown < 0 {
		return fmt.Errorf("attack_cooldown must be non-negative")
	}
	if c.HitTolerance < 0 {
		return fmt.Errorf("hit_tolerance must be non-negative")
	}
	return nil
}
