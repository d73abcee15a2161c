package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Paths   PathsConfig   `mapstructure:"paths"`
	Train   TrainConfig   `mapstructure:"train"`
	Eval    EvalConfig    `mapstructure:"eval"`
	Viewer  ViewerConfig  `mapstructure:"viewer"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// PathsConfig holds filesystem locations the run reads and writes
type PathsConfig struct {
	Scenario      string `mapstructure:"scenario"`
	CheckpointDir string `mapstructure:"checkpoint_dir"`
	LogDir        string `mapstructure:"log_dir"`
}

// TrainConfig holds the training hyperparameters and checkpoint cadence
type TrainConfig struct {
	TotalTimesteps   int     `mapstructure:"total_timesteps"`
	StepsPerBatch    int     `mapstructure:"steps_per_batch"`
	Epochs           int     `mapstructure:"epochs"`
	LearningRate     float64 `mapstructure:"learning_rate"`
	Discount         float64 `mapstructure:"discount"`
	Lambda           float64 `mapstructure:"lambda"`
	EntropyCoeff     float64 `mapstructure:"entropy_coeff"`
	CheckpointFreq   int     `mapstructure:"checkpoint_freq"`
	CheckpointPrefix string  `mapstructure:"checkpoint_prefix"`
	Seed             int64   `mapstructure:"seed"`
}

// EvalConfig holds evaluation settings
type EvalConfig struct {
	Episodes       int  `mapstructure:"episodes"`
	ManualEpisodes int  `mapstructure:"manual_episodes"`
	MaxSteps       int  `mapstructure:"max_steps"`
	Render         bool `mapstructure:"render"`
}

// ViewerConfig holds episode viewer settings
type ViewerConfig struct {
	Scale        int `mapstructure:"scale"`
	TicksPerStep int `mapstructure:"ticks_per_step"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("paths.scenario", "scenarios/basic.yaml")
	v.SetDefault("paths.checkpoint_dir", "train/checkpoints")
	v.SetDefault("paths.log_dir", "logs")

	v.SetDefault("train.total_timesteps", 100000)
	v.SetDefault("train.steps_per_batch", 2048)
	v.SetDefault("train.epochs", 4)
	v.SetDefault("train.learning_rate", 0.0001)
	v.SetDefault("train.discount", 0.99)
	v.SetDefault("train.lambda", 0.95)
	v.SetDefault("train.entropy_coeff", 0.01)
	v.SetDefault("train.checkpoint_freq", 10000)
	v.SetDefault("train.checkpoint_prefix", "best_model")
	v.SetDefault("train.seed", 0)

	v.SetDefault("eval.episodes", 100)
	v.SetDefault("eval.manual_episodes", 10)
	v.SetDefault("eval.max_steps", 1000)
	v.SetDefault("eval.render", true)

	v.SetDefault("viewer.scale", 2)
	v.SetDefault("viewer.ticks_per_step", 4)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	// Set environment variable prefix
	v.SetEnvPrefix("SHOOTRANGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// If we have a specific config path and it doesn't exist, that's ok - use defaults
		if configPath != "" {
			// Specific file requested but not found - that's ok, use defaults
		} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// For default locations, only ignore ConfigFileNotFoundError
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; use defaults
	}

	// Unmarshal into config struct
	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// Validate configuration
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	if v == nil {
		return ""
	}
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file
func WatchConfig(onChange func()) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		// Re-unmarshal on change
		v.Unmarshal(cfg)
		if onChange != nil {
			onChange()
		}
	})
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Paths.Scenario == "" {
		return fmt.Errorf("paths.scenario must be set")
	}
	if c.Paths.CheckpointDir == "" {
		return fmt.Errorf("paths.checkpoint_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return fmt.Errorf("paths.log_dir must be set")
	}

	if c.Train.TotalTimesteps <= 0 {
		return fmt.Errorf("train.total_timesteps must be positive")
	}
	if c.Train.StepsPerBatch <= 0 {
		return fmt.Errorf("train.steps_per_batch must be positive")
	}
	if c.Train.Epochs <= 0 {
		return fmt.Errorf("train.epochs must be positive")
	}
	if c.Train.LearningRate <= 0 {
		return fmt.Errorf("train.learning_rate must be positive")
	}
	if c.Train.Discount <= 0 || c.Train.Discount > 1 {
		return fmt.Errorf("train.discount must be in (0,1]")
	}
	if c.Train.Lambda < 0 || c.Train.Lambda > 1 {
		return fmt.Errorf("train.lambda must be between 0 and 1")
	}
	if c.Train.EntropyCoeff < 0 {
		return fmt.Errorf("train.entropy_coeff must be non-negative")
	}
	if c.Train.CheckpointFreq <= 0 {
		return fmt.Errorf("train.checkpoint_freq must be positive")
	}
	if c.Train.CheckpointPrefix == "" {
		return fmt.Errorf("train.checkpoint_prefix must be set")
	}

	if c.Eval.Episodes <= 0 {
		return fmt.Errorf("eval.episodes must be positive")
	}
	if c.Eval.ManualEpisodes < 0 {
		return fmt.Errorf("eval.manual_episodes must be non-negative")
	}
	if c.Eval.MaxSteps <= 0 {
		return fmt.Errorf("eval.max_steps must be positive")
	}

	if c.Viewer.Scale <= 0 {
		return fmt.Errorf("viewer.scale must be positive")
	}
	if c.Viewer.TicksPerStep <= 0 {
		return fmt.Errorf("viewer.ticks_per_step must be positive")
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json")
	}

	return nil
}
