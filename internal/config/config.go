// Package config loads and validates application configuration from YAML
// files and environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/nahuelalmeira/midnight/internal/game"
	"github.com/nahuelalmeira/midnight/internal/strategy"
)

// Config holds all configuration for the application
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Game       GameConfig       `mapstructure:"game"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// SimulationConfig holds the simulation run settings
type SimulationConfig struct {
	// Rounds is the number of rounds to simulate.
	Rounds int `mapstructure:"rounds"`

	// Seed seeds the dice; zero means time-seeded.
	Seed int64 `mapstructure:"seed"`

	// CSVDir, when non-empty, is where the tabular views are exported.
	CSVDir string `mapstructure:"csv_dir"`

	// Players lists the table. When empty, a default pair is used.
	Players []PlayerConfig `mapstructure:"players"`
}

// PlayerConfig describes one player at the table
type PlayerConfig struct {
	Name     string `mapstructure:"name"`
	Strategy string `mapstructure:"strategy"`

	// Threshold is the target score for the "threshold" strategy; ignored
	// by the others.
	Threshold int `mapstructure:"threshold"`
}

// GameConfig holds the game rule settings
type GameConfig struct {
	Ante         int `mapstructure:"ante"`
	InitialStake int `mapstructure:"initial_stake"`
}

// LoggingConfig holds logging settings
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
	// Simulation defaults
	v.SetDefault("simulation.rounds", 100)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.csv_dir", "")

	// Game defaults
	v.SetDefault("game.ante", 1)
	v.SetDefault("game.initial_stake", 100000000)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/midnight")
	}

	v.SetEnvPrefix("MIDNIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A file requested explicitly must load; only the default search
		// locations may come up empty.
		if configPath != "" {
			return fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file
func WatchConfig(onChange func()) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		v.Unmarshal(cfg)
		if onChange != nil {
			onChange()
		}
	})
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Simulation.Rounds <= 0 {
		return fmt.Errorf("simulation.rounds must be positive")
	}

	seen := make(map[string]bool)
	for i, p := range c.Simulation.Players {
		if p.Name == "" {
			return fmt.Errorf("simulation.players[%d].name must not be empty", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("simulation.players[%d].name %q is duplicated", i, p.Name)
		}
		seen[p.Name] = true
		if p.Name == game.TieWinner {
			return fmt.Errorf("simulation.players[%d].name %q is reserved for tied rounds", i, p.Name)
		}

		if _, err := strategy.New(p.Strategy, strategy.Options{Threshold: p.Threshold}); err != nil {
			return fmt.Errorf("simulation.players[%d]: %w", i, err)
		}
		if p.Threshold < 0 {
			return fmt.Errorf("simulation.players[%d].threshold must be non-negative", i)
		}
	}

	if c.Game.Ante <= 0 {
		return fmt.Errorf("game.ante must be positive")
	}
	if c.Game.InitialStake <= 0 {
		return fmt.Errorf("game.initial_stake must be positive")
	}

	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of trace, debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json")
	}

	return nil
}
