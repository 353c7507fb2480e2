// Package config loads engine limits and paths from config file, environment,
// and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "SEQTHINK"

	cfgKeyDBPath               = "db_path"
	cfgKeyLogLevel             = "log_level"
	cfgKeyMaxThoughtHistory    = "max_thought_history"
	cfgKeyMaxBranches          = "max_branches"
	cfgKeyMaxThoughtsPerBranch = "max_thoughts_per_branch"
)

// Defaults applied when neither config file nor environment set a value.
const (
	DefaultMaxThoughtHistory    = 1000
	DefaultMaxBranches          = 10
	DefaultMaxThoughtsPerBranch = 100
	DefaultLogLevel             = "info"
)

// Limits bound the in-memory thought state. Every limit must be positive;
// a limit of zero is a configuration error, not an empty store.
type Limits struct {
	MaxThoughtHistory    int
	MaxBranches          int
	MaxThoughtsPerBranch int
}

// Validate rejects non-positive limits.
func (l Limits) Validate() error {
	if l.MaxThoughtHistory <= 0 {
		return fmt.Errorf("max_thought_history must be positive, got %d", l.MaxThoughtHistory)
	}
	if l.MaxBranches <= 0 {
		return fmt.Errorf("max_branches must be positive, got %d", l.MaxBranches)
	}
	if l.MaxThoughtsPerBranch <= 0 {
		return fmt.Errorf("max_thoughts_per_branch must be positive, got %d", l.MaxThoughtsPerBranch)
	}
	return nil
}

// Config is the resolved process configuration.
type Config struct {
	DBPath   string
	LogLevel string
	Limits   Limits
}

// Load reads config.yaml from configDir (if present), overlays SEQTHINK_*
// environment variables, applies defaults, and validates the result.
// A missing config file is not an error.
func Load(configDir string) (*Config, error) {
	v := viper.New()
	v.SetDefault(cfgKeyDBPath, defaultDBPath())
	v.SetDefault(cfgKeyLogLevel, DefaultLogLevel)
	v.SetDefault(cfgKeyMaxThoughtHistory, DefaultMaxThoughtHistory)
	v.SetDefault(cfgKeyMaxBranches, DefaultMaxBranches)
	v.SetDefault(cfgKeyMaxThoughtsPerBranch, DefaultMaxThoughtsPerBranch)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configDir != "" {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(configDir)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{
		DBPath:   v.GetString(cfgKeyDBPath),
		LogLevel: v.GetString(cfgKeyLogLevel),
		Limits: Limits{
			MaxThoughtHistory:    v.GetInt(cfgKeyMaxThoughtHistory),
			MaxBranches:          v.GetInt(cfgKeyMaxBranches),
			MaxThoughtsPerBranch: v.GetInt(cfgKeyMaxThoughtsPerBranch),
		},
	}

	if err := cfg.Limits.Validate(); err != nil {
		return nil, fmt.Errorf("invalid limits: %w", err)
	}
	return cfg, nil
}

func defaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".sequentialthinking", "thinking.db")
}
