// Package config loads application settings from ~/.codelog/config.yaml,
// CODELOG_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "CODELOG"

// Config holds process-level settings. Scoring weights are domain data and
// live in the database, not here.
type Config struct {
	DBPath      string `mapstructure:"db"`
	LangPackDir string `mapstructure:"langpacks"`
	LogFile     string `mapstructure:"log_file"`
	LogLevel    string `mapstructure:"log_level"`
	Verbose     bool   `mapstructure:"verbose"`
	MetricsFile string `mapstructure:"metrics_file"`
	RecentDays  int    `mapstructure:"recent_days"`
}

// DefaultConfig places everything under <home>/.codelog.
func DefaultConfig(home string) Config {
	base := filepath.Join(home, ".codelog")
	return Config{
		DBPath:      filepath.Join(base, "codelog.db"),
		LangPackDir: filepath.Join(base, "langpacks"),
		LogFile:     filepath.Join(base, "logs", "codelog.log"),
		LogLevel:    "info",
		RecentDays:  7,
	}
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"db":           "db",
	"langpacks":    "langpacks",
	"log-file":     "log_file",
	"log-level":    "log_level",
	"verbose":      "verbose",
	"metrics-file": "metrics_file",
}

// Load resolves the configuration for the current user. flags may be nil.
func Load(flags *pflag.FlagSet) (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	return LoadFrom(home, flags)
}

// LoadFrom is Load with an explicit home directory. CODELOG_CONFIG names a
// config file to use instead of <home>/.codelog/config.yaml.
func LoadFrom(home string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	def := DefaultConfig(home)
	v.SetDefault("db", def.DBPath)
	v.SetDefault("langpacks", def.LangPackDir)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("verbose", def.Verbose)
	v.SetDefault("metrics_file", def.MetricsFile)
	v.SetDefault("recent_days", def.RecentDays)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if path := os.Getenv(envPrefix + "_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.AddConfigPath(filepath.Join(home, ".codelog"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.RecentDays <= 0 {
		return Config{}, fmt.Errorf("recent_days must be positive, got %d", cfg.RecentDays)
	}
	if cfg.DBPath == "" {
		return Config{}, errors.New("db path must not be empty")
	}
	return cfg, nil
}
