package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	LogLevel string         `mapstructure:"log_level" json:"log_level"`
	Generate GenerateConfig `mapstructure:"generate" json:"generate"`
	History  HistoryConfig  `mapstructure:"history" json:"history"`
}

// GenerateConfig holds the sampling settings.
type GenerateConfig struct {
	Seed      int64  `mapstructure:"seed" json:"seed"` // Negative picks a seed from the clock
	Selection string `mapstructure:"selection" json:"selection"`
	MaxLength int    `mapstructure:"max_length" json:"max_length"`
	MaxDraws  int    `mapstructure:"max_draws" json:"max_draws"`
	Quiet     bool   `mapstructure:"quiet" json:"quiet"`
}

// HistoryConfig holds settings for the run journal.
type HistoryConfig struct {
	Enabled      bool   `mapstructure:"enabled" json:"enabled"`
	DatabasePath string `mapstructure:"database_path" json:"database_path"`
}

// LoadOptions controls where LoadConfig looks for settings.
type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

// configFlags maps config keys to the command line flags that override them.
var configFlags = []struct {
	key  string
	flag string
}{
	{"log_level", "log-level"},
	{"generate.seed", "seed"},
	{"generate.selection", "selection"},
	{"generate.max_length", "max-length"},
	{"generate.max_draws", "max-draws"},
	{"generate.quiet", "quiet"},
	{"history.enabled", "history"},
	{"history.database_path", "history-db"},
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Generate: GenerateConfig{
			Seed:      -1,
			Selection: "per-item",
			MaxLength: 1000,
			MaxDraws:  1_000_000,
			Quiet:     false,
		},
		History: HistoryConfig{
			Enabled:      false,
			DatabasePath: "./ngramgen_history.db",
		},
	}
}

// RegisterFlags registers every configurable setting as a flag on fs.
func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
	fs.Int64("seed", defaults.Generate.Seed, "Random seed; negative picks one from the clock")
	fs.String("selection", defaults.Generate.Selection, "Extension selection rule (per-item|cumulative)")
	fs.Int("max-length", defaults.Generate.MaxLength, "Maximum tokens per generated sentence")
	fs.Int("max-draws", defaults.Generate.MaxDraws, "Maximum random draws per generated sentence")
	fs.Bool("quiet", defaults.Generate.Quiet, "Do not print the settings header")
	fs.Bool("history", defaults.History.Enabled, "Record generated sentences in the history database")
	fs.String("history-db", defaults.History.DatabasePath, "Path to the SQLite history database")
}

// LoadConfig layers defaults, the config file, NGRAMGEN_* environment
// variables and command line flags, in increasing priority.
func LoadConfig(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("NGRAMGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("ngramgen")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("log_level", c.LogLevel)
	v.SetDefault("generate.seed", c.Generate.Seed)
	v.SetDefault("generate.selection", c.Generate.Selection)
	v.SetDefault("generate.max_length", c.Generate.MaxLength)
	v.SetDefault("generate.max_draws", c.Generate.MaxDraws)
	v.SetDefault("generate.quiet", c.Generate.Quiet)
	v.SetDefault("history.enabled", c.History.Enabled)
	v.SetDefault("history.database_path", c.History.DatabasePath)
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, f := range configFlags {
		flag := fs.Lookup(f.flag)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(f.key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", f.flag, err)
		}
	}
	return nil
}

// WriteConfig writes cfg as indented JSON to path. The file is replaced
// atomically so a crash never leaves a truncated config behind.
func WriteConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ParseLogLevel converts a config string into a slog level. Unknown values
// fall back to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
