// Package config loads the settings of the ldapname command.
//
// Settings are resolved in the following order (highest first):
//  1. Command line flags
//  2. Environment variables (LDAPNAME_*)
//  3. Configuration file (--config)
//  4. Default values
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of all environment variables read by Load.
// Example: LDAPNAME_LOG_LEVEL=debug
const EnvPrefix = "LDAPNAME"

// Config is the complete command configuration.
type Config struct {
	// Output selects how results are printed: table or json.
	Output string `mapstructure:"output" validate:"required,oneof=table json" yaml:"output"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	Paging PagingConfig `mapstructure:"paging" yaml:"paging"`

	Sort SortConfig `mapstructure:"sort" yaml:"sort"`
}

// LogConfig controls the diagnostic logger.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=none error warn info debug" yaml:"level"`

	Format string `mapstructure:"format" validate:"required,oneof=logfmt json" yaml:"format"`
}

// PagingConfig holds the defaults of "control paging encode".
type PagingConfig struct {
	// Size is the page size requested when --size is not given.
	Size uint32 `mapstructure:"size" validate:"gt=0" yaml:"size"`

	Critical bool `mapstructure:"critical" yaml:"critical"`
}

// SortConfig holds the defaults of "control sort encode".
type SortConfig struct {
	Critical bool `mapstructure:"critical" yaml:"critical"`
}

// Default values.
const (
	DefaultOutput     = "table"
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "logfmt"
	DefaultPagingSize = 100
)

// flagKeys maps configuration keys to the flag names overriding them.
var flagKeys = map[string]string{
	"output":     "output",
	"log.level":  "log-level",
	"log.format": "log-format",
}

// GetDefaultConfig returns the configuration used when nothing is set.
func GetDefaultConfig() *Config {
	return &Config{
		Output: DefaultOutput,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Paging: PagingConfig{
			Size: DefaultPagingSize,
		},
	}
}

// Load reads the configuration file at configPath (if not empty), applies
// environment variables and the changed flags of flags (may be nil) and
// validates the result.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	if configPath != "" {
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("configuration file not found: %s", configPath)
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	normalize(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks cfg against its validation tags.
func Validate(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return validate.Struct(cfg)
}

func setupViper(v *viper.Viper, configPath string) {
	defaults := GetDefaultConfig()
	v.SetDefault("output", defaults.Output)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("paging.size", defaults.Paging.Size)
	v.SetDefault("paging.critical", defaults.Paging.Critical)
	v.SetDefault("sort.critical", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	}
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for key, name := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

func normalize(cfg *Config) {
	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
}
