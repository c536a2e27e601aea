// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by the config
// layer, e.g. CAMTFIX_OUTPUT_SUFFIX.
const EnvPrefix = "CAMTFIX"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Output struct {
		// Suffix is inserted before the extension of the input file name.
		Suffix string `mapstructure:"suffix" yaml:"suffix"`
		// Indent is the number of spaces per level; 0 keeps the input layout.
		Indent int `mapstructure:"indent" yaml:"indent"`
	} `mapstructure:"output" yaml:"output"`

	Rewrite struct {
		RemittanceSeparator string `mapstructure:"remittance_separator" yaml:"remittance_separator"`
		ReferencePrefix     string `mapstructure:"reference_prefix" yaml:"reference_prefix"`
	} `mapstructure:"rewrite" yaml:"rewrite"`

	Batch struct {
		Workers  int    `mapstructure:"workers" yaml:"workers"`
		Manifest string `mapstructure:"manifest" yaml:"manifest"`
	} `mapstructure:"batch" yaml:"batch"`
}

// InitializeConfig loads configuration from defaults, the first config.yaml
// found in the search path, and CAMTFIX_* environment variables.
func InitializeConfig() (*Config, error) {
	return Load("")
}

// Load is InitializeConfig with an explicit config file. An empty configFile
// searches $HOME/.camt-fix, ./.camt-fix and the working directory; a missing
// file there is not an error. An explicit file must exist and parse.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.camt-fix")
		v.AddConfigPath(".camt-fix")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case configFile != "":
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		case errors.As(err, &notFound):
			// defaults and environment only
		default:
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// LOG_LEVEL is honoured without prefix, like the early logger setup in main.
	if err := v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind log level: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration built from defaults only.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// defaults always decode
	_ = v.Unmarshal(&config)
	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("output.suffix", "_FIXED")
	v.SetDefault("output.indent", 2)

	v.SetDefault("rewrite.remittance_separator", " | ")
	v.SetDefault("rewrite.reference_prefix", "WISE")

	v.SetDefault("batch.workers", 0)
	v.SetDefault("batch.manifest", "")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Output.Suffix == "" {
		return fmt.Errorf("output.suffix must not be empty")
	}
	if strings.ContainsAny(config.Output.Suffix, `/\`) {
		return fmt.Errorf("output.suffix must not contain path separators, got: %s", config.Output.Suffix)
	}

	if config.Output.Indent < 0 || config.Output.Indent > 8 {
		return fmt.Errorf("output.indent must be between 0 and 8, got: %d", config.Output.Indent)
	}

	if config.Rewrite.RemittanceSeparator == "" {
		return fmt.Errorf("rewrite.remittance_separator must not be empty")
	}

	// AcctSvcrRef is Max35Text and the digest part needs room.
	if len(config.Rewrite.ReferencePrefix) > 8 || strings.ContainsAny(config.Rewrite.ReferencePrefix, " \t\r\n") {
		return fmt.Errorf("rewrite.reference_prefix must be at most 8 characters without whitespace, got: %q", config.Rewrite.ReferencePrefix)
	}

	if config.Batch.Workers < 0 || config.Batch.Workers > 256 {
		return fmt.Errorf("batch.workers must be between 0 and 256, got: %d", config.Batch.Workers)
	}

	return nil
}
