// Package config loads the optional .gistrun.yaml configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Default values for the client and executor.
const (
	DefaultBaseURL        = "https://api.github.com"
	DefaultFetchLimit     = 100
	DefaultRequestTimeout = 5 * time.Minute
	DefaultExecTimeout    = 60 * time.Second
	DefaultMaxOutput      = 1 << 20 // 1 MB
	DefaultHashFunc       = "sha256"
)

// Config holds the effective gistrun configuration. All fields are
// optional; zero values fall back to the defaults above.
type Config struct {
	APIBaseURL        string            `mapstructure:"api_base_url" yaml:"api_base_url"`
	FetchLimit        int               `mapstructure:"fetch_limit" yaml:"fetch_limit"`
	RawRequestTimeout string            `mapstructure:"request_timeout" yaml:"request_timeout"` // e.g. "5m", "30s"
	Exec              ExecConfig        `mapstructure:"exec" yaml:"exec"`
	Commands          map[string]string `mapstructure:"commands" yaml:"commands,omitempty"` // extension mapping overrides
}

// ExecConfig controls per-file execution.
type ExecConfig struct {
	RawTimeout string `mapstructure:"timeout" yaml:"timeout"` // e.g. "60s"; "0" means unbounded
	MaxOutput  int    `mapstructure:"max_output" yaml:"max_output"`
	HashFunc   string `mapstructure:"hash_func" yaml:"hash_func"`
}

// RequestTimeout returns the configured HTTP timeout or the default.
func (c *Config) RequestTimeout() time.Duration {
	if d, err := time.ParseDuration(c.RawRequestTimeout); err == nil && d > 0 {
		return d
	}
	return DefaultRequestTimeout
}

// ExecTimeout returns the configured per-file timeout. A configured zero
// or negative duration means unbounded; an unparsable or absent value
// falls back to the default.
func (c *Config) ExecTimeout() time.Duration {
	d, err := time.ParseDuration(c.Exec.RawTimeout)
	if err != nil {
		return DefaultExecTimeout
	}
	if d <= 0 {
		return 0
	}
	return d
}

// MaxOutputBytes returns the configured output cap or the default.
func (c *Config) MaxOutputBytes() int {
	if c.Exec.MaxOutput > 0 {
		return c.Exec.MaxOutput
	}
	return DefaultMaxOutput
}

// HashFunc returns the configured digest algorithm name or the default.
func (c *Config) HashFunc() string {
	if c.Exec.HashFunc != "" {
		return c.Exec.HashFunc
	}
	return DefaultHashFunc
}

// Dump renders the effective configuration as YAML.
func (c *Config) Dump() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("rendering config: %w", err)
	}
	return string(out), nil
}

// Load reads configuration from path. With an empty path it searches the
// working directory and $HOME/.config/gistrun for a .gistrun.yaml file;
// a missing file yields the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".gistrun")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "gistrun"))
		}
	}

	v.SetDefault("api_base_url", DefaultBaseURL)
	v.SetDefault("fetch_limit", DefaultFetchLimit)
	v.SetDefault("request_timeout", DefaultRequestTimeout.String())
	v.SetDefault("exec.timeout", DefaultExecTimeout.String())
	v.SetDefault("exec.max_output", DefaultMaxOutput)
	v.SetDefault("exec.hash_func", DefaultHashFunc)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
