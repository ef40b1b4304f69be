// Package config loads the CLI configuration from mozaik.yaml and MOZAIK_
// environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mozaik-cms/mozaik/internal/journal"
	"github.com/mozaik-cms/mozaik/internal/transport"
)

// FileName is the configuration file looked up by Load
const FileName = "mozaik.yaml"

// EnvPrefix prefixes every environment variable, e.g. MOZAIK_ACCESS_TOKEN
const EnvPrefix = "MOZAIK"

// ErrNoCredentials is returned by Validate when the endpoint or token is missing
var ErrNoCredentials = errors.New("api_endpoint and access_token must be set (in " + FileName + " or as MOZAIK_API_ENDPOINT and MOZAIK_ACCESS_TOKEN)")

// Config represents the Mozaik CLI configuration
type Config struct {
	APIEndpoint string        `mapstructure:"api_endpoint" yaml:"api_endpoint"`
	AccessToken string        `mapstructure:"access_token" yaml:"access_token"`
	Workspace   string        `mapstructure:"workspace" yaml:"workspace,omitempty"`
	// ProjectID is the project reset targets; looked up from the token when empty
	ProjectID   string        `mapstructure:"project_id" yaml:"project_id,omitempty"`
	SchemaPath  string        `mapstructure:"schema_path" yaml:"schema_path"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Journal     JournalConfig `mapstructure:"journal" yaml:"journal"`

	// File is the configuration file that was read, if any
	File string `mapstructure:"-" yaml:"-"`
}

// JournalConfig configures where apply runs are recorded. Without a Redis
// address the journal is kept in memory.
type JournalConfig struct {
	RedisAddr string        `mapstructure:"redis_addr" yaml:"redis_addr,omitempty"`
	Prefix    string        `mapstructure:"prefix" yaml:"prefix"`
	TTL       time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		SchemaPath: "mozaik-schema.graphql",
		Timeout:    30 * time.Second,
		Journal: JournalConfig{
			Prefix: "mozaik:journal:",
			TTL:    7 * 24 * time.Hour,
		},
	}
}

// Load reads the configuration. An explicit path must exist; without one
// mozaik.yaml is searched in the current directory and its parents, and
// a missing file means defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("api_endpoint", "")
	v.SetDefault("access_token", "")
	v.SetDefault("workspace", "")
	v.SetDefault("project_id", "")
	v.SetDefault("schema_path", defaults.SchemaPath)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("journal.redis_addr", "")
	v.SetDefault("journal.prefix", defaults.Journal.Prefix)
	v.SetDefault("journal.ttl", defaults.Journal.TTL)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		if found, err := FindConfigFile(); err == nil {
			path = found
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.File = path

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindConfigFile looks for mozaik.yaml from the working directory upwards
func FindConfigFile() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found", FileName)
		}
		dir = parent
	}
}

// Write saves cfg as YAML at path, refusing to overwrite an existing file
func Write(path string, cfg Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	data, err := yaml.Marshal(fileConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// fileConfig is the on-disk form, durations as strings
func fileConfig(cfg Config) map[string]interface{} {
	out := map[string]interface{}{
		"api_endpoint": cfg.APIEndpoint,
		"access_token": cfg.AccessToken,
		"schema_path":  cfg.SchemaPath,
		"timeout":      cfg.Timeout.String(),
		"journal": map[string]interface{}{
			"redis_addr": cfg.Journal.RedisAddr,
			"prefix":     cfg.Journal.Prefix,
			"ttl":        cfg.Journal.TTL.String(),
		},
	}
	if cfg.Workspace != "" {
		out["workspace"] = cfg.Workspace
	}
	return out
}

// RequireCredentials checks that the backend can be reached
func (c *Config) RequireCredentials() error {
	if c.APIEndpoint == "" || c.AccessToken == "" {
		return ErrNoCredentials
	}
	return nil
}

// Transport returns the HTTP transport configuration
func (c *Config) Transport(userAgent string) transport.Config {
	return transport.Config{
		Endpoint:    c.APIEndpoint,
		AccessToken: c.AccessToken,
		Timeout:     c.Timeout,
		UserAgent:   userAgent,
	}
}

// RedisJournal returns the Redis journal configuration
func (c *Config) RedisJournal() journal.RedisConfig {
	return journal.RedisConfig{
		Addr:   c.Journal.RedisAddr,
		Prefix: c.Journal.Prefix,
		TTL:    c.Journal.TTL,
	}
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.APIEndpoint != "" {
		u, err := url.Parse(cfg.APIEndpoint)
		if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("api_endpoint must be an absolute http(s) URL, got: %s", cfg.APIEndpoint)
		}
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %s", cfg.Timeout)
	}
	if cfg.SchemaPath == "" {
		return errors.New("schema_path must not be empty")
	}
	return nil
}
