// ABOUTME: Configuration loading and parsing for stormgate
// ABOUTME: Supports YAML and TOML files with environment variable expansion

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultToken is the bearer token used when neither the config file nor
// the MCP_AUTH_TOKEN environment variable provides one.
const DefaultToken = "my-secret-token-12345"

// TokenEnvVar is the environment variable consulted for the bearer token
// when auth.token is not set in the config file.
const TokenEnvVar = "MCP_AUTH_TOKEN"

// Auth modes.
const (
	AuthModeStatic = "static"
	AuthModeJWT    = "jwt"
)

// Config represents the complete stormgate configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" toml:"server"`
	Auth      AuthConfig      `yaml:"auth" toml:"auth"`
	Upstream  UpstreamConfig  `yaml:"upstream" toml:"upstream"`
	Probe     ProbeConfig     `yaml:"probe" toml:"probe"`
	Tailscale TailscaleConfig `yaml:"tailscale" toml:"tailscale"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`
}

// ServerConfig holds server address configuration
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr" toml:"http_addr"`
}

// AuthConfig holds authentication configuration.
// Mode "static" compares the presented bearer token against Token by exact
// string equality. Mode "jwt" verifies HS256-signed tokens against JWTSecret.
type AuthConfig struct {
	Mode      string `yaml:"mode" toml:"mode"`
	Token     string `yaml:"token" toml:"token"`
	JWTSecret string `yaml:"jwt_secret" toml:"jwt_secret"`
}

// UpstreamConfig holds the weather data provider configuration
type UpstreamConfig struct {
	BaseURL   string        `yaml:"base_url" toml:"base_url"`
	UserAgent string        `yaml:"user_agent" toml:"user_agent"`
	Timeout   time.Duration `yaml:"-" toml:"-"`

	// Raw string value for file unmarshaling
	TimeoutRaw string `yaml:"timeout" toml:"timeout"`
}

// ProbeConfig holds website liveness probe configuration
type ProbeConfig struct {
	Timeout time.Duration `yaml:"-" toml:"-"`

	TimeoutRaw string `yaml:"timeout" toml:"timeout"`
}

// TailscaleConfig holds Tailscale tsnet configuration
type TailscaleConfig struct {
	Enabled   bool   `yaml:"enabled" toml:"enabled"`
	Hostname  string `yaml:"hostname" toml:"hostname"`
	AuthKey   string `yaml:"auth_key" toml:"auth_key"`
	StateDir  string `yaml:"state_dir" toml:"state_dir"`
	Ephemeral bool   `yaml:"ephemeral" toml:"ephemeral"`
	Funnel    bool   `yaml:"funnel" toml:"funnel"` // Enable public Funnel (implies HTTPS)
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Default returns the configuration used when no config file exists:
// local HTTP on :8080, static auth with the environment/default token,
// the public NWS endpoint, and text logging.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Files ending in .toml are parsed as TOML; everything else is parsed as YAML.
// Environment variables in the format ${VAR_NAME} are expanded.
// Duration strings are parsed into time.Duration values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw content
	expandedData := expandEnvVars(string(data))

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal([]byte(expandedData), &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Parse duration fields
	if err := parseDurations(&cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	cfg.applyDefaults()

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// applyDefaults fills in zero-valued fields. The bearer token falls back to
// the MCP_AUTH_TOKEN environment variable, then to DefaultToken.
func (c *Config) applyDefaults() {
	if c.Server.HTTPAddr == "" {
		c.Server.HTTPAddr = "localhost:8080"
	}
	if c.Auth.Mode == "" {
		c.Auth.Mode = AuthModeStatic
	}
	if c.Auth.Token == "" {
		c.Auth.Token = os.Getenv(TokenEnvVar)
	}
	if c.Auth.Token == "" {
		c.Auth.Token = DefaultToken
	}
	if c.Upstream.BaseURL == "" {
		c.Upstream.BaseURL = "https://api.weather.gov"
	}
	if c.Upstream.UserAgent == "" {
		c.Upstream.UserAgent = "weather-app/1.0"
	}
	if c.Upstream.Timeout == 0 {
		c.Upstream.Timeout = 15 * time.Second
	}
	if c.Probe.Timeout == 0 {
		c.Probe.Timeout = 10 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	switch c.Auth.Mode {
	case AuthModeStatic, AuthModeJWT:
	default:
		return fmt.Errorf("auth.mode must be %q or %q, got %q", AuthModeStatic, AuthModeJWT, c.Auth.Mode)
	}

	if c.Auth.Mode == AuthModeJWT && c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required when auth.mode is %q", AuthModeJWT)
	}

	// Server address is required unless Tailscale is enabled
	if !c.Tailscale.Enabled && c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required (or enable tailscale)")
	}

	// Tailscale requires a hostname
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}

	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	var err error

	if cfg.Upstream.TimeoutRaw != "" {
		cfg.Upstream.Timeout, err = time.ParseDuration(cfg.Upstream.TimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing upstream.timeout %q: %w", cfg.Upstream.TimeoutRaw, err)
		}
	}

	if cfg.Probe.TimeoutRaw != "" {
		cfg.Probe.Timeout, err = time.ParseDuration(cfg.Probe.TimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing probe.timeout %q: %w", cfg.Probe.TimeoutRaw, err)
		}
	}

	return nil
}
