package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all usergrid configuration.
type Config struct {
	// GraphQL endpoint
	API APIConfig `yaml:"api"`

	// Response cache
	Cache CacheConfig `yaml:"cache"`

	// Grid and popover behavior
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the GraphQL client.
type APIConfig struct {
	Endpoint string            `yaml:"endpoint"`
	Token    string            `yaml:"token,omitempty"` // sent as a bearer token
	Headers  map[string]string `yaml:"headers,omitempty"`
	Timeout  string            `yaml:"timeout"`

	// Refresh is an optional cron expression ("@every 1m", "*/5 * * * *") that
	// triggers network-only refetches while the grid is open.
	Refresh string `yaml:"refresh,omitempty"`
}

// CacheConfig configures the response cache.
type CacheConfig struct {
	Backend   string `yaml:"backend"` // memory, redis, none
	TTL       string `yaml:"ttl"`
	RedisAddr string `yaml:"redis_addr,omitempty"`
	RedisPass string `yaml:"redis_password,omitempty"`
	RedisDB   int    `yaml:"redis_db,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Endpoint: "http://localhost:8085/graphql",
			Timeout:  "30s",
		},
		Cache: CacheConfig{
			Backend:   "memory",
			TTL:       "1m",
			RedisAddr: "localhost:6379",
		},
		UI:      *DefaultUIConfig(),
		Logging: DefaultLoggingConfig(),
	}
}

// DefaultDir returns the directory holding config and logs. A project-local
// .usergrid directory wins over the home-level one.
func DefaultDir() (string, error) {
	if cwd, err := os.Getwd(); err == nil {
		localDir := filepath.Join(cwd, ".usergrid")
		if stat, err := os.Stat(localDir); err == nil && stat.IsDir() {
			return localDir, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".usergrid"), nil
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load loads configuration from a YAML file. A missing file yields defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate rejects values that would make the client unusable.
func (c *Config) Validate() error {
	if c.API.Endpoint == "" {
		return fmt.Errorf("api.endpoint must be set")
	}
	switch c.Cache.Backend {
	case "", "memory", "redis", "none":
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.UI.MaxCellLength < 0 {
		return fmt.Errorf("ui.max_cell_length must not be negative")
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("USERGRID_ENDPOINT"); v != "" {
		c.API.Endpoint = v
	}
	if v := os.Getenv("USERGRID_TOKEN"); v != "" {
		c.API.Token = v
	}
	if v := os.Getenv("USERGRID_LOCALE"); v != "" {
		c.UI.Locale = v
	}
	if v := os.Getenv("USERGRID_TIMEZONE"); v != "" {
		c.UI.Timezone = v
	}
	if v := os.Getenv("USERGRID_REDIS_ADDR"); v != "" {
		c.Cache.RedisAddr = v
		c.Cache.Backend = "redis"
	}
	if v := os.Getenv("USERGRID_MAX_CELL_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.UI.MaxCellLength = n
		}
	}
	if os.Getenv("USERGRID_DEBUG") == "1" {
		c.Logging.DebugMode = true
		c.Logging.Level = "debug"
	}
}

// GetTimeout returns the HTTP timeout as a duration.
func (c *Config) GetTimeout() time.Duration {
	return parseDuration(c.API.Timeout, 30*time.Second)
}

// GetCacheTTL returns the cache TTL as a duration.
func (c *Config) GetCacheTTL() time.Duration {
	return parseDuration(c.Cache.TTL, time.Minute)
}

// Headers returns the static request headers including the bearer token.
func (c *Config) Headers() map[string]string {
	out := make(map[string]string, len(c.API.Headers)+1)
	for k, v := range c.API.Headers {
		out[k] = v
	}
	if c.API.Token != "" {
		out["Authorization"] = "Bearer " + c.API.Token
	}
	return out
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
