package config

import (
	"fmt"
	"os"
	"strconv"

	"go.yaml.in/yaml/v3"
)

// Config represents the main application configuration
type Config struct {
	// Metadata provider
	TMDb TMDbConfig `yaml:"tmdb"`

	// Relay service (server side)
	Server ServerConfig `yaml:"server"`

	// Relay endpoint used by the search frontends (client side)
	Relay RelayConfig `yaml:"relay"`

	// Frontends
	Telegram *TelegramConfig `yaml:"telegram,omitempty"`

	// Application settings
	App AppConfig `yaml:"app"`
}

// TMDbConfig holds TMDb API configuration. The credential lives here rather
// than in source: the upstream key is a deployment secret.
type TMDbConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url,omitempty"` // override for testing
}

// ServerConfig holds relay service settings.
type ServerConfig struct {
	Port int `yaml:"port"`

	// ProxyAllowedHosts restricts the generic proxy endpoint to these hosts.
	// Empty means any destination is allowed.
	ProxyAllowedHosts []string `yaml:"proxy_allowed_hosts,omitempty"`
}

// RelayConfig holds the relay base URL the frontends call.
type RelayConfig struct {
	URL string `yaml:"url"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken       string  `yaml:"bot_token"`
	AllowedChatIDs []int64 `yaml:"allowed_chat_ids,omitempty"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	LogLevel string `yaml:"log_level"` // "debug", "info", "warn", "error"
}

// Load loads configuration from a YAML file with environment variable overrides
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides overrides config values with environment variables
func (c *Config) applyEnvOverrides() {
	// TMDb
	if v := os.Getenv("CINESCOUT_TMDB_API_KEY"); v != "" {
		c.TMDb.APIKey = v
	}
	if v := os.Getenv("CINESCOUT_TMDB_BASE_URL"); v != "" {
		c.TMDb.BaseURL = v
	}

	// Server
	if v := os.Getenv("CINESCOUT_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}

	// Relay
	if v := os.Getenv("CINESCOUT_RELAY_URL"); v != "" {
		c.Relay.URL = v
	}

	// Telegram
	if c.Telegram != nil {
		if v := os.Getenv("CINESCOUT_TELEGRAM_BOT_TOKEN"); v != "" {
			c.Telegram.BotToken = v
		}
	}

	// App
	if v := os.Getenv("CINESCOUT_LOG_LEVEL"); v != "" {
		c.App.LogLevel = v
	}
}

// Validate validates the configuration and fills in defaults.
func (c *Config) Validate() error {
	if c.TMDb.APIKey == "" {
		return fmt.Errorf("tmdb.api_key is required (or CINESCOUT_TMDB_API_KEY env var)")
	}

	if c.Telegram != nil && c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required when telegram is configured")
	}

	// Set defaults
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Relay.URL == "" {
		c.Relay.URL = fmt.Sprintf("http://localhost:%d", c.Server.Port)
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}

	return nil
}
