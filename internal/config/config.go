package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// configDir is the configuration directory path
	// Can be set via SetConfigDir before loading config
	configDir     string
	configDirInit bool
)

// SetConfigDir sets a custom configuration directory
// Must be called before any config loading functions
func SetConfigDir(dir string) {
	configDir = dir
	configDirInit = true
}

// GetConfigDir returns the configuration directory
// Priority: 1. Manually set via SetConfigDir, 2. ./config in current directory
func GetConfigDir() string {
	if !configDirInit {
		cwd, err := os.Getwd()
		if err == nil {
			configDir = filepath.Join(cwd, "config")
		}
		configDirInit = true
	}
	return configDir
}

// Config application configuration structure
type Config struct {
	Model     ModelConfig     `yaml:"model"`
	WebSearch WebSearchConfig `yaml:"web_search"`
	Search    SearchConfig    `yaml:"search"`
	Session   SessionConfig   `yaml:"session"`
}

// ModelConfig LLM model configuration
type ModelConfig struct {
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// WebSearchConfig web search backend configuration
type WebSearchConfig struct {
	Provider       string `yaml:"provider"`
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	DefaultLimit   int    `yaml:"default_limit"`
	UserAgent      string `yaml:"user_agent"`
}

// SearchConfig ranking engine tuning
type SearchConfig struct {
	MaxQueries      int `yaml:"max_queries"`
	EvidenceSize    int `yaml:"evidence_size"`
	DisplaySize     int `yaml:"display_size"`
	CacheTTLMinutes int `yaml:"cache_ttl_minutes"`
}

// SessionConfig session persistence configuration
type SessionConfig struct {
	DBPath             string `yaml:"db_path"`
	MaxContextMessages int    `yaml:"max_context_messages"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Model: ModelConfig{
			APIKey:      "",
			BaseURL:     "https://api.deepseek.com",
			Model:       "deepseek-chat",
			Temperature: 0.2,
			MaxTokens:   4096,
		},
		WebSearch: WebSearchConfig{
			Provider:       "brave",
			BaseURL:        "https://search.brave.com",
			APIKey:         "",
			TimeoutSeconds: 15,
			DefaultLimit:   5,
			UserAgent:      "searchpilot/0.1",
		},
		Search: SearchConfig{
			MaxQueries:      4,
			EvidenceSize:    6,
			DisplaySize:     10,
			CacheTTLMinutes: 60,
		},
		Session: SessionConfig{
			DBPath:             filepath.Join(homeDir, ".searchpilot", "sessions.db"),
			MaxContextMessages: 20,
		},
	}
}

// ConfigDir returns the configuration directory path
func ConfigDir() (string, error) {
	dir := GetConfigDir()
	if dir == "" {
		return "", fmt.Errorf("failed to determine config directory")
	}
	return dir, nil
}

// LogDir returns the log directory path
func LogDir() string {
	dir := GetConfigDir()
	if dir == "" {
		return "logs"
	}
	return filepath.Join(dir, "logs")
}

// ConfigPath returns the configuration file path
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load loads configuration from file and merges with secrets
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	// Config file doesn't exist yet: create one from the defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()

		secrets, _ := LoadSecrets()
		if secrets != nil {
			if apiKey := secrets.GetModelAPIKey(); apiKey != "" {
				cfg.Model.APIKey = apiKey
			}
			if webKey := secrets.GetWebSearchAPIKey(); webKey != "" {
				cfg.WebSearch.APIKey = webKey
			}
		}

		if err := Save(cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig() // Use default values as base
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Secrets fill keys the config file leaves empty
	secrets, _ := LoadSecrets()
	if secrets != nil {
		if cfg.Model.APIKey == "" {
			if apiKey := secrets.GetModelAPIKey(); apiKey != "" {
				cfg.Model.APIKey = apiKey
			}
		}
		if cfg.WebSearch.APIKey == "" {
			if webKey := secrets.GetWebSearchAPIKey(); webKey != "" {
				cfg.WebSearch.APIKey = webKey
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves configuration to file
func Save(cfg *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	content := "# searchpilot configuration file\n\n" + string(data)

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Model.BaseURL == "" {
		return fmt.Errorf("config error: model.base_url cannot be empty")
	}
	if c.Model.Model == "" {
		return fmt.Errorf("config error: model.model cannot be empty")
	}
	if c.Model.Temperature < 0 || c.Model.Temperature > 2 {
		return fmt.Errorf("config error: model.temperature must be between 0 and 2")
	}
	if c.Model.MaxTokens <= 0 {
		return fmt.Errorf("config error: model.max_tokens must be greater than 0")
	}

	provider := strings.ToLower(strings.TrimSpace(c.WebSearch.Provider))
	if provider == "" {
		provider = "brave"
	}
	if provider == "searxng" && strings.TrimSpace(c.WebSearch.BaseURL) == "" {
		return fmt.Errorf("config error: web_search.base_url cannot be empty for searxng provider")
	}
	if c.WebSearch.TimeoutSeconds <= 0 {
		return fmt.Errorf("config error: web_search.timeout_seconds must be greater than 0")
	}
	if c.WebSearch.DefaultLimit <= 0 {
		return fmt.Errorf("config error: web_search.default_limit must be greater than 0")
	}

	if c.Search.MaxQueries <= 0 || c.Search.MaxQueries > 4 {
		return fmt.Errorf("config error: search.max_queries must be between 1 and 4")
	}
	if c.Search.EvidenceSize <= 0 {
		return fmt.Errorf("config error: search.evidence_size must be greater than 0")
	}
	if c.Search.DisplaySize < c.Search.EvidenceSize {
		return fmt.Errorf("config error: search.display_size must be at least search.evidence_size")
	}
	if c.Search.CacheTTLMinutes <= 0 {
		return fmt.Errorf("config error: search.cache_ttl_minutes must be greater than 0")
	}

	if c.Session.DBPath == "" {
		return fmt.Errorf("config error: session.db_path cannot be empty")
	}
	if c.Session.MaxContextMessages <= 0 {
		return fmt.Errorf("config error: session.max_context_messages must be greater than 0")
	}

	return nil
}

// IsAPIKeyConfigured checks if the model API key is configured
func (c *Config) IsAPIKeyConfigured() bool {
	return c.Model.APIKey != ""
}

// String returns string representation of config (hides sensitive info)
func (c *Config) String() string {
	return fmt.Sprintf(`searchpilot configuration:
  Model:
    API Key: %s
    Base URL: %s
    Model: %s
    Temperature: %.1f
    Max Tokens: %d
  Web Search:
    Provider: %s
    Base URL: %s
    API Key: %s
    Timeout Seconds: %d
    Default Limit: %d
    User Agent: %s
  Search:
    Max Queries: %d
    Evidence Size: %d
    Display Size: %d
    Cache TTL Minutes: %d
  Session:
    DB Path: %s
    Max Context Messages: %d`,
		redactAPIKey(c.Model.APIKey),
		c.Model.BaseURL,
		c.Model.Model,
		c.Model.Temperature,
		c.Model.MaxTokens,
		c.WebSearch.Provider,
		c.WebSearch.BaseURL,
		redactAPIKey(c.WebSearch.APIKey),
		c.WebSearch.TimeoutSeconds,
		c.WebSearch.DefaultLimit,
		c.WebSearch.UserAgent,
		c.Search.MaxQueries,
		c.Search.EvidenceSize,
		c.Search.DisplaySize,
		c.Search.CacheTTLMinutes,
		c.Session.DBPath,
		c.Session.MaxContextMessages,
	)
}

func redactAPIKey(value string) string {
	if value == "" {
		return "(not configured)"
	}
	if len(value) > 8 {
		return value[:8] + "..."
	}
	return "***"
}
