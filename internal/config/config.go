package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	DBPath          string `yaml:"db_path"`
	CatalogPath     string `yaml:"catalog_path,omitempty"`
	JourneyLogPath  string `yaml:"journey_log_path,omitempty"`
	MaxQuantity     int    `yaml:"max_quantity"`
	SuggestionCap   int    `yaml:"suggestion_cap"`
	HistoryLimit    int    `yaml:"history_limit"`
	MinInteractions int    `yaml:"history_min_interactions"`
	// ClearListOnStart empties the shopping list at API startup while
	// keeping history, treating the list as session data.
	ClearListOnStart bool         `yaml:"clear_list_on_start"`
	Remote           RemoteParser `yaml:"remote_parser"`
	Server           Server       `yaml:"server"`
}

// RemoteParser configures the optional higher-accuracy parsing service.
type RemoteParser struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
	Model    string `yaml:"model,omitempty"`
}

// Server configures the HTTP API binary.
type Server struct {
	ListenAddr       string `yaml:"listen_addr"`
	RateLimit        int    `yaml:"rate_limit"`
	RateIntervalSecs int    `yaml:"rate_interval_secs"`
}

// Default returns the default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		DBPath:           filepath.Join(homeDir, ".listpilot", "listpilot.db"),
		CatalogPath:      "",
		JourneyLogPath:   filepath.Join(homeDir, ".listpilot", "journey.jsonl"),
		MaxQuantity:      100,
		SuggestionCap:    10,
		HistoryLimit:     3,
		MinInteractions:  2,
		ClearListOnStart: false,
		Remote: RemoteParser{
			Enabled: false,
		},
		Server: Server{
			ListenAddr:       ":8080",
			RateLimit:        60,
			RateIntervalSecs: 60,
		},
	}
}

// Load reads configuration from file, creating it with defaults if it
// doesn't exist
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := cfg.Save(path); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default() // Start with defaults
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".listpilot", "config.yaml")
}
