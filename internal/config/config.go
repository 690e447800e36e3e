package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Archive   ArchiveConfig   `toml:"archive"`
	Feeds     FeedsConfig     `toml:"feeds"`
	Site      SiteConfig      `toml:"site"`
	Affiliate AffiliateConfig `toml:"affiliate"`
	Tracker   TrackerConfig   `toml:"tracker"`
	Tunnel    TunnelConfig    `toml:"tunnel"`
	Viewer    ViewerConfig    `toml:"viewer"`
	Logging   LoggingConfig   `toml:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Port           string `toml:"port"`
	Host           string `toml:"host"`
	StaticDir      string `toml:"static_dir"`
	EnableCORS     bool   `toml:"enable_cors"`
	RequestLogging bool   `toml:"request_logging"`
	ReadTimeout    int    `toml:"read_timeout_seconds"`
}

// ArchiveConfig contains photo archive configuration
type ArchiveConfig struct {
	DatabasePath   string `toml:"database_path"`
	MaxConnections int    `toml:"max_connections"`
}

// FeedsConfig contains feed ingestion configuration
type FeedsConfig struct {
	IncomingDir     string `toml:"incoming_dir"`
	WatchForChanges bool   `toml:"watch_for_changes"`
	ImportOnStartup bool   `toml:"import_on_startup"`
}

// SiteConfig contains site artifact configuration
type SiteConfig struct {
	OutputDir string `toml:"output_dir"`
	BaseURL   string `toml:"base_url"`
}

// AffiliateConfig contains affiliate link configuration
type AffiliateConfig struct {
	Enabled  bool   `toml:"enabled"`
	MaxLinks int    `toml:"max_links"`
	EnvFile  string `toml:"env_file"`
}

// TrackerConfig contains price tracker configuration
type TrackerConfig struct {
	StoragePath string `toml:"storage_path"`
}

// TunnelConfig contains ngrok tunnel configuration
type TunnelConfig struct {
	Enabled   bool   `toml:"enabled"`
	AuthToken string `toml:"auth_token"`
	Domain    string `toml:"domain"`
}

// ViewerConfig contains terminal viewer configuration
type ViewerConfig struct {
	ServerURL  string `toml:"server_url"`
	PhotoLimit int    `toml:"photo_limit"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			Host:           "0.0.0.0",
			StaticDir:      "./site",
			EnableCORS:     true,
			RequestLogging: true,
			ReadTimeout:    30,
		},
		Archive: ArchiveConfig{
			DatabasePath:   "./courtside.db",
			MaxConnections: 10,
		},
		Feeds: FeedsConfig{
			IncomingDir:     "./feeds",
			WatchForChanges: true,
			ImportOnStartup: true,
		},
		Site: SiteConfig{
			OutputDir: "./site",
			BaseURL:   "",
		},
		Affiliate: AffiliateConfig{
			Enabled:  true,
			MaxLinks: 3,
			EnvFile:  ".env",
		},
		Tracker: TrackerConfig{
			StoragePath: "./shoe_tracking.json",
		},
		Tunnel: TunnelConfig{
			Enabled:   false,
			AuthToken: "",
			Domain:    "",
		},
		Viewer: ViewerConfig{
			ServerURL:  "http://localhost:8080",
			PhotoLimit: 200,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			File:   "",
		},
	}
}

// LoadConfig loads configuration from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Config file doesn't exist, create it with defaults
		if err := cfg.SaveToFile(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config file: %w", err)
		}
		fmt.Printf("Created default configuration file at: %s\n", configPath)
		return cfg, nil
	}

	// Load from file
	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves the configuration to a TOML file
func (c *Config) SaveToFile(configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create or open file
	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	// Write header comment
	header := `# Courtside Gallery Configuration
# This file contains all configuration options for the Courtside sneaker
# photo gallery server and tools. Edit the values below to customize them.

`
	if _, err := file.WriteString(header); err != nil {
		return fmt.Errorf("failed to write config header: %w", err)
	}

	// Encode configuration to TOML
	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config to TOML: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate server config
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}
	if c.Server.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Server.ReadTimeout < 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	// Validate archive config
	if c.Archive.DatabasePath == "" {
		return fmt.Errorf("archive database path cannot be empty")
	}
	if c.Archive.MaxConnections < 1 {
		return fmt.Errorf("archive max connections must be at least 1")
	}

	// Validate feeds config
	if c.Feeds.IncomingDir == "" {
		return fmt.Errorf("feeds incoming directory cannot be empty")
	}

	// Validate affiliate config
	if c.Affiliate.MaxLinks < 1 {
		return fmt.Errorf("affiliate max links must be at least 1")
	}

	// Validate tracker config
	if c.Tracker.StoragePath == "" {
		return fmt.Errorf("tracker storage path cannot be empty")
	}

	// Validate logging config
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}

	validLogFormats := map[string]bool{
		"text": true, "json": true,
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", c.Logging.Format)
	}

	return nil
}

// GetAddress returns the full server address
func (c *Config) GetAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

// PlayersIndexURL returns the search index URL served by the given base URL
func PlayersIndexURL(serverURL string) string {
	return serverURL + "/search/players.json"
}
