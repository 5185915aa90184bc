// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// MaxPageSize bounds activity page sizes.
const MaxPageSize = 100

// Config holds the application configuration.
type Config struct {
	Calendar CalendarConfig `toml:"calendar"`
	Project  ProjectConfig  `toml:"project"`
	Storage  StorageConfig  `toml:"storage"`
	Activity ActivityConfig `toml:"activity"`
	Server   ServerConfig   `toml:"server"`
	UI       UIConfig       `toml:"ui"`
}

// CalendarConfig holds month grid settings.
type CalendarConfig struct {
	OverflowLimit int    `toml:"overflow_limit"` // Lanes per day before "+N more"
	WeekStart     string `toml:"week_start"`     // "monday" or "sunday"
}

// ProjectConfig holds project selection settings.
type ProjectConfig struct {
	Default string `toml:"default"` // Project used when --project is omitted
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// ActivityConfig holds activity feed settings.
type ActivityConfig struct {
	BaseURL  string `toml:"base_url"` // Empty reads the local store
	Token    string `toml:"token"`    // Optional bearer token
	PageSize int    `toml:"page_size"`
	Timeout  string `toml:"timeout"` // Go duration, e.g. "10s"
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr     string `toml:"addr"`
	LogLevel string `toml:"log_level"` // "debug", "info", "warn", "error"
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte", "light"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Calendar: CalendarConfig{
			OverflowLimit: 3,
			WeekStart:     "monday",
		},
		Project: ProjectConfig{
			Default: "inbox",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Activity: ActivityConfig{
			PageSize: 20,
			Timeout:  "10s",
		},
		Server: ServerConfig{
			Addr:     "127.0.0.1:8080",
			LogLevel: "info",
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "rocinante.db"
	}
	return filepath.Join(home, ".local", "share", "rocinante", "rocinante.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "rocinante", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("ROCINANTE_OVERFLOW_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ROCINANTE_OVERFLOW_LIMIT: %w", err)
		}
		cfg.Calendar.OverflowLimit = n
	}
	if v := os.Getenv("ROCINANTE_WEEK_START"); v != "" {
		cfg.Calendar.WeekStart = v
	}
	if v := os.Getenv("ROCINANTE_PROJECT"); v != "" {
		cfg.Project.Default = v
	}

	if v := os.Getenv("ROCINANTE_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := os.Getenv("ROCINANTE_ACTIVITY_URL"); v != "" {
		cfg.Activity.BaseURL = v
	}
	if v := os.Getenv("ROCINANTE_ACTIVITY_TOKEN"); v != "" {
		cfg.Activity.Token = v
	}

	if v := os.Getenv("ROCINANTE_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("ROCINANTE_LOG_LEVEL"); v != "" {
		cfg.Server.LogLevel = v
	}

	if v := os.Getenv("ROCINANTE_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Calendar.OverflowLimit < 1 {
		return errors.New("overflow_limit must be at least 1")
	}
	switch strings.ToLower(c.Calendar.WeekStart) {
	case "monday", "sunday":
	default:
		return fmt.Errorf("week_start must be 'monday' or 'sunday', got %q", c.Calendar.WeekStart)
	}
	if strings.TrimSpace(c.Project.Default) == "" {
		return errors.New("default project must be set")
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if c.Activity.PageSize < 1 || c.Activity.PageSize > MaxPageSize {
		return fmt.Errorf("page_size must be between 1 and %d", MaxPageSize)
	}
	if c.Activity.Timeout != "" {
		if _, err := time.ParseDuration(c.Activity.Timeout); err != nil {
			return fmt.Errorf("timeout must be a duration like \"10s\", got %q", c.Activity.Timeout)
		}
	}
	if c.Activity.BaseURL != "" &&
		!strings.HasPrefix(c.Activity.BaseURL, "http://") && !strings.HasPrefix(c.Activity.BaseURL, "https://") {
		return fmt.Errorf("base_url must start with http:// or https://, got %q", c.Activity.BaseURL)
	}
	if c.Server.Addr == "" {
		return errors.New("server addr must be set")
	}
	if !validLogLevels[strings.ToLower(c.Server.LogLevel)] {
		return fmt.Errorf("invalid log_level: %s", c.Server.LogLevel)
	}
	return nil
}

// WeekStartDay returns the configured first column of the month grid.
func (c *Config) WeekStartDay() time.Weekday {
	if strings.EqualFold(c.Calendar.WeekStart, "sunday") {
		return time.Sunday
	}
	return time.Monday
}

// ActivityTimeout returns the activity HTTP timeout, defaulting to 10s.
func (c *Config) ActivityTimeout() time.Duration {
	d, err := time.ParseDuration(c.Activity.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// UsesRemoteActivity returns true if the activity feed is read over HTTP.
func (c *Config) UsesRemoteActivity() bool {
	return c.Activity.BaseURL != ""
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
