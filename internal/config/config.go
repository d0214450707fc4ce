package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Activation policies for directories on double-click / Enter.
const (
	ActivateExternal = "external" // hand the directory to the OS file manager
	ActivateNavigate = "navigate" // only navigate the column view
	ActivateBoth     = "both"     // navigate and open externally
)

// Config represents the application configuration structure.
// It defines browser behavior, well-known paths, confirmation prompts,
// and the color theme.
type Config struct {
	Browser struct {
		ShowHidden          bool     `yaml:"show_hidden"`          // Show dotfiles / hidden entries
		HideExtensions      bool     `yaml:"hide_extensions"`      // Hide file extensions in listings
		HidePatterns        []string `yaml:"hide_patterns"`        // Glob patterns always hidden from listings
		ActivateDirectories string   `yaml:"activate_directories"` // Directory activation policy: external, navigate, or both
		Preview             bool     `yaml:"preview"`              // Show the preview pane for selected files
		PreviewMaxBytes     int64    `yaml:"preview_max_bytes"`    // Largest file the preview pane will read
		AutoRefresh         bool     `yaml:"auto_refresh"`         // Refresh columns when the filesystem changes
	} `yaml:"browser"`
	Paths struct {
		Home  string `yaml:"home"`  // Root used by the Home action; empty = OS home dir
		Trash string `yaml:"trash"` // Trash directory override; empty = platform default
		Log   string `yaml:"log"`   // Log file; empty = <config dir>/colonnade.log
	} `yaml:"paths"`
	Confirm struct {
		Delete bool `yaml:"delete"` // Ask before permanent deletion
		Trash  bool `yaml:"trash"`  // Ask before moving to trash
	} `yaml:"confirm"`
	Theme struct {
		Name     string `yaml:"name"`     // Theme name (default, dark, light, etc.)
		Primary  string `yaml:"primary"`  // Primary color for branding
		Success  string `yaml:"success"`  // Success message color
		Warning  string `yaml:"warning"`  // Warning message color
		Error    string `yaml:"error"`    // Error message color
		Info     string `yaml:"info"`     // Informational message color
		Emphasis string `yaml:"emphasis"` // Emphasis color for text that should stand out
		Border   string `yaml:"border"`   // Border color for frames
	} `yaml:"theme"`
}

// LoadConfig loads configuration from the default location
// (~/.config/colonnade/config.yaml).
func LoadConfig() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "colonnade", "config.yaml"), nil
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	// Start with default configuration
	cfg := defaultConfig()

	// Try to read the config file
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Decode over a second defaults-prefilled copy so keys absent from
	// the file keep their default values, booleans included. Unknown keys
	// are rejected so typos don't silently disable settings.
	tempCfg := defaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(tempCfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Merge the loaded config with defaults
	cfg.Browser.ShowHidden = tempCfg.Browser.ShowHidden
	cfg.Browser.HideExtensions = tempCfg.Browser.HideExtensions
	if len(tempCfg.Browser.HidePatterns) > 0 {
		cfg.Browser.HidePatterns = tempCfg.Browser.HidePatterns
	}
	if tempCfg.Browser.ActivateDirectories != "" {
		cfg.Browser.ActivateDirectories = tempCfg.Browser.ActivateDirectories
	}
	cfg.Browser.Preview = tempCfg.Browser.Preview
	if tempCfg.Browser.PreviewMaxBytes > 0 {
		cfg.Browser.PreviewMaxBytes = tempCfg.Browser.PreviewMaxBytes
	}
	cfg.Browser.AutoRefresh = tempCfg.Browser.AutoRefresh

	if tempCfg.Paths.Home != "" {
		cfg.Paths.Home = tempCfg.Paths.Home
	}
	if tempCfg.Paths.Trash != "" {
		cfg.Paths.Trash = tempCfg.Paths.Trash
	}
	if tempCfg.Paths.Log != "" {
		cfg.Paths.Log = tempCfg.Paths.Log
	}

	cfg.Confirm.Delete = tempCfg.Confirm.Delete
	cfg.Confirm.Trash = tempCfg.Confirm.Trash

	if tempCfg.Theme.Name != "" {
		cfg.ApplyTheme(tempCfg.Theme.Name)
	}
	// Individual color overrides win over the named theme
	if tempCfg.Theme.Primary != "" {
		cfg.Theme.Primary = tempCfg.Theme.Primary
	}
	if tempCfg.Theme.Success != "" {
		cfg.Theme.Success = tempCfg.Theme.Success
	}
	if tempCfg.Theme.Warning != "" {
		cfg.Theme.Warning = tempCfg.Theme.Warning
	}
	if tempCfg.Theme.Error != "" {
		cfg.Theme.Error = tempCfg.Theme.Error
	}
	if tempCfg.Theme.Info != "" {
		cfg.Theme.Info = tempCfg.Theme.Info
	}
	if tempCfg.Theme.Emphasis != "" {
		cfg.Theme.Emphasis = tempCfg.Theme.Emphasis
	}
	if tempCfg.Theme.Border != "" {
		cfg.Theme.Border = tempCfg.Theme.Border
	}

	// Validate the final configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() *Config {
	cfg := &Config{}

	// Browser defaults: hidden files off, activation matches the desktop
	// convention of handing directories to the system file manager.
	cfg.Browser.ShowHidden = false
	cfg.Browser.HideExtensions = false
	cfg.Browser.HidePatterns = []string{}
	cfg.Browser.ActivateDirectories = ActivateExternal
	cfg.Browser.Preview = true
	cfg.Browser.PreviewMaxBytes = 1 << 20 // 1 MiB
	cfg.Browser.AutoRefresh = true

	cfg.Paths.Home = ""
	cfg.Paths.Trash = ""
	cfg.Paths.Log = ""

	// Permanent deletion asks, trashing is recoverable so it doesn't
	cfg.Confirm.Delete = true
	cfg.Confirm.Trash = false

	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Marshal the config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write the data to the file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
// Returns error if any settings are invalid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}

	// Validate the directory activation policy
	validPolicies := map[string]bool{
		ActivateExternal: true,
		ActivateNavigate: true,
		ActivateBoth:     true,
	}
	if !validPolicies[c.Browser.ActivateDirectories] {
		return fmt.Errorf("invalid activate_directories setting: %s", c.Browser.ActivateDirectories)
	}

	if c.Browser.PreviewMaxBytes < 0 {
		return fmt.Errorf("preview_max_bytes must be >= 0")
	}

	// Validate hide patterns compile as globs
	for i, pattern := range c.Browser.HidePatterns {
		if pattern == "" {
			return fmt.Errorf("hide pattern %d: pattern is required", i)
		}
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("hide pattern %d: %w", i, err)
		}
	}

	// Validate the home override points at an existing directory
	if c.Paths.Home != "" {
		info, err := os.Stat(c.Paths.Home)
		if err != nil {
			return fmt.Errorf("error accessing home path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("home path is not a directory: %s", c.Paths.Home)
		}
	}

	return nil
}

// HomePath resolves the root used by the Home action, falling back to the
// OS home directory when no override is configured.
func (c *Config) HomePath() (string, error) {
	if c.Paths.Home != "" {
		return c.Paths.Home, nil
	}
	return os.UserHomeDir()
}

// LogPath resolves the log file location, defaulting to a file beside the
// config file.
func (c *Config) LogPath() (string, error) {
	if c.Paths.Log != "" {
		return c.Paths.Log, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "colonnade", "colonnade.log"), nil
}

// NewTestConfig creates a configuration instance for testing purposes.
func NewTestConfig() *Config {
	cfg := defaultConfig()
	cfg.Browser.ShowHidden = true
	cfg.Browser.ActivateDirectories = ActivateNavigate
	cfg.Browser.AutoRefresh = false
	cfg.Confirm.Delete = false
	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	themes := map[string]map[string]string{
		"default": {
			"primary":  "213", // Purple
			"success":  "114", // Green
			"warning":  "220", // Yellow
			"error":    "196", // Red
			"info":     "39",  // Blue
			"emphasis": "212", // Light Pink
			"border":   "213", // Purple
		},
		"dark": {
			"primary":  "105", // Dark Blue
			"success":  "78",  // Dark Green
			"warning":  "214", // Dark Yellow
			"error":    "160", // Dark Red
			"info":     "33",  // Dark Blue
			"emphasis": "147", // Light Blue
			"border":   "105", // Dark Blue
		},
		"light": {
			"primary":  "135", // Light Purple
			"success":  "150", // Light Green
			"warning":  "222", // Light Yellow
			"error":    "210", // Light Red
			"info":     "117", // Light Blue
			"emphasis": "219", // Very Light Pink
			"border":   "135", // Light Purple
		},
		"monochrome": {
			"primary":  "245", // Light Grey
			"success":  "252", // White
			"warning":  "241", // Medium Grey
			"error":    "232", // Black
			"info":     "248", // Grey
			"emphasis": "255", // Bright White
			"border":   "245", // Light Grey
		},
		"ocean": {
			"primary":  "31",  // Teal
			"success":  "36",  // Green-Blue
			"warning":  "220", // Yellow
			"error":    "196", // Red
			"info":     "33",  // Blue
			"emphasis": "51",  // Cyan
			"border":   "31",  // Teal
		},
		"sunset": {
			"primary":  "208", // Orange
			"success":  "154", // Green
			"warning":  "214", // Dark Yellow
			"error":    "196", // Red
			"info":     "69",  // Light Green
			"emphasis": "203", // Pink-Orange
			"border":   "208", // Orange
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}

	return themes["default"]
}

// ApplyTheme sets the theme in the configuration.
// It updates the theme colors based on the theme name.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)

	c.Theme.Name = name
	c.Theme.Primary = theme["primary"]
	c.Theme.Success = theme["success"]
	c.Theme.Warning = theme["warning"]
	c.Theme.Error = theme["error"]
	c.Theme.Info = theme["info"]
	c.Theme.Emphasis = theme["emphasis"]
	c.Theme.Border = theme["border"]
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome", "ocean", "sunset"}
}
