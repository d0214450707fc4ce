package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"colonnade/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary YAML config file
func createTestYAML(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	err = tmpFile.Close()
	require.NoError(t, err)
	return tmpFile.Name()
}

const (
	validYAML = `
browser:
  show_hidden: true
  hide_patterns:
    - "*.tmp"
    - "*.swp"
  activate_directories: "navigate"
  preview: true
  preview_max_bytes: 4096
confirm:
  delete: true
theme:
  name: "ocean"
`
	invalidSyntaxYAML = `
browser:
  show_hidden: [unterminated
  hide_patterns: "*.tmp
`
	invalidValueYAML = `
browser:
  activate_directories: "teleport"
`
	invalidPatternYAML = `
browser:
  hide_patterns:
    - "["
`
	unknownKeyYAML = `
browser:
  show_hiden: true
`
	themeOnlyYAML = `
theme:
  name: "ocean"
`
	optOutYAML = `
browser:
  preview: false
  auto_refresh: false
confirm:
  delete: false
`
)

func TestLoadConfigFile(t *testing.T) {
	t.Run("load valid config", func(t *testing.T) {
		configFile := createTestYAML(t, validYAML)
		cfg, err := config.LoadConfigFile(configFile)

		require.NoError(t, err)
		require.NotNil(t, cfg)

		// Assert specific loaded values
		assert.True(t, cfg.Browser.ShowHidden)
		assert.Len(t, cfg.Browser.HidePatterns, 2)
		assert.Equal(t, "*.tmp", cfg.Browser.HidePatterns[0])
		assert.Equal(t, config.ActivateNavigate, cfg.Browser.ActivateDirectories)
		assert.True(t, cfg.Browser.Preview)
		assert.Equal(t, int64(4096), cfg.Browser.PreviewMaxBytes)
		assert.True(t, cfg.Confirm.Delete)

		// Named theme expands into the color fields
		assert.Equal(t, "ocean", cfg.Theme.Name)
		assert.Equal(t, "31", cfg.Theme.Primary)
	})

	t.Run("load non-existent file", func(t *testing.T) {
		nonExistentPath := filepath.Join(t.TempDir(), "does_not_exist.yaml")
		cfg, err := config.LoadConfigFile(nonExistentPath)

		require.NoError(t, err, "Loading non-existent file should return default config, not an error")
		require.NotNil(t, cfg)

		// Check a few default values
		defaultCfg := config.New() // Get expected defaults
		assert.Equal(t, defaultCfg.Browser.ShowHidden, cfg.Browser.ShowHidden)
		assert.Equal(t, defaultCfg.Browser.ActivateDirectories, cfg.Browser.ActivateDirectories)
		assert.Equal(t, defaultCfg.Browser.PreviewMaxBytes, cfg.Browser.PreviewMaxBytes)
		assert.Equal(t, defaultCfg.Confirm.Delete, cfg.Confirm.Delete)
	})

	t.Run("partial file keeps boolean defaults", func(t *testing.T) {
		configFile := createTestYAML(t, themeOnlyYAML)
		cfg, err := config.LoadConfigFile(configFile)

		require.NoError(t, err)
		assert.Equal(t, "ocean", cfg.Theme.Name)

		// Keys the file never mentions must not be zeroed out
		defaultCfg := config.New()
		assert.Equal(t, defaultCfg.Browser.Preview, cfg.Browser.Preview)
		assert.Equal(t, defaultCfg.Browser.AutoRefresh, cfg.Browser.AutoRefresh)
		assert.Equal(t, defaultCfg.Confirm.Delete, cfg.Confirm.Delete)
		assert.Equal(t, defaultCfg.Confirm.Trash, cfg.Confirm.Trash)
	})

	t.Run("explicit false wins over a true default", func(t *testing.T) {
		configFile := createTestYAML(t, optOutYAML)
		cfg, err := config.LoadConfigFile(configFile)

		require.NoError(t, err)
		assert.False(t, cfg.Browser.Preview)
		assert.False(t, cfg.Browser.AutoRefresh)
		assert.False(t, cfg.Confirm.Delete)
	})

	t.Run("load file with invalid YAML syntax", func(t *testing.T) {
		configFile := createTestYAML(t, invalidSyntaxYAML)
		_, err := config.LoadConfigFile(configFile)

		require.Error(t, err, "Loading invalid YAML should return an error")
		assert.Contains(t, err.Error(), "error parsing config file", "Error message should indicate parsing failure")
	})

	t.Run("load file with invalid activation policy", func(t *testing.T) {
		configFile := createTestYAML(t, invalidValueYAML)
		_, err := config.LoadConfigFile(configFile)

		require.Error(t, err, "Loading config with invalid value should return an error")
		assert.Contains(t, err.Error(), "invalid configuration", "Error message should indicate validation failure")
		assert.Contains(t, err.Error(), "invalid activate_directories setting", "Error message should specify the validation issue")
	})

	t.Run("load file with invalid hide pattern", func(t *testing.T) {
		configFile := createTestYAML(t, invalidPatternYAML)
		_, err := config.LoadConfigFile(configFile)

		require.Error(t, err, "A glob that does not compile should fail validation")
		assert.Contains(t, err.Error(), "hide pattern 0")
	})

	t.Run("load file with unknown key", func(t *testing.T) {
		configFile := createTestYAML(t, unknownKeyYAML)
		_, err := config.LoadConfigFile(configFile)

		require.Error(t, err, "Unknown keys should be rejected so typos are caught")
		assert.Contains(t, err.Error(), "error parsing config file")
	})
}

func TestSaveConfig(t *testing.T) {
	cfg := config.New()
	cfg.Browser.ShowHidden = true
	cfg.Browser.HidePatterns = []string{"*.bak"}
	cfg.ApplyTheme("dark")

	// Save into a nested path that does not exist yet
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, config.SaveConfig(cfg, path))

	// Round-trip: loading it back yields the same settings
	loaded, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.True(t, loaded.Browser.ShowHidden)
	assert.Equal(t, []string{"*.bak"}, loaded.Browser.HidePatterns)
	assert.Equal(t, "dark", loaded.Theme.Name)
	assert.Equal(t, "105", loaded.Theme.Primary)
}

func TestValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, config.New().Validate())
	})

	t.Run("nil config", func(t *testing.T) {
		var cfg *config.Config
		assert.Error(t, cfg.Validate())
	})

	t.Run("home path must exist", func(t *testing.T) {
		cfg := config.New()
		cfg.Paths.Home = filepath.Join(t.TempDir(), "missing")
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error accessing home path")
	})

	t.Run("home path must be a directory", func(t *testing.T) {
		cfg := config.New()
		file := createTestYAML(t, "browser: {}\n")
		cfg.Paths.Home = file
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})

	t.Run("negative preview cap", func(t *testing.T) {
		cfg := config.New()
		cfg.Browser.PreviewMaxBytes = -1
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty hide pattern", func(t *testing.T) {
		cfg := config.New()
		cfg.Browser.HidePatterns = []string{""}
		assert.Error(t, cfg.Validate())
	})
}

func TestHomePath(t *testing.T) {
	t.Run("override wins", func(t *testing.T) {
		dir := t.TempDir()
		cfg := config.New()
		cfg.Paths.Home = dir
		got, err := cfg.HomePath()
		require.NoError(t, err)
		assert.Equal(t, dir, got)
	})

	t.Run("falls back to the OS home dir", func(t *testing.T) {
		cfg := config.New()
		got, err := cfg.HomePath()
		require.NoError(t, err)
		home, err := os.UserHomeDir()
		require.NoError(t, err)
		assert.Equal(t, home, got)
	})
}

func TestThemes(t *testing.T) {
	t.Run("known theme", func(t *testing.T) {
		theme := config.GetTheme("sunset")
		assert.Equal(t, "208", theme["primary"])
	})

	t.Run("unknown theme falls back to default", func(t *testing.T) {
		theme := config.GetTheme("no-such-theme")
		assert.Equal(t, config.GetTheme("default"), theme)
	})

	t.Run("apply theme fills color fields", func(t *testing.T) {
		cfg := config.New()
		cfg.ApplyTheme("monochrome")
		assert.Equal(t, "monochrome", cfg.Theme.Name)
		assert.Equal(t, "245", cfg.Theme.Primary)
		assert.Equal(t, "232", cfg.Theme.Error)
	})

	t.Run("list themes", func(t *testing.T) {
		names := config.ListThemes()
		assert.Contains(t, names, "default")
		assert.Contains(t, names, "ocean")
	})
}
