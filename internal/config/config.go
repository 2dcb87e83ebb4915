package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Editor   EditorConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// EditorConfig holds document defaults.
type EditorConfig struct {
	DefaultPostType string
	DefaultStatus   string
	Autosave        bool
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DateFormat string
	ShowIcons  bool
}

// Load reads configuration from file and env. Env var overrides use prefix GUTENBERG_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "gutenberg", "gutenberg.db"))
	v.SetDefault("editor.default_post_type", "post")
	v.SetDefault("editor.default_status", "draft")
	v.SetDefault("editor.autosave", false)
	v.SetDefault("ui.date_format", "02/01 15:04")
	v.SetDefault("ui.show_icons", true)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("GUTENBERG_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "gutenberg"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("GUTENBERG")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used by the TUI settings surface.
func Save(cfg Config) error {
	path := os.Getenv("GUTENBERG_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "gutenberg", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("editor.default_post_type", cfg.Editor.DefaultPostType)
	v.Set("editor.default_status", cfg.Editor.DefaultStatus)
	v.Set("editor.autosave", cfg.Editor.Autosave)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.show_icons", cfg.UI.ShowIcons)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
