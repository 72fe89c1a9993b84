// Package config loads navedit settings.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/navedit/config.yaml ($NAVEDIT_CONFIG_DIR overrides)
//   - Cache:   ~/.cache/navedit/ (scratch files handed to djvused)
//   - State:   ~/.local/state/navedit/ (log file)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const appName = "navedit"

// UIConfig holds terminal UI preferences.
type UIConfig struct {
	Glyphs string `yaml:"glyphs,omitempty"` // unicode, ascii
	Theme  string `yaml:"theme,omitempty"`  // auto, dark, light
}

// LoggingConfig selects the file log. Level is one of none, normal, debug.
type LoggingConfig struct {
	Level       string `yaml:"level,omitempty"`
	Destination string `yaml:"destination,omitempty"`
}

type Config struct {
	Editor     string        `yaml:"editor,omitempty"`
	Djvused    string        `yaml:"djvused,omitempty"`
	ScratchDir string        `yaml:"scratch_dir,omitempty"`
	Watch      bool          `yaml:"watch"`
	UI         UIConfig      `yaml:"ui,omitempty"`
	Logging    LoggingConfig `yaml:"logging,omitempty"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		Djvused:    "djvused",
		ScratchDir: CacheDir(),
		Watch:      true,
		UI: UIConfig{
			Glyphs: "unicode",
			Theme:  "auto",
		},
		Logging: LoggingConfig{
			Level:       "none",
			Destination: filepath.Join(StateDir(), appName+".log"),
		},
	}
}

// Dir returns the config directory.
func Dir() string {
	if dir := strings.TrimSpace(os.Getenv("NAVEDIT_CONFIG_DIR")); dir != "" {
		return dir
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// CacheDir returns the XDG cache directory for navedit.
func CacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".cache", appName)
}

// StateDir returns the XDG state directory for navedit.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".local", "state", appName)
}

// Path returns the full path to config.yaml.
func Path() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from Dir. Returns Default if the file doesn't
// exist.
func Load() (Config, error) {
	path := Path()
	if path == "" {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path. Returns Default if the file
// doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	cfg.ScratchDir = expandHome(cfg.ScratchDir)
	cfg.Logging.Destination = expandHome(cfg.Logging.Destination)
	return cfg, nil
}

// Normalize lowercases and trims the enumerated settings so that consumers
// can match them exactly.
func (c *Config) Normalize() {
	c.UI.Glyphs = strings.ToLower(strings.TrimSpace(c.UI.Glyphs))
	c.UI.Theme = strings.ToLower(strings.TrimSpace(c.UI.Theme))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
}

// Validate checks the enumerated settings. Run Normalize first; values are
// compared exactly.
func (c Config) Validate() error {
	if !oneOf(c.UI.Glyphs, "", "unicode", "ascii") {
		return fmt.Errorf("ui.glyphs: unknown value %q (want unicode or ascii)", c.UI.Glyphs)
	}
	if !oneOf(c.UI.Theme, "", "auto", "dark", "light") {
		return fmt.Errorf("ui.theme: unknown value %q (want auto, dark or light)", c.UI.Theme)
	}
	if !oneOf(c.Logging.Level, "", "none", "normal", "debug") {
		return fmt.Errorf("logging.level: unknown value %q (want none, normal or debug)", c.Logging.Level)
	}
	return nil
}

// SaveTo writes cfg as YAML, creating the directory as needed.
func SaveTo(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
