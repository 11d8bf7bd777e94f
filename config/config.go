package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"closechat/internal/logging"
	"closechat/internal/window"
)

// AppConfig holds the user settings read at startup.
type AppConfig struct {
	Window  WindowConfig  `yaml:"window"`
	Logging LoggingConfig `yaml:"logging"`
	Tray    TrayConfig    `yaml:"tray"`
}

// WindowConfig is the logical size of the chat window.
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

type TrayConfig struct {
	NotifyOnHide *bool `yaml:"notify_on_hide"` // nil = true
}

// IsNotifyOnHide returns whether hiding to the tray shows a notice (default true).
func (c *AppConfig) IsNotifyOnHide() bool {
	return c.Tray.NotifyOnHide == nil || *c.Tray.NotifyOnHide
}

var (
	appDataDir     string
	appDataDirOnce sync.Once
)

// Default returns config with default values.
func Default() *AppConfig {
	return &AppConfig{
		Window: WindowConfig{
			Width:  window.DefaultWidth,
			Height: window.DefaultHeight,
		},
		Logging: LoggingConfig{Level: "error"},
	}
}

// AppDataDir returns the path to ~/.closechat/, creating it if needed.
func AppDataDir() string {
	appDataDirOnce.Do(func() {
		home, err := os.UserHomeDir()
		if err != nil {
			// Fallback to exe directory
			if exe, err2 := os.Executable(); err2 == nil {
				appDataDir = filepath.Dir(exe)
			} else {
				appDataDir = "."
			}
			return
		}
		appDataDir = filepath.Join(home, ".closechat")
		os.MkdirAll(appDataDir, 0755)
	})
	return appDataDir
}

// DataPath returns the full path for a file inside the data directory.
func DataPath(elem ...string) string {
	parts := append([]string{AppDataDir()}, elem...)
	return filepath.Join(parts...)
}

// DefaultPath is the config file location.
func DefaultPath() string {
	return DataPath("config.yaml")
}

// Load reads config from path. A missing file yields the defaults.
func Load(path string) (*AppConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setDefaults fills sizes left at zero; negative ones are rejected by validate.
func (c *AppConfig) setDefaults() {
	if c.Window.Width == 0 {
		c.Window.Width = window.DefaultWidth
	}
	if c.Window.Height == 0 {
		c.Window.Height = window.DefaultHeight
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "error"
	}
}

func (c *AppConfig) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("unknown logging level %q", c.Logging.Level)
	}
	return nil
}
