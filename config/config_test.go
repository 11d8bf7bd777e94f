package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 400, cfg.Window.Width)
	assert.Equal(t, 500, cfg.Window.Height)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.True(t, cfg.IsNotifyOnHide())
}

func TestLoadOverridesAndFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, `
window:
  width: 480
  height: 0
logging:
  level: debug
tray:
  notify_on_hide: false
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 480, cfg.Window.Width)
	assert.Equal(t, 500, cfg.Window.Height)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.IsNotifyOnHide())
}

func TestLoadRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	badYAML := filepath.Join(dir, "bad.yaml")
	writeConfig(t, badYAML, "window: [unterminated")
	_, err := Load(badYAML)
	assert.ErrorContains(t, err, "failed to parse config file")

	badLevel := filepath.Join(dir, "level.yaml")
	writeConfig(t, badLevel, "logging:\n  level: chatty\n")
	_, err = Load(badLevel)
	assert.ErrorContains(t, err, "unknown logging level")
}

func TestLoadRejectsNonPositiveSizes(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative width", "window:\n  width: -400\n"},
		{"negative height", "window:\n  height: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			writeConfig(t, path, tt.content)

			_, err := Load(path)

			assert.ErrorContains(t, err, "window size must be positive")
		})
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "logging:\n  level: error\n")

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	defer w.Close()

	var reloads atomic.Int32
	var level atomic.Value
	w.OnReload(func(cfg *AppConfig) {
		level.Store(cfg.Logging.Level)
		reloads.Add(1)
	})

	// Make sure the new mtime is strictly later on coarse filesystems.
	time.Sleep(20 * time.Millisecond)
	future := time.Now().Add(2 * time.Second)
	writeConfig(t, path, "logging:\n  level: debug\n")
	require.NoError(t, os.Chtimes(path, future, future))

	require.Eventually(t, func() bool { return reloads.Load() >= 1 }, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, "debug", level.Load())
	assert.Equal(t, "debug", w.Config().Logging.Level)
}

func TestWatcherKeepsConfigOnInvalidReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "logging:\n  level: info\n")

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	defer w.Close()

	writeConfig(t, path, "logging:\n  level: chatty\n")
	assert.Error(t, w.reload())
	assert.Equal(t, "info", w.Config().Logging.Level)
}

func TestNewWatcherRequiresFile(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}
