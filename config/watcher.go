package config

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 500 * time.Millisecond

// Watcher reloads the config file when it changes on disk.
type Watcher struct {
	path          string
	config        *AppConfig
	mutex         sync.RWMutex
	watcher       *fsnotify.Watcher
	logger        *slog.Logger
	callbacks     []func(*AppConfig)
	lastModTime   time.Time
	debounceTimer *time.Timer
	done          chan struct{}
}

// NewWatcher loads path and starts watching it. The file must exist.
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial config: %w", err)
	}

	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		path:        path,
		config:      cfg,
		watcher:     fw,
		logger:      logger,
		lastModTime: fileInfo.ModTime(),
		done:        make(chan struct{}),
	}

	if err := fw.Add(path); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch config file: %w", err)
	}

	go w.watchLoop()
	return w, nil
}

// Config returns the current configuration.
func (w *Watcher) Config() *AppConfig {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.config
}

// OnReload registers fn to run after each successful reload.
func (w *Watcher) OnReload(fn func(*AppConfig)) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.callbacks = append(w.callbacks, fn)
}

func (w *Watcher) watchLoop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				fileInfo, err := os.Stat(w.path)
				if err != nil {
					w.logger.Warn("stat config file failed", "error", err)
					continue
				}
				if !fileInfo.ModTime().After(w.lastModTime) {
					continue
				}
				w.lastModTime = fileInfo.ModTime()
				w.scheduleReload()
			}

			// Some editors save by rename; re-add the path once it reappears.
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				time.Sleep(100 * time.Millisecond)
				if _, err := os.Stat(w.path); err == nil {
					w.watcher.Add(w.path)
					w.logger.Info("re-watching config file", "path", w.path)
					w.scheduleReload()
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(reloadDebounce, func() {
		if err := w.reload(); err != nil {
			w.logger.Error("config reload failed", "path", w.path, "error", err)
			return
		}
		w.logger.Info("config reloaded", "path", w.path)
	})
}

func (w *Watcher) reload() error {
	cfg, err := Load(w.path)
	if err != nil {
		return err
	}

	w.mutex.Lock()
	old := w.config
	w.config = cfg
	callbacks := make([]func(*AppConfig), len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mutex.Unlock()

	if old.Logging.Level != cfg.Logging.Level {
		w.logger.Info("logging level changed", "old", old.Logging.Level, "new", cfg.Logging.Level)
	}
	if old.Window != cfg.Window {
		w.logger.Info("window size changed, applies on next launch",
			"old_width", old.Window.Width, "old_height", old.Window.Height,
			"new_width", cfg.Window.Width, "new_height", cfg.Window.Height)
	}

	for _, fn := range callbacks {
		fn(cfg)
	}
	return nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.mutex.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.mutex.Unlock()
	err := w.watcher.Close()
	<-w.done
	return err
}
