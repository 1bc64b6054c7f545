package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Settings is the runtime-changeable part of the configuration, stored as a
// YAML file next to the deployment
type Settings struct {
	Canvas    CanvasDefaults  `yaml:"canvas"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	Version   string          `yaml:"version"`
}

// SettingsWatcher watches the settings file and hot-reloads it on change. An
// invalid file keeps the last good settings in place.
type SettingsWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	current  *Settings
	mu       sync.RWMutex
	onChange []func(*Settings)
	logger   *zap.Logger
	stopCh   chan struct{}
}

// NewSettingsWatcher loads the settings file and starts tracking it
func NewSettingsWatcher(path string, logger *zap.Logger) (*SettingsWatcher, error) {
	settings, err := loadSettingsFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial settings: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch settings file: %w", err)
	}

	// Watch the directory too, so atomic saves (write temp then rename)
	// still produce events for the target path.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		logger.Warn("failed to watch settings directory", zap.Error(err))
	}

	return &SettingsWatcher{
		path:    path,
		watcher: watcher,
		current: settings,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}, nil
}

// Start begins watching for settings changes
func (w *SettingsWatcher) Start() {
	go w.watchLoop()
	w.logger.Info("settings watcher started", zap.String("path", w.path))
}

// Stop stops watching for settings changes
func (w *SettingsWatcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
	w.logger.Info("settings watcher stopped")
}

// OnChange registers a callback invoked after every successful reload
func (w *SettingsWatcher) OnChange(handler func(*Settings)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, handler)
}

// Current returns the active settings
func (w *SettingsWatcher) Current() *Settings {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

func (w *SettingsWatcher) watchLoop() {
	// Editors and atomic saves fire several events per save; debounce them
	// into a single reload.
	var debounce *time.Timer
	const debounceDuration = 100 * time.Millisecond

	for {
		select {
		case <-w.stopCh:
			if debounce != nil {
				debounce.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(debounceDuration, w.reload)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("settings watcher error", zap.Error(err))
		}
	}
}

func (w *SettingsWatcher) reload() {
	w.logger.Info("settings file changed, reloading", zap.String("path", w.path))

	settings, err := loadSettingsFile(w.path)
	if err != nil {
		w.logger.Error("failed to reload settings, keeping current", zap.Error(err))
		return
	}

	w.mu.Lock()
	w.current = settings
	handlers := append([]func(*Settings){}, w.onChange...)
	w.mu.Unlock()

	for _, handler := range handlers {
		go handler(settings)
	}

	w.logger.Info("settings reloaded", zap.String("version", settings.Version))
}

// loadSettingsFile reads, parses and validates a settings file
func loadSettingsFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML: %w", err)
	}

	if err := validator.New().Struct(&settings); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return &settings, nil
}
