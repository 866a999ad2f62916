package config

import (
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the user config file when it changes on disk, so a
// long-lived TUI session picks up edits without a restart.
type Watcher struct {
	mu      sync.RWMutex
	current *Config

	onChange func(*Config)
	watcher  *fsnotify.Watcher
	done     chan struct{}
}

// Watch starts watching the user config file. The callback runs on every
// successful reload; load errors are logged and the previous config stays
// current. If the filesystem watcher cannot start, the initial config is
// still served and reloads are simply unavailable.
func Watch(initial *Config, onChange func(*Config)) (*Watcher, error) {
	w := &Watcher{
		current:  initial,
		onChange: onChange,
		done:     make(chan struct{}),
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return w, nil
	}
	w.watcher = fsw

	// Watch the directory, not the file: editors replace the file on
	// save, which would drop a file-level watch.
	configDir := filepath.Dir(GetUserConfigPath())
	if err := fsw.Add(configDir); err != nil {
		fsw.Close()
		w.watcher = nil
		return w, nil
	}

	go w.watchConfig()

	return w, nil
}

// Current returns the most recently loaded config.
func (w *Watcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

func (w *Watcher) watchConfig() {
	configPath := GetUserConfigPath()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Name != configPath {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			cfg, err := Load()
			if err != nil {
				log.Printf("[config] reload failed: %v", err)
				continue
			}
			w.mu.Lock()
			w.current = cfg
			w.mu.Unlock()
			if w.onChange != nil {
				w.onChange(cfg)
			}
		case <-w.watcher.Errors:
			// Ignore errors, keep watching
		}
	}
}

// Close shuts down the watcher.
func (w *Watcher) Close() {
	close(w.done)
	if w.watcher != nil {
		w.watcher.Close()
	}
}
