package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 250 * time.Millisecond

// ErrNoConfigFile is returned by Watch when settings came from the embedded
// default and there is no file to follow.
var ErrNoConfigFile = errors.New("config: no settings file to watch")

// Holder owns the live GameConfig for a running process. Readers call Get;
// Reload and Watch replace the value under a write lock, so a GameConfig
// obtained from Get is never mutated afterwards.
type Holder struct {
	mu      sync.RWMutex
	current GameConfig
	loader  *Loader
	logger  *log.Logger

	debounce time.Duration

	listenMu  sync.Mutex
	listeners []chan<- GameConfig
}

// NewHolder creates a holder seeded with initial.
func NewHolder(initial GameConfig, loader *Loader, logger *log.Logger) *Holder {
	if logger == nil {
		logger = log.Default()
	}
	return &Holder{
		current:  initial,
		loader:   loader,
		logger:   logger,
		debounce: defaultDebounce,
	}
}

// Get returns the current configuration.
func (h *Holder) Get() GameConfig {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Replace swaps in cfg, logs what changed and notifies subscribers.
func (h *Holder) Replace(cfg GameConfig) {
	h.mu.Lock()
	old := h.current
	h.current = cfg
	h.mu.Unlock()

	changes := Diff(old, cfg)
	for _, c := range changes {
		h.logger.Info("config changed", "key", c.Key, "old", c.Old, "new", c.New)
	}
	if len(changes) > 0 {
		h.notify(cfg)
	}
}

// Reload re-reads the settings file. On failure the previous configuration
// stays in place and the error is returned.
func (h *Holder) Reload() error {
	cfg, err := h.loader.Load()
	if err != nil {
		h.logger.Error("config reload failed", "error", err)
		return fmt.Errorf("reload config: %w", err)
	}
	if verr := Validate(cfg); verr != nil {
		h.logger.Warn("reloaded config has questionable values", "error", verr)
	}
	h.Replace(cfg)
	return nil
}

// Subscribe registers ch to receive every changed configuration. Sends are
// non-blocking; a full channel misses that update.
func (h *Holder) Subscribe(ch chan<- GameConfig) {
	h.listenMu.Lock()
	defer h.listenMu.Unlock()
	h.listeners = append(h.listeners, ch)
}

func (h *Holder) notify(cfg GameConfig) {
	h.listenMu.Lock()
	defer h.listenMu.Unlock()
	for _, ch := range h.listeners {
		select {
		case ch <- cfg:
		default:
			h.logger.Warn("config listener full, skipping update")
		}
	}
}

// Watch reloads whenever the settings file changes, until ctx is done.
// The parent directory is watched rather than the file so that editors and
// Save, which replace the file by rename, keep triggering reloads.
func (h *Holder) Watch(ctx context.Context) error {
	path := h.loader.Source()
	if path == "" {
		return ErrNoConfigFile
	}
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	h.logger.Info("watching config file", "path", path)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("config watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			h.logger.Debug("config file changed", "op", event.Op.String())

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(h.debounce, func() {
				_ = h.Reload()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			h.logger.Error("config watcher error", "error", err)
		}
	}
}
