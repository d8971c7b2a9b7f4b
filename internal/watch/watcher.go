// Package watch reloads the export configuration when its file changes.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sch1zk/docsexport/internal/config"
	"github.com/sch1zk/docsexport/internal/foundation/errors"
	"github.com/sch1zk/docsexport/internal/logfields"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 500 * time.Millisecond

// ChangeFunc receives each successfully reloaded configuration that differs
// from the previous one.
type ChangeFunc func(ctx context.Context, cfg *config.Config)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a reload.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// Watcher monitors a configuration file and reloads it on change.
type Watcher struct {
	configPath string
	onChange   ChangeFunc
	debounce   time.Duration
	watcher    *fsnotify.Watcher

	mu       sync.RWMutex
	current  *config.Config
	snapshot string

	stopOnce sync.Once
	stopChan chan struct{}
	reload   chan struct{}
	wg       sync.WaitGroup
}

// New creates a watcher for configPath. initial is the configuration already
// in use; it may be nil.
func New(configPath string, initial *config.Config, onChange ChangeFunc, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve config path").
			WithContext("path", configPath).
			Build()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to create file watcher").Build()
	}

	w := &Watcher{
		configPath: absPath,
		onChange:   onChange,
		debounce:   DefaultDebounce,
		watcher:    fw,
		current:    initial,
		stopChan:   make(chan struct{}),
		reload:     make(chan struct{}, 1),
	}
	if initial != nil {
		w.snapshot = initial.Snapshot()
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start begins watching. The watcher runs until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	// The directory is watched because editors often replace the file on save.
	dir := filepath.Dir(w.configPath)
	if err := w.watcher.Add(dir); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to watch config directory").
			WithContext("path", dir).
			Build()
	}

	slog.Info("Watching configuration", logfields.File(w.configPath))
	w.wg.Add(2)
	go w.watchLoop(ctx)
	go w.reloadLoop(ctx)
	return nil
}

// Stop ends watching and waits for the loops to exit. It is safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopChan)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

// Current returns the configuration in effect.
func (w *Watcher) Current() *config.Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer w.wg.Done()
	name := filepath.Base(w.configPath)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create), event.Has(fsnotify.Rename):
				slog.Debug("Config file change detected", logfields.File(event.Name), slog.String("op", event.Op.String()))
				w.trigger()
			case event.Has(fsnotify.Remove):
				slog.Warn("Config file removed; keeping current configuration", logfields.File(event.Name))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Config watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) trigger() {
	select {
	case w.reload <- struct{}{}:
	default:
	}
}

func (w *Watcher) reloadLoop(ctx context.Context) {
	defer w.wg.Done()
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case <-w.reload:
			timer.Reset(w.debounce)
		case <-timer.C:
			w.performReload(ctx)
		}
	}
}

// performReload loads the file and hands a changed configuration to onChange.
// An invalid file leaves the current configuration in place.
func (w *Watcher) performReload(ctx context.Context) {
	cfg, err := config.Load(w.configPath)
	if err != nil {
		slog.Error("Failed to reload configuration; keeping previous", logfields.File(w.configPath), logfields.Error(err))
		return
	}

	snap := cfg.Snapshot()
	w.mu.Lock()
	if snap == w.snapshot {
		w.mu.Unlock()
		slog.Debug("Configuration unchanged", logfields.File(w.configPath))
		return
	}
	w.current = cfg
	w.snapshot = snap
	w.mu.Unlock()

	slog.Info("Configuration reloaded",
		logfields.File(w.configPath),
		logfields.OutputMode(string(cfg.Build.Output)),
		logfields.Search(config.BoolValue(cfg.Docs.Search, false)))
	if w.onChange != nil {
		w.onChange(ctx, cfg)
	}
}
