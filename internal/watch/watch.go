package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/aryannaik/clusterview/internal/loader"
	"github.com/aryannaik/clusterview/internal/state"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher reloads the cluster database when clusters.json changes on disk.
// The parent directory is watched so that files replaced by rename are
// picked up.
type Watcher struct {
	src      *loader.FileSource
	store    *state.Store
	debounce time.Duration
}

func New(src *loader.FileSource, store *state.Store) *Watcher {
	return &Watcher{
		src:      src,
		store:    store,
		debounce: defaultDebounce,
	}
}

// Run watches until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.src.Path())
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	log.Info("Watching cluster database", "path", w.src.Path())

	target := filepath.Clean(w.src.Path())

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			log.Debug("Cluster database changed", "op", event.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn("Watcher error", "err", err)

		case <-timer.C:
			loader.LoadInto(ctx, w.src, w.store)
		}
	}
}
