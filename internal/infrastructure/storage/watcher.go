package storage

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/yourusername/ferdie-assistant/pkg/logger"
)

// DefaultReloadDebounce editors emit several events per save
const DefaultReloadDebounce = 300 * time.Millisecond

// Watch reloads the store whenever one of its files changes, until ctx is done.
// Directories are watched rather than files so atomic renames are seen.
func (s *CatalogStore) Watch(ctx context.Context, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = DefaultReloadDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	targets := map[string]struct{}{}
	dirs := map[string]struct{}{}
	for _, p := range []string{s.paths.Prompt, s.paths.Catalog, s.paths.Knowledge} {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			logger.Warn("⚠️ cannot watch directory", "dir", dir, "error", err)
		}
	}
	logger.Info("👀 watching files for reload", "files", len(targets))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			if _, hit := targets[name]; !hit {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			logger.Debug("file changed", "file", name, "op", ev.Op.String())
			pending = time.After(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		case <-pending:
			pending = nil
			if err := s.Reload(); err != nil {
				logger.Warn("⚠️ reload finished with errors", "error", err)
			}
		}
	}
}
