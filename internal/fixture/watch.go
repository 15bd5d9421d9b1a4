package fixture

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads path into store whenever the file is written or replaced,
// until ctx is cancelled. Parse errors keep the previous data.
func Watch(ctx context.Context, path string, store *Store, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file instead of writing it.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			data, err := LoadFile(path)
			if err != nil {
				logger.Warn("fixture reload failed", zap.String("path", path), zap.Error(err))
				continue
			}
			store.Replace(data)
			logger.Info("fixtures reloaded",
				zap.String("path", path),
				zap.Int("users", len(data.Users)),
				zap.Int("posts", len(data.Posts)))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("fixture watcher error", zap.Error(err))
		}
	}
}
