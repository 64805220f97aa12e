package editline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch keeps the history in sync with the file at path until ctx is done.
//
// Whenever another process writes or replaces the file, the entries are
// reloaded from it, so several programs sharing one history file see each
// other's lines. The parent directory is watched rather than the file so
// that editors and Save-style truncate-and-rewrite both trigger a reload.
//
// Watch blocks; run it in its own goroutine. It returns nil when ctx is
// cancelled.
//
// Example:
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	go func() {
//		if err := history.Watch(ctx, path); err != nil {
//			log.Println(err)
//		}
//	}()
func (h *History) Watch(ctx context.Context, path string) error {
	path, err := expandHistoryPath(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create history watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch history directory: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			fresh := NewHistory(h.MaxLen())
			if err := fresh.Load(path); err != nil {
				return err
			}
			h.replace(fresh)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("history watcher failed: %w", err)
		}
	}
}
