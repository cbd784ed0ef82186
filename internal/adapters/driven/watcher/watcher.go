// Package watcher implements driven.LogWatcher with fsnotify.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/moviematch/internal/core/ports/driven"
	"github.com/custodia-labs/moviematch/internal/logger"
)

// Ensure FileWatcher implements the interface.
var _ driven.LogWatcher = (*FileWatcher)(nil)

// FileWatcher reports changes to a single file.
//
// The parent directory is watched rather than the file, because the CSV
// log is replaced by rename on every write. Events for companion files
// sharing the name as a prefix (feedback.db-wal) also count.
type FileWatcher struct{}

// New creates a file watcher.
func New() *FileWatcher {
	return &FileWatcher{}
}

// Watch emits after each create, write or rename touching path. Bursts of
// events are coalesced; at most one notification is pending at a time.
func (w *FileWatcher) Watch(ctx context.Context, path string) (<-chan struct{}, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer fw.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if !matches(abs, ev) {
					continue
				}
				logger.Debug("Watcher: %s %s", ev.Op, ev.Name)
				select {
				case out <- struct{}{}:
				default:
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				logger.Warn("Watcher error: %v", err)
			}
		}
	}()

	return out, nil
}

// matches reports whether ev changes the file at abs.
func matches(abs string, ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return strings.HasPrefix(name, abs)
}
