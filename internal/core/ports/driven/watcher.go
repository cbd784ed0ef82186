package driven

import "context"

// LogWatcher signals when a file changes on disk.
type LogWatcher interface {
	// Watch emits on the returned channel after each write to path.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context, path string) (<-chan struct{}, error)
}
