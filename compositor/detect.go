package compositor

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ignis-sh/ignis/errors"
	"github.com/ignis-sh/ignis/logging"
)

// WaitAvailable blocks until the backend's command socket exists or the
// context is cancelled. It watches the nearest existing ancestor of the
// socket path with fsnotify, falling back to a coarse poll, so a shell
// started before the compositor picks it up the moment the socket appears.
func WaitAvailable(ctx context.Context, backend Backend) error {
	if backend.Available() {
		return nil
	}

	socket := backend.Socket()
	if socket == "" {
		return errors.IPCUnavailable(backend.Name(), socket)
	}

	log := logging.NewLogger("compositor").WithField("backend", backend.Name())

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create socket watcher")
	}
	defer watcher.Close()

	watched := watchableAncestor(socket)
	if err := watcher.Add(watched); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to watch socket directory").
			WithDetail("dir", watched)
	}
	log.WithField("dir", watched).Debug("waiting for compositor socket")

	// The watched ancestor can be several levels above the socket (the
	// compositor creates its runtime directory on startup). Re-anchor the
	// watch as directories appear; the ticker covers events fsnotify
	// misses during re-anchoring.
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		if backend.Available() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case _, ok := <-watcher.Events:
			if !ok {
				return errors.New(errors.ErrCodeInternal, "socket watcher closed")
			}
		case err, ok := <-watcher.Errors:
			if ok && err != nil {
				log.WithError(err).Debug("socket watcher error")
			}
		}

		if deeper := watchableAncestor(socket); deeper != watched {
			_ = watcher.Remove(watched)
			if err := watcher.Add(deeper); err == nil {
				watched = deeper
			}
		}
	}
}

// watchableAncestor returns the closest existing ancestor directory of the
// given path.
func watchableAncestor(path string) string {
	dir := filepath.Dir(path)
	for dir != "/" && dir != "." {
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
		dir = filepath.Dir(dir)
	}
	return "/"
}
