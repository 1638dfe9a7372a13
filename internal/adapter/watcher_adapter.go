package adapter

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	m "wpreview.dev/pkg/wpreview/internal/model"
)

// WatcherAdapter abstracts recursive source-tree change notification so the
// orchestrator's watch loop can be tested with a fake event source.
type WatcherAdapter interface {
	// Events delivers the changed path for every relevant filesystem event.
	Events() <-chan m.Path

	// Errors delivers watcher failures.
	Errors() <-chan error

	// Close stops watching and closes both channels.
	Close() error
}

// FSNotifyWatcher watches a directory tree using fsnotify. fsnotify watches
// are not recursive, so every directory under the root is registered
// individually and directories created while watching are added on the fly.
type FSNotifyWatcher struct {
	watcher *fsnotify.Watcher
	events  chan m.Path
	errs    chan error
	skip    func(path string) bool
}

// NewFSNotifyWatcher watches root recursively. Paths for which skip returns
// true (and their subtrees, when directories) are ignored; this is how the
// scaffold subtree is kept out of the watch set.
func NewFSNotifyWatcher(root m.Path, skip func(path string) bool) (*FSNotifyWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create fsnotify watcher")
	}

	if skip == nil {
		skip = func(string) bool { return false }
	}

	w := &FSNotifyWatcher{
		watcher: watcher,
		events:  make(chan m.Path, 64),
		errs:    make(chan error, 1),
		skip:    skip,
	}

	if err := w.addTree(string(root)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	go w.loop()

	return w, nil
}

// Events delivers changed paths.
func (w *FSNotifyWatcher) Events() <-chan m.Path {
	return w.events
}

// Errors delivers watcher failures.
func (w *FSNotifyWatcher) Errors() <-chan error {
	return w.errs
}

// Close stops the watcher. The event loop closes the channels once the
// underlying fsnotify channels drain.
func (w *FSNotifyWatcher) Close() error {
	return w.watcher.Close()
}

// addTree registers root and every non-skipped directory below it.
func (w *FSNotifyWatcher) addTree(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			return nil
		}

		if w.skip(path) || isHiddenDir(root, path) {
			return filepath.SkipDir
		}

		return errors.Wrapf(w.watcher.Add(path), "watch %s", path)
	})
}

func (w *FSNotifyWatcher) loop() {
	defer close(w.events)
	defer close(w.errs)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if w.skip(event.Name) {
				continue
			}

			// New directories must join the watch set or changes inside
			// them would be missed.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addTree(event.Name)
				}
			}

			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				// Dropping when the buffer is full is fine: any delivered
				// event triggers a full rescan, so a burst collapses into
				// whatever fits.
				select {
				case w.events <- m.Path(event.Name):
				default:
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

// isHiddenDir reports whether path is a dot-directory below root (root itself
// is always watched, even when the project lives in a hidden directory).
func isHiddenDir(root, path string) bool {
	if path == root {
		return false
	}

	base := filepath.Base(path)

	return strings.HasPrefix(base, ".")
}
