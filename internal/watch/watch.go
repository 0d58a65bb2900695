// Package watch polls a directory tree and reruns a callback when the set of
// scanned files or their size/mtime changes. Filesystem notifications bring
// the next poll forward; polling alone is used where they are unavailable.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	baseInterval = 1 * time.Second
	maxInterval  = 60 * time.Second
)

type fileSnapshot struct {
	modTime time.Time
	size    int64
}

// Lister returns the root-relative paths to watch. *scan.Scanner satisfies it.
type Lister interface {
	Files(ctx context.Context, root string) ([]string, error)
}

// ChangeFunc is called after a change is detected.
type ChangeFunc func(ctx context.Context) error

// Watcher polls one root for file changes.
type Watcher struct {
	root     string
	lister   Lister
	onChange ChangeFunc

	snapshot map[string]fileSnapshot
	interval time.Duration
	nextPoll time.Time
	tick     time.Duration
}

// New creates a Watcher for root. onChange runs whenever a poll finds the
// tree different from the last successful run.
func New(root string, lister Lister, onChange ChangeFunc) *Watcher {
	return &Watcher{
		root:     root,
		lister:   lister,
		onChange: onChange,
		tick:     baseInterval,
	}
}

// Run blocks until ctx is cancelled. The first poll captures a baseline
// without calling onChange.
func (w *Watcher) Run(ctx context.Context) error {
	var (
		events <-chan fsnotify.Event
		errs   <-chan error
	)
	fw := w.startNotify()
	if fw != nil {
		defer fw.Close()
		events, errs = fw.Events, fw.Errors
	}

	w.poll(ctx)

	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addDirs(fw, ev.Name); err != nil {
						slog.Warn("watch.notify.add", "path", ev.Name, "err", err)
					}
				}
			}
			// poll on the next tick
			w.nextPoll = time.Time{}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			slog.Warn("watch.notify", "err", err)
		case <-ticker.C:
			if time.Now().Before(w.nextPoll) {
				continue
			}
			w.poll(ctx)
		}
	}
}

// startNotify watches root and its directories, or returns nil when the
// platform watcher cannot be set up.
func (w *Watcher) startNotify() *fsnotify.Watcher {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Debug("watch.notify.unavailable", "err", err)
		return nil
	}
	if err := addDirs(fw, w.root); err != nil {
		slog.Debug("watch.notify.unavailable", "root", w.root, "err", err)
		fw.Close()
		return nil
	}
	return fw
}

// addDirs adds dir and every directory below it, except .git, to fw.
func addDirs(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" && path != dir {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}

// poll captures a snapshot and compares it with the previous one.
func (w *Watcher) poll(ctx context.Context) {
	if _, err := os.Stat(w.root); err != nil {
		slog.Warn("watch.root_gone", "path", w.root)
		w.nextPoll = time.Now().Add(maxInterval)
		return
	}

	snap, err := w.capture(ctx)
	if err != nil {
		slog.Warn("watch.snapshot", "root", w.root, "err", err)
		w.nextPoll = time.Now().Add(w.interval)
		return
	}

	interval := pollInterval(len(snap))

	if w.snapshot == nil {
		slog.Debug("watch.baseline", "root", w.root, "files", len(snap))
		w.snapshot = snap
		w.interval = interval
		w.nextPoll = time.Now().Add(interval)
		return
	}

	if snapshotsEqual(w.snapshot, snap) {
		w.interval = interval
		w.nextPoll = time.Now().Add(interval)
		return
	}

	slog.Info("watch.changed", "root", w.root, "files", len(snap))
	if err := w.onChange(ctx); err != nil {
		slog.Warn("watch.rescan", "root", w.root, "err", err)
		// old snapshot kept so the next cycle retries
		w.nextPoll = time.Now().Add(interval)
		return
	}

	w.snapshot = snap
	w.interval = interval
	w.nextPoll = time.Now().Add(interval)
}

// capture records mtime and size for every listed file.
func (w *Watcher) capture(ctx context.Context) (map[string]fileSnapshot, error) {
	files, err := w.lister.Files(ctx, w.root)
	if err != nil {
		return nil, err
	}

	snap := make(map[string]fileSnapshot, len(files))
	for _, rel := range files {
		info, statErr := os.Stat(filepath.Join(w.root, filepath.FromSlash(rel)))
		if statErr != nil {
			continue
		}
		snap[rel] = fileSnapshot{
			modTime: info.ModTime(),
			size:    info.Size(),
		}
	}
	return snap, nil
}

// snapshotsEqual returns true if two snapshots have identical files with same mtime+size.
func snapshotsEqual(a, b map[string]fileSnapshot) bool {
	if len(a) != len(b) {
		return false
	}
	for path, aSnap := range a {
		bSnap, ok := b[path]
		if !ok {
			return false
		}
		if !aSnap.modTime.Equal(bSnap.modTime) || aSnap.size != bSnap.size {
			return false
		}
	}
	return true
}

// pollInterval computes the adaptive interval from file count.
// 1s base + 1s per 500 files, capped at 60s.
func pollInterval(fileCount int) time.Duration {
	d := baseInterval + time.Duration(fileCount/500)*time.Second
	if d > maxInterval {
		d = maxInterval
	}
	return d
}
