package orchestrator

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-acfgen/pkg/declaration"
)

// DefaultDebounce groups bursts of file events into one export.
const DefaultDebounce = 250 * time.Millisecond

// WatchFunc receives the outcome of every export run by Watch.
type WatchFunc func(Result, error)

// Watch exports once, then re-exports whenever a declaration file under dir
// changes, until ctx is cancelled. req.Declarations is replaced by dir.
func (o *Orchestrator) Watch(ctx context.Context, dir string, req Request, debounce time.Duration, fn WatchFunc) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if fn == nil {
		fn = func(Result, error) {}
	}
	req.Declarations = os.DirFS(dir)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("orchestrator: watcher: %w", err)
	}
	defer watcher.Close()

	if err := addTree(watcher, dir); err != nil {
		return err
	}

	fn(o.Export(ctx, req))

	var (
		timer   *time.Timer
		trigger <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) && o.watchCreatedDir(watcher, ev.Name) {
				continue
			}
			if !o.relevant(dir, ev, req.Patterns) {
				continue
			}
			o.logger.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("declaration changed")
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			trigger = timer.C

		case <-trigger:
			trigger = nil
			fn(o.Export(ctx, req))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			o.logger.Error().Err(err).Msg("watch error")
		}
	}
}

func (o *Orchestrator) relevant(dir string, ev fsnotify.Event, patterns []string) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	rel, err := filepath.Rel(dir, ev.Name)
	if err != nil {
		return false
	}
	return declaration.IsDeclarationFile(filepath.ToSlash(rel), patterns...)
}

// watchCreatedDir adds a newly created directory tree to the watcher and
// reports whether path was a directory.
func (o *Orchestrator) watchCreatedDir(watcher *fsnotify.Watcher, path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	if err := addTree(watcher, path); err != nil {
		o.logger.Warn().Err(err).Str("dir", path).Msg("watch directory")
	}
	return true
}

func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("orchestrator: watch %s: %w", path, err)
		}
		return nil
	})
}
