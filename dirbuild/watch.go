package dirbuild

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

var DefaultDebounce = 200 * time.Millisecond

// Watch calls fn each time a file in the directories holding the manifest,
// targets or patches changes, after DefaultDebounce of quiet. Changes under
// destDir are ignored. Watch blocks until ctx is done. Errors from fn are
// logged and do not stop the watch.
func (d *Dir) Watch(ctx context.Context, fn func(context.Context) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create watcher: %w", err)
	}
	defer w.Close()
	dirs, err := d.watchDirs()
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("could not watch %s: %w", dir, err)
		}
	}
	dest := ""
	if d.DestDir != "" {
		dest, _ = filepath.Abs(d.destDir())
	}
	d.Log.Info("watching", "dirs", len(dirs), "debounce", DefaultDebounce)

	fire := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return fmt.Errorf("watcher events closed")
			}
			if ev.Op == fsnotify.Chmod || d.ignore(dest, ev.Name) {
				continue
			}
			d.Log.Debug("change", "file", ev.Name, "op", ev.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(DefaultDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case err, ok := <-w.Errors:
			if !ok {
				return fmt.Errorf("watcher errors closed")
			}
			d.Log.Error("watch error", "error", err)
		case <-fire:
			if err := fn(ctx); err != nil {
				d.Log.Error("rebuild failed", "error", err)
			}
		}
	}
}

func (d *Dir) ignore(dest, name string) bool {
	if strings.HasPrefix(filepath.Base(name), ".") {
		return true
	}
	if dest == "" {
		return false
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return abs == dest || strings.HasPrefix(abs, dest+string(filepath.Separator))
}

func (d *Dir) watchDirs() ([]string, error) {
	seen := map[string]bool{}
	var res []string
	add := func(p string) error {
		abs, err := filepath.Abs(filepath.Dir(d.path(p)))
		if err != nil {
			return err
		}
		if !seen[abs] {
			seen[abs] = true
			res = append(res, abs)
		}
		return nil
	}
	if err := add(filepath.Base(d.manifest)); err != nil {
		return nil, err
	}
	for i := range d.Targets {
		t := &d.Targets[i]
		f, err := d.expand(t.File)
		if err != nil {
			return nil, err
		}
		if err := add(f); err != nil {
			return nil, err
		}
		for _, p := range t.Patches {
			f, err := d.expand(p.File)
			if err != nil {
				return nil, err
			}
			if err := add(f); err != nil {
				return nil, err
			}
		}
	}
	return res, nil
}
