package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/reoring/yamlschema/internal/ui"
)

// debounce collapses the burst of events an editor save produces into one
// rebuild.
const debounce = 200 * time.Millisecond

// watch runs build once and again after every change to one of files, until
// ctx is done. A failed build is reported and watching goes on.
func watch(ctx context.Context, files []string, build func() error, ui ui.UI) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer w.Close()

	// Directories are watched instead of the files so that editors which
	// replace the file on save keep triggering events.
	targets := map[string]bool{}
	dirs := map[string]bool{}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("watching %s: %w", f, err)
		}
		targets[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	rebuild := func() {
		if err := build(); err != nil {
			ui.Warnf("yamlschema: Error: %s\n", err)
		}
	}
	rebuild()
	ui.Debugf("watching %d file(s)\n", len(targets))

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			abs, _ := filepath.Abs(ev.Name)
			if !targets[abs] {
				continue
			}
			ui.Debugf("changed: %s\n", abs)
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			fire = timer.C
		case <-fire:
			fire = nil
			rebuild()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			ui.Warnf("watch: %s\n", err)
		}
	}
}
