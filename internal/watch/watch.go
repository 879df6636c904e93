// Package watch rebuilds on file system changes.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher calls OnChange once per burst of changes under its directories.
type Watcher struct {
	Dirs     []string
	Debounce time.Duration
	OnChange func(paths []string)
	Log      zerolog.Logger
}

// Run watches until ctx is done. Directories that do not exist are skipped;
// it is an error if none of them can be watched.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	watched := 0
	for _, root := range w.Dirs {
		if _, statErr := os.Stat(root); os.IsNotExist(statErr) {
			w.Log.Debug().Str("dir", root).Msg("Directory not found, not watching")
			continue
		}
		w.Log.Debug().Str("dir", root).Msg("Setting up watch")
		watched += w.addTree(fw, root)
	}
	if watched == 0 {
		return errors.New("no directories to watch")
	}

	var (
		mu      sync.Mutex
		timer   *time.Timer
		pending []string
	)
	fire := func() {
		mu.Lock()
		paths := pending
		pending = nil
		mu.Unlock()
		if ctx.Err() == nil {
			w.OnChange(paths)
		}
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.Log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("Change detected")

			// Subdirectories created after start are not covered by the
			// existing watches.
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				w.addTree(fw, event.Name)
			}

			mu.Lock()
			pending = append(pending, event.Name)
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.Debounce, fire)
			mu.Unlock()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.Log.Warn().Err(err).Msg("Watcher error")
		}
	}
}

func (w *Watcher) addTree(fw *fsnotify.Watcher, root string) int {
	added := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.Log.Warn().Err(err).Str("path", path).Msg("Error walking directory")
			return nil
		}
		if d.IsDir() {
			if watchErr := fw.Add(path); watchErr != nil {
				w.Log.Warn().Err(watchErr).Str("path", path).Msg("Failed to watch directory")
				return nil
			}
			added++
		}
		return nil
	})
	if err != nil {
		w.Log.Warn().Err(err).Str("dir", root).Msg("Error during directory walk")
	}
	return added
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
