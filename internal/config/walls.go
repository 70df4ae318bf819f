package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/golang/glog"

	"snakegame/internal/game"
)

// WallSwitch is the live wall mode setting. It may be flipped at any time
// from any goroutine; the loop only reads it when a round starts.
type WallSwitch struct {
	mu   sync.Mutex
	mode game.WallMode
}

// NewWallSwitch returns a switch set to mode.
func NewWallSwitch(mode game.WallMode) *WallSwitch {
	return &WallSwitch{mode: mode}
}

func (w *WallSwitch) Mode() game.WallMode {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mode
}

func (w *WallSwitch) Set(mode game.WallMode) {
	w.mu.Lock()
	w.mode = mode
	w.mu.Unlock()
}

// Toggle flips between solid and wrap and returns the new mode.
func (w *WallSwitch) Toggle() game.WallMode {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.mode == game.Solid {
		w.mode = game.Wrap
	} else {
		w.mode = game.Solid
	}
	return w.mode
}

// Watch reloads the config file whenever it is written and copies its wall
// mode into sw when the file's walls value changes. Other settings are fixed
// for the life of the process. With pinned set, as for an explicit -walls
// flag, the file never overrides the switch. It blocks until ctx is done.
func Watch(ctx context.Context, path string, sw *WallSwitch, pinned bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %v", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch the directory.
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %v", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %v", path, err)
	}
	r := newReloader(abs, sw, pinned)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			r.reload()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			glog.Errorf("Config watcher: %v", err)
		}
	}
}

// reloader applies file edits to a WallSwitch. It remembers the walls value
// last seen in the file so that edits to other fields do not undo a toggle.
type reloader struct {
	path   string
	sw     *WallSwitch
	pinned bool
	last   string
}

// newReloader records the file's current walls value as the baseline.
func newReloader(path string, sw *WallSwitch, pinned bool) *reloader {
	r := &reloader{path: path, sw: sw, pinned: pinned}
	if data, err := os.ReadFile(path); err == nil {
		r.last, _ = fileWalls(data)
	}
	return r
}

// fileWalls returns the walls value set in data, or "" when the file has no
// walls key.
func fileWalls(data []byte) (string, error) {
	var file struct {
		Walls *string `json:"walls"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return "", err
	}
	if file.Walls == nil {
		return "", nil
	}
	return *file.Walls, nil
}

func (r *reloader) reload() {
	data, err := os.ReadFile(r.path)
	if err != nil {
		glog.Errorf("Config reload: %v", err)
		return
	}
	if len(data) == 0 {
		// Truncated but not yet written.
		glog.V(2).Infof("Config reload: %s is empty, waiting for write", r.path)
		return
	}
	cfg := Default()
	if err := decode(data, &cfg); err != nil {
		glog.Errorf("Config reload: parsing %s: %v", r.path, err)
		return
	}
	walls, err := fileWalls(data)
	if err != nil {
		glog.Errorf("Config reload: parsing %s: %v", r.path, err)
		return
	}
	if walls == "" {
		r.last = ""
		return
	}
	if walls == r.last {
		return
	}
	mode, err := game.ParseWallMode(walls)
	if err != nil {
		glog.Errorf("Config reload: %v", err)
		return
	}
	r.last = walls
	if r.pinned {
		glog.V(1).Infof("Config reload: walls=%v ignored, set by flag", mode)
		return
	}
	r.sw.Set(mode)
	glog.V(1).Infof("Config reloaded: walls=%v from next round", mode)
}
