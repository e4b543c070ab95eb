package api

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pixelpad/pixelpad/internal/service"
)

// PaletteWatcher watches the workspace palettes directory and imports any
// swatch file dropped into it into the active document. The resulting
// store events reach the browser through the WebSocket hub, so dragging a
// .gpl file into .pixelpad/palettes/ updates an open editor immediately.
type PaletteWatcher struct {
	watcher     *fsnotify.Watcher
	palettesDir string
	palettes    *service.PaletteService
	debounce    map[string]*time.Timer
	debounceMu  sync.Mutex
	mu          sync.RWMutex
	stopCh      chan struct{}
	stopped     bool // Once stopped, cannot restart
	running     bool
}

// NewPaletteWatcher creates a watcher over the given palettes directory.
func NewPaletteWatcher(palettesDir string, palettes *service.PaletteService) (*PaletteWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &PaletteWatcher{
		watcher:     watcher,
		palettesDir: palettesDir,
		palettes:    palettes,
		debounce:    make(map[string]*time.Timer),
		stopCh:      make(chan struct{}),
	}, nil
}

// Start begins watching the palettes directory for swatch files.
func (pw *PaletteWatcher) Start() error {
	pw.mu.Lock()
	if pw.running {
		pw.mu.Unlock()
		return nil
	}
	if pw.stopped {
		pw.mu.Unlock()
		return fmt.Errorf("palette watcher cannot be restarted after stop")
	}
	// Mark running only once the directory watch is in place, so a failed
	// Start can be retried.
	if err := pw.watcher.Add(pw.palettesDir); err != nil {
		pw.mu.Unlock()
		return err
	}
	pw.running = true
	pw.mu.Unlock()

	go pw.run()
	return nil
}

// Stop stops watching for changes.
func (pw *PaletteWatcher) Stop() error {
	pw.mu.Lock()
	if pw.stopped {
		pw.mu.Unlock()
		return nil
	}
	pw.running = false
	pw.stopped = true
	pw.mu.Unlock()

	// Cancel pending debounce timers so they don't fire after stop
	pw.debounceMu.Lock()
	for path, timer := range pw.debounce {
		timer.Stop()
		delete(pw.debounce, path)
	}
	pw.debounceMu.Unlock()

	close(pw.stopCh)
	return pw.watcher.Close()
}

func (pw *PaletteWatcher) run() {
	for {
		select {
		case event, ok := <-pw.watcher.Events:
			if !ok {
				return
			}
			pw.handleEvent(event)

		case err, ok := <-pw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Palette watcher error: %v", err)

		case <-pw.stopCh:
			return
		}
	}
}

func (pw *PaletteWatcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}
	if !IsSwatchFile(event.Name) {
		return
	}

	// Debounce: editors and file managers write in bursts, and a half
	// written swatch file would import as truncated
	pw.debounceMu.Lock()
	if timer, exists := pw.debounce[event.Name]; exists {
		timer.Stop()
	}
	pw.debounce[event.Name] = time.AfterFunc(200*time.Millisecond, func() {
		pw.importFile(event.Name)
		pw.debounceMu.Lock()
		delete(pw.debounce, event.Name)
		pw.debounceMu.Unlock()
	})
	pw.debounceMu.Unlock()
}

func (pw *PaletteWatcher) importFile(path string) {
	// Debounce timers may fire after Stop
	pw.mu.RLock()
	if pw.stopped {
		pw.mu.RUnlock()
		return
	}
	pw.mu.RUnlock()

	n, err := pw.palettes.ImportFile("", path)
	switch {
	case err != nil && n > 0:
		log.Printf("Imported %d colors from %s (file was truncated: %v)", n, filepath.Base(path), err)
	case err != nil:
		log.Printf("Skipping %s: %v", filepath.Base(path), err)
	default:
		log.Printf("Imported %d colors from %s", n, filepath.Base(path))
	}
}

// IsSwatchFile reports whether a path looks like a palette interchange
// file by extension. Hidden and temporary files are excluded.
func IsSwatchFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".ase", ".gpl":
		return true
	}
	return false
}
