package export

import (
	"context"
	_ "embed"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

//go:embed assets/style.css
var embeddedCSS string

// reloadDelay collapses the burst of events editors emit for a single save.
const reloadDelay = 100 * time.Millisecond

// Stylesheet is the CSS embedded into exported documents. It is either the built-in
// asset or a file on disk that can be watched for changes.
type Stylesheet struct {
	mu     sync.RWMutex
	css    string
	path   string
	logger *slog.Logger
}

// EmbeddedStylesheet returns the built-in stylesheet.
func EmbeddedStylesheet() *Stylesheet {
	return &Stylesheet{css: embeddedCSS, logger: slog.Default()}
}

// LoadStylesheet reads the stylesheet at path. An empty path yields the built-in one.
func LoadStylesheet(path string, logger *slog.Logger) (*Stylesheet, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		return &Stylesheet{css: embeddedCSS, logger: logger}, nil
	}
	s := &Stylesheet{path: filepath.Clean(path), logger: logger}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// CSS returns the current stylesheet contents.
func (s *Stylesheet) CSS() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.css
}

// Path returns the backing file, or "" for the built-in stylesheet.
func (s *Stylesheet) Path() string {
	return s.path
}

// Reload re-reads the backing file. On failure the previous contents are kept.
func (s *Stylesheet) Reload() error {
	if s.path == "" {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return &StylesheetError{Path: s.path, Message: "failed to read stylesheet", Cause: err}
	}
	s.mu.Lock()
	s.css = string(data)
	s.mu.Unlock()
	return nil
}

// Watch reloads the stylesheet whenever its file changes, until ctx is cancelled.
// onChange (if non-nil) runs after each successful reload. For the built-in
// stylesheet Watch returns immediately.
func (s *Stylesheet) Watch(ctx context.Context, onChange func()) error {
	if s.path == "" {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return &StylesheetError{Path: s.path, Message: "failed to create watcher", Cause: err}
	}
	defer w.Close()

	// Watch the directory: editors commonly replace the file through a rename.
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		return &StylesheetError{Path: s.path, Message: "failed to watch directory", Cause: err}
	}
	s.logger.Info("stylesheet: watching", slog.String("path", s.path))

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			s.logger.Info("stylesheet: watcher stopped")
			return nil

		case <-timerC:
			if err := s.Reload(); err != nil {
				s.logger.Warn("stylesheet: reload failed", slog.String("error", err.Error()))
				continue
			}
			s.logger.Debug("stylesheet: reloaded", slog.String("path", s.path))
			if onChange != nil {
				onChange()
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != s.path {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDelay)
				timerC = timer.C
			} else {
				timer.Reset(reloadDelay)
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("stylesheet: watcher error", slog.String("error", watchErr.Error()))
		}
	}
}
