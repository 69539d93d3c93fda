package audio

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"voice-assistant/internal/application"
	"voice-assistant/internal/domain"
)

var audioExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".m4a":  true,
	".webm": true,
}

// FileSource picks up commands dropped into a directory: audio clips, or
// .txt files holding a typed phrase. Writers should create the file elsewhere
// and rename it into place so a half-written file is never read.
type FileSource struct {
	dir       string
	processed map[string]bool
	mu        sync.Mutex
	watcher   *fsnotify.Watcher
	rename    func(oldpath, newpath string) error
	logger    *slog.Logger
}

func NewFileSource(dir string, logger *slog.Logger) *FileSource {
	return &FileSource{
		dir:       dir,
		processed: make(map[string]bool),
		rename:    os.Rename,
		logger:    logger,
	}
}

func (f *FileSource) Name() string {
	return "file"
}

func (f *FileSource) Start(_ context.Context) error {
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return fmt.Errorf("creating audio dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(f.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", f.dir, err)
	}

	f.mu.Lock()
	f.watcher = watcher
	f.mu.Unlock()
	return nil
}

func (f *FileSource) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.watcher == nil {
		return nil
	}
	err := f.watcher.Close()
	f.watcher = nil
	return err
}

func (f *FileSource) NextCommand(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	watcher := f.watcher
	f.mu.Unlock()

	if watcher == nil {
		return nil, application.ErrSourceClosed
	}

	for {
		data, err := f.checkForNewFile()
		if err != nil {
			return nil, err
		}
		if data != nil {
			return data, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case _, ok := <-watcher.Events:
			if !ok {
				return nil, application.ErrSourceClosed
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil, application.ErrSourceClosed
			}
			return nil, fmt.Errorf("watching %s: %w", f.dir, err)
		}
	}
}

func (f *FileSource) checkForNewFile() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("reading dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		isText := ext == ".txt"
		if !isText && !audioExtensions[ext] {
			continue
		}

		path := filepath.Join(f.dir, entry.Name())
		if f.processed[path] {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading file %s: %w", path, err)
		}

		f.processed[path] = true
		if err := f.rename(path, path+".processed"); err != nil {
			f.logger.Warn("marking file processed failed, it will be read again after a restart",
				"path", path, "error", err)
		}

		if isText {
			text := strings.TrimSpace(string(data))
			if text == "" {
				continue
			}
			return []byte(domain.TextCommandPrefix + text), nil
		}

		if len(data) == 0 {
			continue
		}
		return data, nil
	}

	return nil, nil
}
