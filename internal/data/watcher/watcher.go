// Package watcher reports changes to dataset files.
package watcher

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/penwyp/go-survey-explorer/internal/util"
)

// FileEvent is a change to one watched dataset file.
type FileEvent struct {
	Path      string
	Operation string
}

// FileWatcher watches dataset files through their parent directories, so
// files replaced by rename are still seen.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	files   map[string]struct{}
	dirs    map[string]struct{}
	events  chan FileEvent
	done    chan struct{}
	once    sync.Once
}

// New watches paths. Directories are watched whole; files through their parent.
func New(paths []string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher: watcher,
		files:   make(map[string]struct{}),
		dirs:    make(map[string]struct{}),
		events:  make(chan FileEvent, 100),
		done:    make(chan struct{}),
	}

	parents := make(map[string]struct{})
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		info, err := os.Stat(abs)
		if err == nil && info.IsDir() {
			fw.dirs[abs] = struct{}{}
			parents[abs] = struct{}{}
			continue
		}
		fw.files[abs] = struct{}{}
		parents[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range parents {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	go fw.processEvents()

	return fw, nil
}

func (fw *FileWatcher) relevant(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	if _, ok := fw.files[abs]; ok {
		return true
	}
	_, ok := fw.dirs[filepath.Dir(abs)]
	return ok
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.events)
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod || !fw.relevant(event.Name) {
				continue
			}
			select {
			case fw.events <- FileEvent{Path: event.Name, Operation: event.Op.String()}:
			case <-fw.done:
				return
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			util.LogWarnf("Dataset watch error: %v", err)

		case <-fw.done:
			return
		}
	}
}

// Events delivers changes until Close.
func (fw *FileWatcher) Events() <-chan FileEvent {
	return fw.events
}

// Close stops watching. It is safe to call more than once.
func (fw *FileWatcher) Close() error {
	var err error
	fw.once.Do(func() {
		close(fw.done)
		err = fw.watcher.Close()
	})
	return err
}
