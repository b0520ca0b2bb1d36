package config

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
)

// Reload is the outcome of re-reading a watched config file.
type Reload struct {
	Config *Config
	Err    error
}

// Watcher re-reads a config file after it changes on disk. Bursts of events
// from editors that write in several steps collapse into one reload.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	changes chan Reload
	done    chan struct{}
	trigger func(func())
}

// Watch starts watching path. Reloads arrive on Changes; only the newest
// unread reload is kept.
func Watch(path string, delay time.Duration) (*Watcher, error) {
	if path == "" {
		path = DefaultPath()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory so replace-by-rename saves are seen too.
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		changes: make(chan Reload, 1),
		done:    make(chan struct{}),
		trigger: debounce.New(delay),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) Changes() <-chan Reload { return w.changes }

func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.trigger(w.reload)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[config] watch %s: %v", w.path, err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	r := Reload{Config: cfg, Err: err}
	select {
	case <-w.done:
		return
	default:
	}
	// Replace any unread reload with the newer one.
	select {
	case <-w.changes:
	default:
	}
	select {
	case w.changes <- r:
	default:
	}
}
