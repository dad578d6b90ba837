package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"map-editor/core"
)

// Watcher reloads preferences whenever their file changes and delivers
// them on Updates. It only reads the file; applying the new values is up
// to the receiver, on its own goroutine.
type Watcher struct {
	path     string
	fsnotify *fsnotify.Watcher
	updates  chan Preferences
	errors   chan error
}

// NewWatcher watches the directory holding path, so editors that replace
// the file on save are still seen.
func NewWatcher(path string) (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fsWatch.Close()
		return nil, fmt.Errorf("resolve %q: %w", path, err)
	}
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, fmt.Errorf("watch %q: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		fsnotify: fsWatch,
		updates:  make(chan Preferences, 1),
		errors:   make(chan error, 1),
	}, nil
}

func (w *Watcher) Updates() <-chan Preferences { return w.updates }
func (w *Watcher) Errors() <-chan error        { return w.errors }

// Run blocks until ctx is done, then closes the watcher and both channels.
func (w *Watcher) Run(ctx context.Context) {
	defer func() {
		w.fsnotify.Close()
		close(w.updates)
		close(w.errors)
	}()

	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			prefs, err := Load(w.path)
			if err != nil {
				core.LogWarn("reload preferences: %v", err)
				w.send(ctx, nil, err)
				continue
			}
			core.LogInfo("preferences reloaded from %s", w.path)
			w.send(ctx, &prefs, nil)

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			w.fail(ctx, err)

		case <-ctx.Done():
			return
		}
	}
}

// fail logs a watcher error and passes it on to the receiver.
func (w *Watcher) fail(ctx context.Context, err error) {
	core.LogError("watch preferences: %v", err)
	w.send(ctx, nil, err)
}

func (w *Watcher) send(ctx context.Context, prefs *Preferences, err error) {
	if prefs != nil {
		select {
		case w.updates <- *prefs:
		case <-ctx.Done():
		}
		return
	}
	select {
	case w.errors <- err:
	default:
		// receiver is behind; the log line is enough
	}
}
