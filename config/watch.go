// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file whenever it changes on disk.
type Watcher struct {
	fw   *fsnotify.Watcher
	done chan struct{}
}

// Watch starts watching the config file at path. Every time the file
// is written or replaced, it is reloaded with [Load] and a copy of the
// result is passed to fn. Invalid files are logged and skipped.
// fn is called on the watcher goroutine; callers that mutate engine
// state should hand the value over to the main loop.
func Watch(path string, fn func(cfg *Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}
	// editors often replace files on save, so the directory is watched
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}
	w := &Watcher{fw: fw, done: make(chan struct{})}
	go w.run(abs, fn)
	return w, nil
}

func (w *Watcher) run(path string, fn func(cfg *Config)) {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			cfg, err := Load(path)
			if err != nil {
				slog.Warn("config: reload failed", "path", path, "err", err)
				continue
			}
			slog.Info("config: reloaded", "path", path)
			fn(cfg.Clone())
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			slog.Error("config: watch error", "err", err)
		}
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	err := w.fw.Close()
	<-w.done
	return err
}
