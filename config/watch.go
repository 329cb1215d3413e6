// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls fn with the config reopened from the named file each
// time the file is written, until the context is done. A config that
// fails to open is passed as the error, and watching continues.
// The directory of the file is watched, so that editors that save by
// renaming a new file over the old one are seen.
func Watch(ctx context.Context, filename string, fn func(cf *Config, err error)) error {
	fn0, err := Expand(filename)
	if err != nil {
		return err
	}
	path, err := filepath.Abs(fn0)
	if err != nil {
		return err
	}
	watch, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watch.Close()
	if err := watch.Add(filepath.Dir(path)); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watch.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			switch {
			case event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create:
				slog.Debug("config changed", "file", path, "op", event.Op)
				fn(Open(path))
			}
		case err, ok := <-watch.Errors:
			if !ok {
				return nil
			}
			slog.Warn("config watcher", "err", err)
		}
	}
}
