/*
LICENSE
  Copyright (C) 2025 the Australian Ocean Lab (AusOcean)

  This is free software: you can redistribute it and/or modify it
  under the terms of the GNU General Public License as published by
  the Free Software Foundation, either version 3 of the License, or
  (at your option) any later version.

  It is distributed in the hope that it will be useful,
  but WITHOUT ANY WARRANTY; without even the implied warranty of
  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
  GNU General Public License for more details.

  You should have received a copy of the GNU General Public License
  in gpl.txt. If not, see http://www.gnu.org/licenses/.
*/

package config

import (
	"fmt"
	"path/filepath"

	"github.com/ausocean/utils/logging"
	"github.com/fsnotify/fsnotify"
)

// Watch watches a file for modifications and calls onWrite when the file
// is modified. The directory is watched instead of the file, since
// editors and config management often replace the file atomically, which
// would end a watch on the file itself. See
// https://godocs.io/github.com/fsnotify/fsnotify#hdr-Watching_files
//
// The returned function stops the watch.
func Watch(file string, onWrite func(), l logging.Logger) (stop func() error, err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create watcher: %w", err)
	}

	file = filepath.Clean(file)
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					l.Debug("watcher events chan closed, terminating")
					return
				}
				if filepath.Clean(event.Name) != file {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					l.Info("file modification event", "file", file, "op", event.Op.String())
					onWrite()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					l.Debug("watcher error chan closed, terminating")
					return
				}
				l.Error("file watcher error", "error", err)
			}
		}
	}()

	// Watch the directory over the file.
	err = watcher.Add(filepath.Dir(file))
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("could not add file %s to watcher: %w", file, err)
	}
	return watcher.Close, nil
}
