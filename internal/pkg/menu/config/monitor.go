package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// DetectMenuConfigChanges watches the directory holding the menu
// definition and signals on every write to a yaml file in it.
func DetectMenuConfigChanges(ctx context.Context, path string) <-chan bool {
	var change = make(chan bool)

	go func() {
		defer close(change)
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return
		}

		go func() {
			<-ctx.Done()
			err := watcher.Close()
			if err != nil {
				log.Info(fmt.Sprintf("closing watcher failed: %v", err))
			}
		}()

		err = watcher.Add(filepath.Dir(path))
		if err != nil {
			log.Info(fmt.Sprintf("watching \"%s\" failed: %v", filepath.Dir(path), err))
			return
		}

		for event := range watcher.Events {
			if event.Op != fsnotify.Write {
				continue
			}

			name := strings.ToLower(event.Name)
			if strings.HasSuffix(name, "yml") || strings.HasSuffix(name, "yaml") {
				log.Info(fmt.Sprintf("menu definition change detected: %s", event.Name))
				change <- true
			}
		}
	}()

	return change
}
