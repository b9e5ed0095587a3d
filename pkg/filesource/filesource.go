package filesource

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/cameron-webmatter/pulsar/pkg/backend"
	"github.com/cameron-webmatter/pulsar/pkg/store"
)

type Invalidator interface {
	Invalidate()
}

func New(b backend.Backend, path string, opts ...store.AsyncOption[any]) (*store.Async[any], error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("path is required")
	}

	clean := filepath.Clean(path)
	return store.NewAsync(b, clean, Producer(clean), opts...)
}

func Producer(path string) store.Producer[any] {
	return func(ctx context.Context) (any, error) {
		return parseFile(path)
	}
}

func parseFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var result any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &result); err != nil {
			return nil, fmt.Errorf("parse yaml %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, fmt.Errorf("parse json %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported file format %s: use .json, .yaml, or .yml", path)
	}

	return result, nil
}

func Watch(path string, inv Invalidator) (func(), error) {
	clean := filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Watching the directory keeps tracking across editor rename-and-replace saves.
	dir := filepath.Dir(clean)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != clean {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					inv.Invalidate()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("file watch error: %v", err)
			}
		}
	}()

	return func() {
		watcher.Close()
	}, nil
}
