package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/leapstack-labs/gumcodegen/internal/loader"
	"github.com/leapstack-labs/gumcodegen/pkg/core"
)

// WatchDebounce is how long the watcher waits for further changes before
// regenerating.
const WatchDebounce = 100 * time.Millisecond

// WatchFunc receives the outcome of each regeneration triggered by a change.
type WatchFunc func(result *GenerateResult, err error)

// Watch regenerates affected elements whenever a document changes. It
// blocks until ctx is cancelled.
func (e *Engine) Watch(ctx context.Context, onChange WatchFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, kind := range loader.Kinds {
		dir := filepath.Join(e.loader.Root(), string(kind))
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		if err := watchDir(watcher, dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	e.logger.Info("watching for changes", "project_dir", e.loader.Root())
	return e.watchLoop(ctx, watcher, onChange)
}

// watchDir recursively adds a directory to the watcher.
func watchDir(watcher *fsnotify.Watcher, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if len(info.Name()) > 1 && info.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}

func (e *Engine) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, onChange WatchFunc) error {
	pending := make(map[string]bool)
	var debounce <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// new folders must be watched too
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watchDir(watcher, event.Name)
					continue
				}
			}

			if !strings.HasSuffix(event.Name, loader.DocumentExt) || event.Op == fsnotify.Chmod {
				continue
			}
			pending[event.Name] = true
			debounce = time.After(WatchDebounce)

		case <-debounce:
			debounce = nil
			paths := make([]string, 0, len(pending))
			for path := range pending {
				paths = append(paths, path)
			}
			clear(pending)

			result, err := e.regenerate(ctx, paths)
			if onChange != nil && (result != nil || err != nil) {
				onChange(result, err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			e.logger.Warn("watcher error", "error", err)
		}
	}
}

// regenerate reloads the project and regenerates the elements affected by
// the changed paths. It returns a nil result when nothing is affected.
func (e *Engine) regenerate(ctx context.Context, paths []string) (*GenerateResult, error) {
	var changed []string
	for _, path := range paths {
		if _, name, err := e.loader.ElementName(path); err == nil {
			changed = append(changed, name)
		}
	}
	e.logger.Info("change detected", "elements", changed)

	if _, err := e.Load(); err != nil {
		return nil, err
	}

	affected := e.AffectedElements(changed)
	if len(affected) == 0 {
		return nil, nil
	}
	return e.Generate(ctx, GenerateOptions{Elements: affected})
}

// AffectedElements returns the loaded elements whose generated code can
// change when the named elements change: the elements themselves, every
// element deriving from them, and every element holding an instance of any
// of those. Names that are no longer loaded are ignored.
func (e *Engine) AffectedElements(changed []string) []string {
	graph, reg := e.Graph(), e.Registry()

	affected := make(map[string]bool)
	for _, name := range graph.GetAffectedNodes(changed) {
		affected[name] = true
	}

	var containers []string
	for _, el := range reg.Elements() {
		if affected[el.Name] {
			continue
		}
		if slices.ContainsFunc(el.Instances, func(inst *core.Instance) bool {
			if affected[inst.BaseType] {
				return true
			}
			return slices.ContainsFunc(reg.Ancestry(reg.ElementForInstance(inst)), func(n string) bool { return affected[n] })
		}) {
			containers = append(containers, el.Name)
		}
	}

	for _, name := range graph.GetAffectedNodes(containers) {
		affected[name] = true
	}

	out := make([]string, 0, len(affected))
	for name := range affected {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}
