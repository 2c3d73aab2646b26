package file

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/tracentm/internal/compiler"
	"github.com/aretw0/tracentm/pkg/domain"
	"github.com/fsnotify/fsnotify"
)

// Loader implements ports.MachineLoader on top of the local filesystem.
// It serves either every supported file in a directory or one single file. The
// machine ID is the file name without its extension.
type Loader struct {
	dir    string
	only   string // set when the loader was opened on a single file
	parser *compiler.Parser
}

// NewLoader opens path, which may be a directory or a single machine file.
func NewLoader(path string) (*Loader, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open machine source: %w", err)
	}

	l := &Loader{dir: abs, parser: compiler.NewParser()}
	if !info.IsDir() {
		if _, ok := compiler.FormatFromExt(filepath.Ext(abs)); !ok {
			return nil, fmt.Errorf("unsupported machine file %q (expected .csv, .yaml, .yml or .json)", abs)
		}
		l.dir = filepath.Dir(abs)
		l.only = filepath.Base(abs)
	}
	return l, nil
}

// GetMachine reads, parses and validates the machine file for id.
func (l *Loader) GetMachine(id string) (*domain.Machine, error) {
	files, err := l.files()
	if err != nil {
		return nil, err
	}
	name, ok := files[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, id)
	}

	data, err := os.ReadFile(filepath.Join(l.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read machine %s: %w", id, err)
	}
	format, _ := compiler.FormatFromExt(filepath.Ext(name))
	m, err := l.parser.Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("machine %s: %w", id, err)
	}
	return m, nil
}

// ListMachines returns the IDs of all machine files, sorted.
func (l *Loader) ListMachines() ([]string, error) {
	files, err := l.files()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(files))
	for id := range files {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// files maps machine IDs to file names, detecting ID collisions across extensions.
func (l *Loader) files() (map[string]string, error) {
	if l.only != "" {
		return map[string]string{trimExtension(l.only): l.only}, nil
	}

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}

	files := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if _, ok := compiler.FormatFromExt(filepath.Ext(name)); !ok {
			continue
		}
		id := trimExtension(name)
		if existing, ok := files[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existing, name)
		}
		files[id] = name
	}
	return files, nil
}

// Watch notifies with the machine ID whenever a machine file is written, created,
// renamed or removed.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(l.dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", l.dir, err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				name := filepath.Base(event.Name)
				if !l.relevant(name) || event.Op == fsnotify.Chmod {
					continue
				}
				select {
				case out <- trimExtension(name):
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("machine watcher error", "err", err)
			}
		}
	}()
	return out, nil
}

func (l *Loader) relevant(name string) bool {
	if l.only != "" {
		return name == l.only
	}
	_, ok := compiler.FormatFromExt(filepath.Ext(name))
	return ok
}

func trimExtension(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
