package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/tracentm"
	"github.com/aretw0/tracentm/internal/compiler"
	"github.com/aretw0/tracentm/internal/config"
	"github.com/aretw0/tracentm/pkg/adapters/file"
	loamAdapter "github.com/aretw0/tracentm/pkg/adapters/loam"
	"github.com/aretw0/tracentm/pkg/ports"
)

// NewEngine opens the machine described by opts for commands that need the engine itself.
func NewEngine(opts RunOptions) (*tracentm.Engine, error) {
	return createEngine(opts, createLogger(opts.Debug))
}

// createEngine initializes a tracentm engine with standard CLI conventions.
func createEngine(opts RunOptions, logger *slog.Logger) (*tracentm.Engine, error) {
	engineOpts := []tracentm.Option{tracentm.WithLogger(logger)}

	if opts.Debug {
		engineOpts = append(engineOpts, tracentm.WithLifecycleHooks(createDebugHooks(logger)))
	}
	if opts.MachineID != "" {
		engineOpts = append(engineOpts, tracentm.WithMachineID(opts.MachineID))
	}

	// Single files go through the facade's default file loader, which also infers the ID.
	if info, err := os.Stat(opts.Path); err != nil || info.IsDir() {
		loader, err := OpenLoader(opts.Loader, opts.Path)
		if err != nil {
			return nil, err
		}
		engineOpts = append(engineOpts, tracentm.WithLoader(loader))
	}

	engine, err := tracentm.New(opts.Path, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

// OpenLoader opens a machine directory with the named loader. An empty kind picks
// Loam when the directory holds markdown documents and no plain machine files.
func OpenLoader(kind, path string) (ports.MachineLoader, error) {
	if kind == "" {
		kind = detectLoader(path)
	}
	var (
		loader ports.MachineLoader
		err    error
	)
	switch kind {
	case config.LoaderLoam:
		loader, err = loamAdapter.Open(path)
	case config.LoaderFile:
		loader, err = file.NewLoader(path)
	default:
		return nil, fmt.Errorf("unknown machine loader %q", kind)
	}
	if err != nil {
		return nil, err
	}
	return loader, nil
}

// detectLoader inspects a directory without parsing anything.
func detectLoader(path string) string {
	entries, err := os.ReadDir(path)
	if err != nil {
		return config.LoaderFile
	}

	hasMarkdown := false
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if _, ok := compiler.FormatFromExt(ext); ok {
			return config.LoaderFile
		}
		if ext == ".md" {
			hasMarkdown = true
		}
	}
	if hasMarkdown {
		return config.LoaderLoam
	}
	return config.LoaderFile
}
