package tracentm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/tracentm/internal/runtime"
	"github.com/aretw0/tracentm/pkg/adapters/file"
	"github.com/aretw0/tracentm/pkg/domain"
	"github.com/aretw0/tracentm/pkg/ports"
	"github.com/aretw0/tracentm/pkg/report"
)

// Engine is the high-level entry point for the tracentm library.
// It binds one machine to the exploration runtime.
type Engine struct {
	runtime   *runtime.Engine
	loader    ports.MachineLoader
	machineID string
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	Name      string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLoader injects a custom MachineLoader, bypassing the default file loader.
func WithLoader(l ports.MachineLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMachineID selects the machine to load when the loader serves more than one.
func WithMachineID(id string) Option {
	return func(e *Engine) {
		e.machineID = id
	}
}

// New initializes an Engine.
// By default path names a machine file or a directory of machine files read by the
// file loader. If WithLoader is provided, path may be empty.
func New(path string, opts ...Option) (*Engine, error) {
	eng := &Engine{}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		if path == "" {
			return nil, fmt.Errorf("path is required when no custom loader is provided")
		}
		loader, err := file.NewLoader(path)
		if err != nil {
			return nil, err
		}
		eng.loader = loader

		if eng.machineID == "" {
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				base := filepath.Base(path)
				eng.machineID = strings.TrimSuffix(base, filepath.Ext(base))
			}
		}
	}

	if eng.machineID == "" {
		ids, err := eng.loader.ListMachines()
		if err != nil {
			return nil, fmt.Errorf("failed to list machines: %w", err)
		}
		switch len(ids) {
		case 0:
			return nil, fmt.Errorf("no machines found: %w", domain.ErrMachineNotFound)
		case 1:
			eng.machineID = ids[0]
		default:
			return nil, fmt.Errorf("%d machines found, select one with WithMachineID: %v", len(ids), ids)
		}
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	if err := eng.Reload(); err != nil {
		return nil, err
	}
	return eng, nil
}

// Reload fetches the machine from the loader again and rebuilds the runtime.
func (e *Engine) Reload() error {
	machine, err := e.loader.GetMachine(e.machineID)
	if err != nil {
		return err
	}

	e.Name = machine.Name()
	e.runtime = runtime.NewEngine(machine,
		runtime.WithLifecycleHooks(e.hooks),
		runtime.WithLogger(e.logger.With("machine", e.Name)),
	)
	return nil
}

// Simulate explores the configuration tree of input up to maxDepth levels.
func (e *Engine) Simulate(ctx context.Context, input string, maxDepth int) *domain.Run {
	return e.runtime.Simulate(ctx, input, maxDepth)
}

// Trace simulates input and summarizes the run into a Report.
func (e *Engine) Trace(ctx context.Context, input string, maxDepth int) *domain.Report {
	return report.New(e.Machine(), e.Simulate(ctx, input, maxDepth))
}

// Machine returns the loaded machine.
func (e *Engine) Machine() *domain.Machine {
	return e.runtime.Machine()
}

// MachineID returns the loader ID of the loaded machine.
func (e *Engine) MachineID() string {
	return e.machineID
}

// Watch returns a channel that signals when the underlying machine source changes.
// Returns error if the loader does not support watching.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := e.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current loader does not support watching")
}

// Loader returns the underlying MachineLoader used by the engine.
func (e *Engine) Loader() ports.MachineLoader {
	return e.loader
}
