package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/tracentm/internal/runtime"
	"github.com/aretw0/tracentm/pkg/domain"
	"github.com/aretw0/tracentm/pkg/ports"
	"github.com/aretw0/tracentm/pkg/report"
)

var (
	// ErrDepthLimit is returned when a request asks for more levels than allowed.
	ErrDepthLimit = errors.New("depth bound exceeds limit")
	// ErrNoStore is returned by report operations when no store is configured.
	ErrNoStore = errors.New("no report store configured")
)

// DefaultDepthLimit bounds remote requests when no limit is configured.
const DefaultDepthLimit = 1000

// Service implements ports.Simulator over a MachineLoader.
type Service struct {
	loader     ports.MachineLoader
	store      ports.ReportStore
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	depthLimit int
}

// Option configures a Service.
type Option func(*Service)

// WithStore persists every report produced by Simulate.
func WithStore(store ports.ReportStore) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithLifecycleHooks registers observability hooks on every simulation.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Service) {
		s.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDepthLimit sets the largest depth bound a caller may request.
func WithDepthLimit(limit int) Option {
	return func(s *Service) {
		s.depthLimit = limit
	}
}

// New creates a Service.
func New(loader ports.MachineLoader, opts ...Option) *Service {
	s := &Service{
		loader:     loader,
		logger:     slog.New(slog.NewJSONHandler(io.Discard, nil)),
		depthLimit: DefaultDepthLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Simulate loads machineID, traces input and returns the report, saving it when a
// store is configured.
func (s *Service) Simulate(ctx context.Context, machineID, input string, maxDepth int) (*domain.Report, error) {
	if maxDepth > s.depthLimit {
		return nil, fmt.Errorf("%w: %d > %d", ErrDepthLimit, maxDepth, s.depthLimit)
	}
	input, err := SanitizeInput(input)
	if err != nil {
		return nil, err
	}

	machine, err := s.loader.GetMachine(machineID)
	if err != nil {
		return nil, err
	}

	engine := runtime.NewEngine(machine,
		runtime.WithLifecycleHooks(s.hooks),
		runtime.WithLogger(s.logger.With("machine", machineID)),
	)
	rep := report.New(machine, engine.Simulate(ctx, input, maxDepth))

	if s.store != nil {
		if err := s.store.Save(ctx, rep); err != nil {
			return nil, fmt.Errorf("failed to save report: %w", err)
		}
		s.logger.Debug("report saved", "report_id", rep.ID)
	}
	return rep, nil
}

// Machines lists the available machine IDs.
func (s *Service) Machines() ([]string, error) {
	return s.loader.ListMachines()
}

// Machine returns one machine.
func (s *Service) Machine(id string) (*domain.Machine, error) {
	return s.loader.GetMachine(id)
}

// Store returns the configured report store, or nil.
func (s *Service) Store() ports.ReportStore {
	return s.store
}

// Report loads a stored report.
func (s *Service) Report(ctx context.Context, id string) (*domain.Report, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	return s.store.Load(ctx, id)
}

// Reports lists stored report IDs.
func (s *Service) Reports(ctx context.Context) ([]string, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	return s.store.List(ctx)
}

// DeleteReport removes a stored report.
func (s *Service) DeleteReport(ctx context.Context, id string) error {
	if s.store == nil {
		return ErrNoStore
	}
	return s.store.Delete(ctx, id)
}
