package runtime

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/tracentm/pkg/domain"
)

// Engine explores the configuration tree of a machine breadth-first.
// It keeps no per-run state, so one Engine may serve concurrent Simulate calls.
type Engine struct {
	machine *domain.Machine
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger. A nil logger keeps the default.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine for the given machine.
func NewEngine(machine *domain.Machine, opts ...EngineOption) *Engine {
	e := &Engine{
		machine: machine,
		logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Machine returns the machine being simulated.
func (e *Engine) Machine() *domain.Machine {
	return e.machine
}

// Simulate runs the machine on input until it accepts, every branch dies, or the level
// counter passes maxDepth. The context is only handed to lifecycle hooks; the depth
// bound is the sole limit on the work done.
func (e *Engine) Simulate(ctx context.Context, input string, maxDepth int) *domain.Run {
	x := newExploration(e.machine, input, maxDepth)

	for level := 0; level <= maxDepth; level++ {
		current := x.run.Levels[level]
		next, branches, accepted := x.expand(level, current)
		if accepted {
			return e.finish(ctx, x.run, domain.VerdictAccept, level)
		}

		if len(next) == 0 {
			return e.finish(ctx, x.run, domain.VerdictReject, level)
		}

		x.run.LevelBranching = append(x.run.LevelBranching, float64(branches)/float64(len(current)))
		x.run.Levels = append(x.run.Levels, next)

		e.logger.Debug("level explored",
			"level", level,
			"width", len(current),
			"successors", len(next),
			"explored", x.run.TotalConfigurations,
		)
		if e.hooks.OnLevel != nil {
			e.hooks.OnLevel(ctx, &domain.LevelEvent{
				EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventLevelDone},
				Machine:    e.machine.Name(),
				Level:      level,
				Width:      len(current),
				Successors: len(next),
				Explored:   x.run.TotalConfigurations,
			})
		}
	}

	return e.finish(ctx, x.run, domain.VerdictStopped, maxDepth)
}

func (e *Engine) finish(ctx context.Context, run *domain.Run, verdict domain.Verdict, steps int) *domain.Run {
	run.Verdict = verdict
	run.Steps = steps

	e.logger.Info("simulation finished",
		"verdict", verdict,
		"steps", steps,
		"explored", run.TotalConfigurations,
		"depth", run.Depth(),
	)
	if e.hooks.OnVerdict != nil {
		e.hooks.OnVerdict(ctx, &domain.VerdictEvent{
			EventBase:             domain.EventBase{Timestamp: time.Now(), Type: domain.EventVerdict},
			Machine:               e.machine.Name(),
			Verdict:               verdict,
			Steps:                 steps,
			Explored:              run.TotalConfigurations,
			Depth:                 run.Depth(),
			AverageNondeterminism: run.AverageNondeterminism(),
		})
	}
	return run
}
