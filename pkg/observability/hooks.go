package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/tracentm/pkg/domain"
)

// LoggingHooks logs every level at Debug and every verdict at Info.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLevel: func(ctx context.Context, e *domain.LevelEvent) {
			logger.DebugContext(ctx, "level_done",
				"machine", e.Machine,
				"level", e.Level,
				"width", e.Width,
				"successors", e.Successors,
			)
		},
		OnVerdict: func(ctx context.Context, e *domain.VerdictEvent) {
			logger.InfoContext(ctx, "verdict",
				"machine", e.Machine,
				"verdict", e.Verdict,
				"steps", e.Steps,
				"explored", e.Explored,
			)
		},
	}
}

// Combine returns hooks that call each of the given hook sets in order.
func Combine(all ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLevel: func(ctx context.Context, e *domain.LevelEvent) {
			for _, h := range all {
				if h.OnLevel != nil {
					h.OnLevel(ctx, e)
				}
			}
		},
		OnVerdict: func(ctx context.Context, e *domain.VerdictEvent) {
			for _, h := range all {
				if h.OnVerdict != nil {
					h.OnVerdict(ctx, e)
				}
			}
		},
	}
}
