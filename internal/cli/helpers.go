package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/aretw0/tracentm/internal/logging"
	"github.com/aretw0/tracentm/pkg/domain"
)

// SignalContext is cancelled by SIGINT or SIGTERM and remembers which one arrived.
// Long-running commands (watch, serve) log it during shutdown.
type SignalContext struct {
	context.Context
	Cancel context.CancelFunc

	received atomic.Value // os.Signal
}

// NewSignalContext derives a SignalContext from parent.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{Context: ctx, Cancel: cancel}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigs)
		select {
		case sig := <-sigs:
			sc.received.Store(sig)
			cancel()
		case <-ctx.Done():
		}
	}()
	return sc
}

// Signal returns the signal that cancelled the context, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sig, _ := sc.received.Load().(os.Signal)
	return sig
}

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from the report on Stdout).
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLevel: func(ctx context.Context, e *domain.LevelEvent) {
			logger.Debug("Level Done", "level", e.Level, "width", e.Width, "successors", e.Successors)
		},
		OnVerdict: func(ctx context.Context, e *domain.VerdictEvent) {
			logger.Debug("Verdict", "verdict", e.Verdict, "steps", e.Steps, "explored", e.Explored)
		},
	}
}
