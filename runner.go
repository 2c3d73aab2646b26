package tracentm

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/tracentm/pkg/domain"
	"github.com/aretw0/tracentm/pkg/report"
)

// Runner traces inputs on an Engine and prints the resulting reports.
// Frontends (CLI, TUI, tests) differ only in the IO and renderer they plug in.
type Runner struct {
	Output   io.Writer
	JSON     bool
	Renderer ContentRenderer
}

// ContentRenderer turns a report into display text, e.g. ANSI-styled markdown.
// This keeps the terminal stack out of the core package.
type ContentRenderer func(*domain.Report) (string, error)

// NewRunner creates a Runner writing plain text to w.
func NewRunner(w io.Writer) *Runner {
	return &Runner{Output: w}
}

// Run traces input with the given depth bound and prints the report.
func (r *Runner) Run(ctx context.Context, engine *Engine, input string, maxDepth int) (*domain.Report, error) {
	if r.Output == nil {
		return nil, fmt.Errorf("output writer must be set (use os.Stdout)")
	}

	rep := engine.Trace(ctx, input, maxDepth)
	if err := r.Write(rep); err != nil {
		return rep, err
	}
	return rep, nil
}

// Write prints a report using the runner's output mode.
func (r *Runner) Write(rep *domain.Report) error {
	if r.JSON {
		return report.WriteJSON(r.Output, rep)
	}

	if r.Renderer != nil {
		rendered, err := r.Renderer(rep)
		if err == nil {
			_, err = fmt.Fprintln(r.Output, strings.TrimSpace(rendered))
			return err
		}
	}
	return report.WriteText(r.Output, rep)
}
