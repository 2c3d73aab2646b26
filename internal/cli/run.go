package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/tracentm"
	"github.com/aretw0/tracentm/internal/presentation/tui"
	"github.com/aretw0/tracentm/pkg/domain"
)

// RunOptions contains all the configuration for the run and watch commands.
type RunOptions struct {
	Path      string
	MachineID string
	Loader    string // file | loam | "" (detect)
	Input     string
	Depth     int
	JSON      bool
	Rich      bool
	Debug     bool
	Save      bool   // persist the report
	StorePath string // file store directory used by Save
}

// Execute traces one input and prints the report to out.
func Execute(ctx context.Context, opts RunOptions, out io.Writer) (*domain.Report, error) {
	if opts.JSON && opts.Rich {
		return nil, fmt.Errorf("--json and --rich cannot be used together")
	}

	logger := createLogger(opts.Debug)
	engine, err := createEngine(opts, logger)
	if err != nil {
		return nil, err
	}

	rep, err := newRunner(opts, out).Run(ctx, engine, opts.Input, opts.Depth)
	if err != nil {
		return rep, err
	}

	if opts.Save {
		if err := saveReport(ctx, opts.StorePath, rep); err != nil {
			return rep, err
		}
		logger.Info("Report saved", "report_id", rep.ID)
	}
	return rep, nil
}

func newRunner(opts RunOptions, out io.Writer) *tracentm.Runner {
	r := tracentm.NewRunner(out)
	r.JSON = opts.JSON
	if opts.Rich {
		r.Renderer = tui.NewRenderer()
	}
	return r
}

// RichDefault reports whether rich output should be on when the user did not choose.
func RichDefault() bool {
	return tui.IsTerminal(os.Stdout)
}
