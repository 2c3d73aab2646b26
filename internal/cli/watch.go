package cli

import (
	"context"
	"io"
	"time"

	"github.com/aretw0/tracentm/internal/presentation/tui"
)

// reloadDelay lets editors finish writing before the machine is read again.
const reloadDelay = 100 * time.Millisecond

// RunWatch traces the input, then traces it again every time the machine source
// changes, until ctx is cancelled.
func RunWatch(ctx context.Context, opts RunOptions, out io.Writer) error {
	logger := createLogger(opts.Debug)
	if opts.Rich {
		tui.PrintBanner(out)
	}

	engine, err := createEngine(opts, logger)
	if err != nil {
		return err
	}

	changes, err := engine.Watch(ctx)
	if err != nil {
		return err
	}

	r := newRunner(opts, out)
	logger.Info("Starting Watcher", "path", opts.Path, "machine", engine.MachineID())
	printSystemMessage(out, "Watching '%s' machine.", engine.MachineID())

	for {
		if _, err := r.Run(ctx, engine, opts.Input, opts.Depth); err != nil {
			return err
		}
		printSystemMessage(out, "Waiting for changes...")

		if !waitForChange(ctx, changes, engine.MachineID()) {
			logger.Info("Stopping watcher")
			return nil
		}

		time.Sleep(reloadDelay)
		printSystemMessage(out, "Change detected in '%s'.", engine.MachineID())

		// Keep watching through broken edits; the next save may fix them.
		for {
			err := engine.Reload()
			if err == nil {
				break
			}
			logger.Error("Reload failed", "err", err)
			printSystemMessage(out, "Reload failed: %v", err)
			if !waitForChange(ctx, changes, engine.MachineID()) {
				return nil
			}
			time.Sleep(reloadDelay)
		}
	}
}

// waitForChange blocks until id changes. It returns false when ctx is done or the
// watcher stops.
func waitForChange(ctx context.Context, changes <-chan string, id string) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case changed, ok := <-changes:
			if !ok {
				return false
			}
			if changed == id {
				// Drain the burst of events one save produces.
				drain(changes, reloadDelay)
				return true
			}
		}
	}
}

func drain(ch <-chan string, quiet time.Duration) {
	timer := time.NewTimer(quiet)
	defer timer.Stop()
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
			timer.Reset(quiet)
		case <-timer.C:
			return
		}
	}
}
