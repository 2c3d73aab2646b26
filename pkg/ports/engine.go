package ports

import (
	"context"

	"github.com/aretw0/tracentm/pkg/domain"
)

// Simulator runs any machine known to a loader and summarizes the outcome.
// This is the primary interface used by adapters (e.g., HTTP, MCP) that serve many machines.
type Simulator interface {
	// Simulate traces input on the named machine with the given depth bound.
	Simulate(ctx context.Context, machineID, input string, maxDepth int) (*domain.Report, error)

	// Machines lists the available machine IDs.
	Machines() ([]string, error)

	// Machine returns the definition of one machine.
	Machine(id string) (*domain.Machine, error)
}
