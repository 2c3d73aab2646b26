package ports

import (
	"context"

	"github.com/aretw0/tracentm/pkg/domain"
)

// MachineLoader defines how machine definitions are retrieved.
// This allows the storage layer (files, Loam, Memory) to be decoupled.
type MachineLoader interface {
	// GetMachine loads and validates the machine registered under id.
	// It returns an error wrapping domain.ErrMachineNotFound when the id is unknown.
	GetMachine(id string) (*domain.Machine, error)

	// ListMachines returns the IDs of every machine the loader can provide, sorted.
	ListMachines() ([]string, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// This is typically used for hot-reload or dev-mode functionality.
type Watchable interface {
	// Watch returns a channel that receives the ID of a machine whose source changed.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}
