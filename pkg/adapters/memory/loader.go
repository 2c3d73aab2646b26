package memory

import (
	"fmt"
	"sort"

	"github.com/aretw0/tracentm/internal/compiler"
	"github.com/aretw0/tracentm/pkg/domain"
)

// Loader implements ports.MachineLoader using an in-memory map.
type Loader struct {
	machines map[string]*domain.Machine
}

// NewLoader creates a loader from ready-made machines, keyed by their names.
func NewLoader(machines ...*domain.Machine) *Loader {
	l := &Loader{machines: make(map[string]*domain.Machine)}
	for _, m := range machines {
		l.machines[m.Name()] = m
	}
	return l
}

// NewFromDefinitions validates the definitions and registers them by name.
// This improves DX for tests and library users.
func NewFromDefinitions(defs ...domain.Definition) (*Loader, error) {
	l := &Loader{machines: make(map[string]*domain.Machine)}
	for _, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("machine missing name")
		}
		m, err := compiler.Compile(def)
		if err != nil {
			return nil, err
		}
		l.machines[def.Name] = m
	}
	return l, nil
}

// GetMachine retrieves a machine by ID.
func (l *Loader) GetMachine(id string) (*domain.Machine, error) {
	m, ok := l.machines[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, id)
	}
	return m, nil
}

// ListMachines returns all available machine IDs.
func (l *Loader) ListMachines() ([]string, error) {
	keys := make([]string, 0, len(l.machines))
	for k := range l.machines {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
