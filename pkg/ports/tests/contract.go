package tests

import (
	"errors"
	"testing"

	"github.com/aretw0/tracentm/pkg/domain"
	"github.com/aretw0/tracentm/pkg/ports"
)

// MachineLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.MachineLoader.
// expected maps every machine ID the loader must serve to its definition.
func MachineLoaderContractTest(t *testing.T, loader ports.MachineLoader, expected map[string]domain.Definition) {
	t.Helper()

	t.Run("GetMachine_Success", func(t *testing.T) {
		for id, want := range expected {
			m, err := loader.GetMachine(id)
			if err != nil {
				t.Fatalf("unexpected error getting machine %s: %v", id, err)
			}
			got := m.Definition()
			if got.Name != want.Name || got.Start != want.Start || got.Accept != want.Accept || got.Reject != want.Reject {
				t.Errorf("header mismatch for %s: got %+v, want %+v", id, got, want)
			}
			if len(got.Transitions) != len(want.Transitions) {
				t.Fatalf("machine %s: got %d transitions, want %d", id, len(got.Transitions), len(want.Transitions))
			}
			for i := range want.Transitions {
				if got.Transitions[i] != want.Transitions[i] {
					t.Errorf("machine %s transition %d: got %+v, want %+v", id, i, got.Transitions[i], want.Transitions[i])
				}
			}
		}
	})

	t.Run("GetMachine_NotFound", func(t *testing.T) {
		_, err := loader.GetMachine("non-existent-machine")
		if !errors.Is(err, domain.ErrMachineNotFound) {
			t.Errorf("expected ErrMachineNotFound, got %v", err)
		}
	})

	t.Run("ListMachines", func(t *testing.T) {
		ids, err := loader.ListMachines()
		if err != nil {
			t.Fatalf("unexpected error listing machines: %v", err)
		}

		if len(ids) != len(expected) {
			t.Errorf("expected %d machines, got %d", len(expected), len(ids))
		}

		lookup := make(map[string]bool)
		for _, id := range ids {
			lookup[id] = true
		}
		for id := range expected {
			if !lookup[id] {
				t.Errorf("machine %s missing from list", id)
			}
		}
	})
}
