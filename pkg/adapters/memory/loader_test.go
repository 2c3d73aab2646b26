package memory_test

import (
	"testing"

	"github.com/aretw0/tracentm/internal/testutils"
	"github.com/aretw0/tracentm/pkg/adapters/memory"
	"github.com/aretw0/tracentm/pkg/domain"
	contract "github.com/aretw0/tracentm/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryLoader_Contract(t *testing.T) {
	defs := []domain.Definition{testutils.APlusDefinition(), testutils.ForkDefinition()}

	loader, err := memory.NewFromDefinitions(defs...)
	require.NoError(t, err)

	contract.MachineLoaderContractTest(t, loader, map[string]domain.Definition{
		"a-plus": defs[0],
		"fork":   defs[1],
	})
}

func TestNewFromDefinitions_Rejects(t *testing.T) {
	_, err := memory.NewFromDefinitions(domain.Definition{})
	assert.ErrorContains(t, err, "missing name")

	bad := testutils.APlusDefinition()
	bad.Start = ""
	_, err = memory.NewFromDefinitions(bad)
	assert.ErrorContains(t, err, "invalid machine")
}

func TestNewLoader_ListSorted(t *testing.T) {
	loader := memory.NewLoader(domain.NewMachine(testutils.ForkDefinition()), testutils.APlusMachine())

	ids, err := loader.ListMachines()
	require.NoError(t, err)
	assert.Equal(t, []string{"a-plus", "fork"}, ids)
}
