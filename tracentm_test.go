package tracentm_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/tracentm"
	"github.com/aretw0/tracentm/internal/testutils"
	"github.com/aretw0/tracentm/pkg/adapters/memory"
	"github.com/aretw0/tracentm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMachine(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNew_SingleFile(t *testing.T) {
	path := writeMachine(t, t.TempDir(), "a-plus.csv", testutils.APlusCSV)

	eng, err := tracentm.New(path)
	require.NoError(t, err)
	assert.Equal(t, "a-plus", eng.Name)
	assert.Equal(t, "a-plus", eng.MachineID())

	run := eng.Simulate(context.Background(), "aaaaa", 10)
	assert.Equal(t, domain.VerdictAccept, run.Verdict)
	assert.Equal(t, 6, run.Steps)
}

func TestNew_DirectoryNeedsMachineID(t *testing.T) {
	dir := t.TempDir()
	writeMachine(t, dir, "one.csv", testutils.APlusCSV)
	writeMachine(t, dir, "two.yaml", testutils.APlusYAML)

	_, err := tracentm.New(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WithMachineID")

	eng, err := tracentm.New(dir, tracentm.WithMachineID("two"))
	require.NoError(t, err)
	assert.Equal(t, "two", eng.MachineID())
	assert.Equal(t, "a-plus", eng.Machine().Name())
}

func TestNew_DirectoryWithOneMachine(t *testing.T) {
	dir := t.TempDir()
	writeMachine(t, dir, "only.yaml", testutils.APlusYAML)

	eng, err := tracentm.New(dir)
	require.NoError(t, err)
	assert.Equal(t, "only", eng.MachineID())
}

func TestNew_Errors(t *testing.T) {
	_, err := tracentm.New("")
	assert.Error(t, err)

	_, err = tracentm.New(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	_, err = tracentm.New("", tracentm.WithLoader(memory.NewLoader()))
	assert.ErrorIs(t, err, domain.ErrMachineNotFound)

	_, err = tracentm.New("", tracentm.WithLoader(memory.NewLoader(testutils.APlusMachine())), tracentm.WithMachineID("nope"))
	assert.ErrorIs(t, err, domain.ErrMachineNotFound)
}

func TestEngine_Hooks(t *testing.T) {
	var verdicts []domain.Verdict
	hooks := domain.LifecycleHooks{
		OnVerdict: func(_ context.Context, e *domain.VerdictEvent) {
			verdicts = append(verdicts, e.Verdict)
		},
	}

	eng, err := tracentm.New("",
		tracentm.WithLoader(memory.NewLoader(testutils.APlusMachine())),
		tracentm.WithLifecycleHooks(hooks),
	)
	require.NoError(t, err)

	eng.Simulate(context.Background(), "a", 10)
	eng.Simulate(context.Background(), "b", 10)
	assert.Equal(t, []domain.Verdict{domain.VerdictAccept, domain.VerdictReject}, verdicts)
}

func TestEngine_Trace(t *testing.T) {
	eng, err := tracentm.New("", tracentm.WithLoader(memory.NewLoader(testutils.APlusMachine())))
	require.NoError(t, err)

	rep := eng.Trace(context.Background(), "aaaaaaaaaa", 5)
	assert.Equal(t, domain.VerdictStopped, rep.Verdict)
	assert.Equal(t, 5, rep.Steps)
	assert.Equal(t, 6, rep.TotalConfigurations)
	assert.Equal(t, 6, rep.Depth)
	assert.Empty(t, rep.Path)
}

func TestEngine_WatchAndReload(t *testing.T) {
	dir := t.TempDir()
	path := writeMachine(t, dir, "m.csv", testutils.APlusCSV)

	eng, err := tracentm.New(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := eng.Watch(ctx)
	require.NoError(t, err)

	// Rename the machine; the ID stays "m".
	renamed := "renamed" + testutils.APlusCSV[len("a-plus"):]
	writeMachine(t, dir, "m.csv", renamed)

	select {
	case id := <-changes:
		assert.Equal(t, "m", id)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}

	require.NoError(t, eng.Reload())
	assert.Equal(t, "renamed", eng.Name)
}

func TestEngine_WatchUnsupported(t *testing.T) {
	eng, err := tracentm.New("", tracentm.WithLoader(memory.NewLoader(testutils.APlusMachine())))
	require.NoError(t, err)

	_, err = eng.Watch(context.Background())
	assert.Error(t, err)
}
