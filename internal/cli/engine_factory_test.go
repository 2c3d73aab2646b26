package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/tracentm/internal/config"
	"github.com/aretw0/tracentm/internal/testutils"
	"github.com/aretw0/tracentm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestDetectLoader(t *testing.T) {
	t.Run("Plain machine files", func(t *testing.T) {
		dir := writeFiles(t, map[string]string{"a.csv": testutils.APlusCSV, "README.md": "# notes"})
		assert.Equal(t, config.LoaderFile, detectLoader(dir))
	})

	t.Run("Markdown only", func(t *testing.T) {
		dir := writeFiles(t, map[string]string{"a.md": "---\nname: a\n---\n"})
		assert.Equal(t, config.LoaderLoam, detectLoader(dir))
	})

	t.Run("Empty or missing directory", func(t *testing.T) {
		assert.Equal(t, config.LoaderFile, detectLoader(t.TempDir()))
		assert.Equal(t, config.LoaderFile, detectLoader(filepath.Join(t.TempDir(), "missing")))
	})
}

func TestOpenLoader(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a-plus.yaml": testutils.APlusYAML})

	loader, err := OpenLoader("", dir)
	require.NoError(t, err)
	ids, err := loader.ListMachines()
	require.NoError(t, err)
	assert.Equal(t, []string{"a-plus"}, ids)

	_, err = OpenLoader("tape", dir)
	assert.ErrorContains(t, err, "unknown machine loader")
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	rep := &domain.Report{ID: "r1", Machine: "a-plus", Input: "aa", Verdict: domain.VerdictAccept}

	mr := miniredis.RunT(t)

	backends := map[string]config.StoreConfig{
		config.StoreMemory: {Backend: config.StoreMemory},
		config.StoreFile:   {Backend: config.StoreFile, Path: t.TempDir()},
		config.StoreRedis:  {Backend: config.StoreRedis, Redis: config.RedisConfig{Addr: mr.Addr()}},
	}

	for name, cfg := range backends {
		t.Run(name, func(t *testing.T) {
			store, closeFn, err := OpenStore(cfg)
			require.NoError(t, err)
			defer func() { assert.NoError(t, closeFn()) }()

			require.NoError(t, store.Save(ctx, rep))
			loaded, err := store.Load(ctx, "r1")
			require.NoError(t, err)
			assert.Equal(t, "aa", loaded.Input)
		})
	}

	t.Run("none", func(t *testing.T) {
		store, closeFn, err := OpenStore(config.StoreConfig{Backend: config.StoreNone})
		require.NoError(t, err)
		assert.Nil(t, store)
		assert.NoError(t, closeFn())
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := OpenStore(config.StoreConfig{Backend: "s3"})
		assert.Error(t, err)
	})
}

func TestExecute(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a-plus.csv": testutils.APlusCSV})

	t.Run("Text output", func(t *testing.T) {
		var out bytes.Buffer
		rep, err := Execute(context.Background(), RunOptions{
			Path:  filepath.Join(dir, "a-plus.csv"),
			Input: "aa",
			Depth: 10,
		}, &out)
		require.NoError(t, err)
		assert.Equal(t, domain.VerdictAccept, rep.Verdict)
		assert.Contains(t, out.String(), "String accepted in 3 steps.")
		assert.Contains(t, out.String(), "Machine Name: a-plus")
	})

	t.Run("Directory with machine flag and save", func(t *testing.T) {
		var out bytes.Buffer
		storeDir := t.TempDir()
		rep, err := Execute(context.Background(), RunOptions{
			Path:      dir,
			MachineID: "a-plus",
			Input:     "b",
			Depth:     10,
			JSON:      true,
			Save:      true,
			StorePath: storeDir,
		}, &out)
		require.NoError(t, err)
		assert.Equal(t, domain.VerdictReject, rep.Verdict)
		assert.Contains(t, out.String(), `"verdict"`)

		_, err = os.Stat(filepath.Join(storeDir, rep.ID+".json"))
		assert.NoError(t, err)
	})

	t.Run("Conflicting output modes", func(t *testing.T) {
		_, err := Execute(context.Background(), RunOptions{Path: dir, JSON: true, Rich: true}, &bytes.Buffer{})
		assert.Error(t, err)
	})

	t.Run("Unknown machine", func(t *testing.T) {
		_, err := Execute(context.Background(), RunOptions{Path: dir, MachineID: "nope"}, &bytes.Buffer{})
		assert.ErrorIs(t, err, domain.ErrMachineNotFound)
	})
}

func TestPrintSystemMessage(t *testing.T) {
	var out bytes.Buffer
	printSystemMessage(&out, "Watching '%s' machine.", "a-plus")
	assert.Equal(t, ">>> Watching 'a-plus' machine.\n", out.String())
}
