package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/tracentm/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunWatch_RerunsOnChange(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a-plus.csv": testutils.APlusCSV})
	path := filepath.Join(dir, "a-plus.csv")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() {
		done <- RunWatch(ctx, RunOptions{Path: path, Input: "aa", Depth: 10}, out)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Waiting for changes...")
	}, 5*time.Second, 20*time.Millisecond)
	assert.Contains(t, out.String(), "String accepted in 3 steps.")

	// Without the blank rule every branch dies on the blank.
	noBlank := strings.Replace(testutils.APlusCSV, "q1,_,qacc,_,R\n", "", 1)
	require.NoError(t, os.WriteFile(path, []byte(noBlank), 0644))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "String rejected in 2 steps.")
	}, 5*time.Second, 20*time.Millisecond)
	assert.Contains(t, out.String(), ">>> Change detected in 'a-plus'.")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRunWatch_MissingMachine(t *testing.T) {
	err := RunWatch(context.Background(), RunOptions{Path: filepath.Join(t.TempDir(), "missing.csv")}, &bytes.Buffer{})
	assert.Error(t, err)
}
