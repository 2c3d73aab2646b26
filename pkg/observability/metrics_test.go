package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/tracentm/internal/runtime"
	"github.com/aretw0/tracentm/internal/testutils"
	"github.com/aretw0/tracentm/pkg/domain"
	"github.com/aretw0/tracentm/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics()
	engine := runtime.NewEngine(testutils.APlusMachine(), runtime.WithLifecycleHooks(m.Hooks()))

	engine.Simulate(context.Background(), "aa", 10)
	engine.Simulate(context.Background(), "bbbb", 10)
	engine.Simulate(context.Background(), "aaaaaaaaaa", 3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("a-plus", "accept")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("a-plus", "reject")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("a-plus", "stopped")))

	// "aa" expands levels 0-2, "bbbb" none, the stopped run levels 0-3.
	assert.Equal(t, 7.0, testutil.ToFloat64(m.Levels.WithLabelValues("a-plus")))

	assert.Equal(t, 3, testutil.CollectAndCount(m.Runs))
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics()
	m.Hooks().OnVerdict(context.Background(), verdictEvent())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `tracentm_runs_total{machine="m",verdict="accept"} 1`)
	assert.Contains(t, rec.Body.String(), "tracentm_configurations_explored_count")
}

func TestCombine_CallsAll(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m := observability.NewMetrics()

	hooks := observability.Combine(m.Hooks(), observability.LoggingHooks(logger))
	engine := runtime.NewEngine(testutils.APlusMachine(), runtime.WithLifecycleHooks(hooks))
	engine.Simulate(context.Background(), "a", 10)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("a-plus", "accept")))
	assert.Contains(t, buf.String(), "msg=level_done")
	assert.Contains(t, buf.String(), "msg=verdict")
	assert.Contains(t, buf.String(), "verdict=accept")
}

func verdictEvent() *domain.VerdictEvent {
	return &domain.VerdictEvent{Machine: "m", Verdict: domain.VerdictAccept, Explored: 3, Depth: 2}
}
