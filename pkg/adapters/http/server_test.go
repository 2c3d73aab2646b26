package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/tracentm/internal/testutils"
	"github.com/aretw0/tracentm/pkg/adapters/memory"
	"github.com/aretw0/tracentm/pkg/domain"
	"github.com/aretw0/tracentm/pkg/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, withStore bool) http.Handler {
	t.Helper()
	loader, err := memory.NewFromDefinitions(testutils.APlusDefinition(), testutils.ForkDefinition())
	require.NoError(t, err)

	var opts []service.Option
	if withStore {
		opts = append(opts, service.WithStore(memory.NewStore()))
	}
	svc := service.New(loader, append(opts, service.WithDepthLimit(50))...)

	handlerOpts := []Option{}
	if withStore {
		handlerOpts = append(handlerOpts, WithReports(svc))
	}
	return NewHandler(svc, handlerOpts...)
}

func postSimulate(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/simulate", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestSimulate(t *testing.T) {
	h := newTestHandler(t, false)

	w := postSimulate(t, h, `{"machine":"a-plus","input":"aaaaa","max_depth":10}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rep domain.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Equal(t, domain.VerdictAccept, rep.Verdict)
	assert.Equal(t, 6, rep.Steps)
	assert.Equal(t, 7, rep.TotalConfigurations)
}

func TestSimulate_DefaultDepth(t *testing.T) {
	h := newTestHandler(t, false)

	w := postSimulate(t, h, `{"machine":"a-plus","input":"aaaaaaaaaaaaaaa"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var rep domain.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Equal(t, domain.VerdictStopped, rep.Verdict)
	assert.Equal(t, domain.DefaultMaxDepth, rep.Steps)
}

func TestSimulate_ConfiguredDefaultDepth(t *testing.T) {
	loader, err := memory.NewFromDefinitions(testutils.APlusDefinition())
	require.NoError(t, err)
	h := NewHandler(service.New(loader), WithDefaultDepth(2))

	w := postSimulate(t, h, `{"machine":"a-plus","input":"aaaaa"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var rep domain.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Equal(t, domain.VerdictStopped, rep.Verdict)
	assert.Equal(t, 2, rep.Steps)
}

func TestSimulate_Errors(t *testing.T) {
	h := newTestHandler(t, false)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"malformed", `{`, http.StatusBadRequest},
		{"missing machine", `{"input":"a"}`, http.StatusBadRequest},
		{"unknown machine", `{"machine":"nope","input":"a"}`, http.StatusNotFound},
		{"depth over limit", `{"machine":"a-plus","input":"a","max_depth":51}`, http.StatusBadRequest},
		{"control characters", `{"machine":"a-plus","input":"a\u001b"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postSimulate(t, h, tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
}

func TestMachines(t *testing.T) {
	h := newTestHandler(t, false)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/machines", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["a-plus","fork"]`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/machines/fork", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var def domain.Definition
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &def))
	assert.Equal(t, "fork", def.Name)
	assert.Len(t, def.Transitions, 3)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/machines/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReports(t *testing.T) {
	h := newTestHandler(t, true)

	w := postSimulate(t, h, `{"machine":"a-plus","input":"bbbb"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var rep domain.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/reports", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["`+rep.ID+`"]`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/reports/"+rep.ID, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"verdict":"reject"`)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("DELETE", "/reports/"+rep.ID, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/reports/"+rep.ID, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReports_NoStore(t *testing.T) {
	h := newTestHandler(t, false)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/reports", nil))
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestOpenAPI(t *testing.T) {
	doc, err := GetSwagger()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", doc.Info.Version)
	assert.NotNil(t, doc.Paths.Find("/simulate"))

	h := newTestHandler(t, false)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/openapi.yaml", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "operationId: simulate")

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/info", nil))
	assert.Contains(t, w.Body.String(), `"api_version":"1.0.0"`)
}

func TestMetricsRoute(t *testing.T) {
	loader := memory.NewLoader(testutils.APlusMachine())
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tracentm_runs_total 0\n"))
	})
	h := NewHandler(service.New(loader), WithMetrics(metrics))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tracentm_runs_total")
}

func TestSubscribeEvents(t *testing.T) {
	h := newTestHandler(t, false)

	ctx, cancel := context.WithCancel(context.Background())
	pr, pw := newPipeWriter()
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.ServeHTTP(pw, httptest.NewRequest("GET", "/events?machine=a-plus", nil).WithContext(ctx))
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(pr.String(), "data: connected")
	}, time.Second, 10*time.Millisecond)

	postSimulate(t, h, `{"machine":"fork","input":"a"}`)
	postSimulate(t, h, `{"machine":"a-plus","input":"aa"}`)

	require.Eventually(t, func() bool {
		return strings.Contains(pr.String(), "event: report")
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done

	body := pr.String()
	assert.Contains(t, body, `"machine":"a-plus"`)
	assert.NotContains(t, body, `"machine":"fork"`)
}

// pipeWriter is a concurrency-safe http.ResponseWriter for streaming handlers.
type pipeWriter struct {
	header http.Header
	buf    *lockedBuffer
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newPipeWriter() (*lockedBuffer, *pipeWriter) {
	buf := &lockedBuffer{}
	return buf, &pipeWriter{header: make(http.Header), buf: buf}
}

func (w *pipeWriter) Header() http.Header         { return w.header }
func (w *pipeWriter) Write(p []byte) (int, error) { return w.buf.Write(p) }
func (w *pipeWriter) WriteHeader(int)             {}
func (w *pipeWriter) Flush()                      {}
