package main

import (
	"context"
	"os"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkrank/doodle/chart"
	"github.com/inkrank/doodle/classifier"
	"github.com/inkrank/doodle/config"
	"github.com/inkrank/doodle/encoding/tensor"
	"github.com/inkrank/doodle/labels"
	"github.com/inkrank/doodle/log"
)

func TestMain(m *testing.M) {
	log.Silence()
	os.Exit(m.Run())
}

func testServer(t *testing.T, load bool) (*ApiServer, http.Handler) {
	t.Helper()
	names := labels.Default()
	backend := classifier.BackendFunc(func(context.Context, *tensor.Tensor) ([]float32, error) {
		probs := make([]float32, len(names))
		probs[7] = 0.9
		probs[3] = 0.1
		return probs, nil
	})
	model := classifier.NewModel(backend, names)
	if load {
		require.NoError(t, model.Load(context.Background()))
	}
	cfg := config.Default()
	cfg.Debounce = 10 * time.Millisecond
	s := NewApiServer(cfg, model)
	t.Cleanup(s.Close)
	return s, s.routes()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServerDrawAndPredict(t *testing.T) {
	_, h := testServer(t, true)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/pointer/down", `{"x":50,"y":50}`).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/pointer/move", `{"x":150,"y":120}`).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/pointer/up", "").Code)

	assert.Eventually(t, func() bool {
		rec := do(t, h, http.MethodGet, "/api/chart", "")
		var resp struct {
			Data chart.Chart `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			return false
		}
		return resp.Data.Visible && resp.Data.Legend[0].Label == labels.Default()[7]
	}, time.Second, 10*time.Millisecond)

	rec := do(t, h, http.MethodGet, "/api/bbox", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"minX":30`)

	rec = do(t, h, http.MethodGet, "/api/canvas.png", "")
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\x89PNG"))
}

func TestServerUndoClear(t *testing.T) {
	_, h := testServer(t, true)

	rec := do(t, h, http.MethodPost, "/api/undo", "")
	assert.JSONEq(t, `{"data":{"applied":false}}`, rec.Body.String())

	do(t, h, http.MethodPost, "/api/pointer/down", `{"x":10,"y":10}`)
	do(t, h, http.MethodPost, "/api/pointer/up", "")
	rec = do(t, h, http.MethodPost, "/api/undo", "")
	assert.JSONEq(t, `{"data":{"applied":true}}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/clear", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/bbox", "").Code)
}

func TestServerBadRequests(t *testing.T) {
	_, h := testServer(t, true)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/pointer/down", `{"x":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/pointer/move", `nope`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/api/pointer/hover", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodGet, "/api/undo", "").Code)
}

func TestServerHealth(t *testing.T) {
	_, h := testServer(t, false)
	assert.Equal(t, http.StatusServiceUnavailable, do(t, h, http.MethodGet, "/health", "").Code)

	_, h = testServer(t, true)
	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/version", "")
	assert.Contains(t, rec.Body.String(), `"version"`)
}
