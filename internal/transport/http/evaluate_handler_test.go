package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"housecli/internal/config"
	"housecli/pkg/contracts/api"
)

func testConfig() *config.Config {
	return &config.Config{
		Pipeline: config.PipelineConfig{
			TargetColumn:   "Price",
			TrainFraction:  0.8,
			MaxCardinality: 10,
			SplitSeed:      7,
			Trees:          5,
			ForestSeed:     0,
		},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// writeHousingCSV writes a small dataset with a missing numeric cell and a
// categorical column.
func writeHousingCSV(t *testing.T) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("Rooms,Landsize,Type,Price\n")
	for i := 0; i < 40; i++ {
		rooms := 1 + i%5
		landsize := strconv.Itoa(100 + 10*i)
		if i%9 == 0 {
			landsize = ""
		}
		typ := "h"
		if i%2 == 0 {
			typ = "u"
		}
		price := 150000*rooms + 1000*i
		b.WriteString(strconv.Itoa(rooms) + "," + landsize + "," + typ + "," + strconv.Itoa(price) + "\n")
	}
	path := filepath.Join(t.TempDir(), "housing.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func postEvaluate(t *testing.T, handler *EvaluateHandler, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluate", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)
	return rec
}

func TestEvaluateHandlerScoresApproach(t *testing.T) {
	handler := NewEvaluateHandler(testConfig(), testLogger())
	path := writeHousingCSV(t)

	rec := postEvaluate(t, handler, api.EvaluateRequest{DatasetPath: path, Approach: "mean"})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp api.EvaluateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "mean", resp.Approach)
	assert.NotEmpty(t, resp.RunID)
	assert.Greater(t, resp.MAE, 0.0)
	assert.Equal(t, 32, resp.Rows)
}

func TestEvaluateHandlerCompositeApproach(t *testing.T) {
	handler := NewEvaluateHandler(testConfig(), testLogger())
	path := writeHousingCSV(t)

	rec := postEvaluate(t, handler, api.EvaluateRequest{DatasetPath: path, Approach: "composite"})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp api.EvaluateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// numeric columns plus the one-hot expansion of Type
	assert.GreaterOrEqual(t, resp.Columns, 4)
}

func TestEvaluateHandlerRejectsMalformedBody(t *testing.T) {
	handler := NewEvaluateHandler(testConfig(), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluate", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEvaluateHandlerValidatesRequest(t *testing.T) {
	handler := NewEvaluateHandler(testConfig(), testLogger())

	tests := []struct {
		name string
		body api.EvaluateRequest
	}{
		{name: "missing_path", body: api.EvaluateRequest{Approach: "mean"}},
		{name: "unknown_approach", body: api.EvaluateRequest{DatasetPath: "x.csv", Approach: "median"}},
		{name: "negative_trees", body: api.EvaluateRequest{DatasetPath: "x.csv", Approach: "mean", Trees: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postEvaluate(t, handler, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestEvaluateHandlerDatasetNotFound(t *testing.T) {
	handler := NewEvaluateHandler(testConfig(), testLogger())

	rec := postEvaluate(t, handler, api.EvaluateRequest{
		DatasetPath: filepath.Join(t.TempDir(), "absent.csv"),
		Approach:    "mean",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "DATASET_NOT_FOUND")
}

func TestRouterServesHealthAndMetrics(t *testing.T) {
	router := NewRouter(testConfig(), testLogger())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var health api.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
