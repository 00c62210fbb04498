package web

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightUpsertComputesBMI(t *testing.T) {
	s := newTestServer(t, &stubAnalyzer{})

	status, resp := doJSON(t, s, http.MethodPost, "/api/weight", map[string]any{
		"userId": 1, "date": "2025-06-01", "weightKg": 70.0, "heightCm": 175.0,
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 200, resp.Code)

	record := dataField(t, resp)
	assert.InDelta(t, 22.86, record["bmi"].(float64), 0.01)
}

func TestWeightUpsertWithoutHeightOmitsBMI(t *testing.T) {
	s := newTestServer(t, &stubAnalyzer{})

	status, resp := doJSON(t, s, http.MethodPost, "/api/weight", map[string]any{
		"userId": 1, "date": "2025-06-01", "weightKg": 70.0,
	})
	require.Equal(t, http.StatusOK, status)

	_, hasBMI := dataField(t, resp)["bmi"]
	assert.False(t, hasBMI)
}

func TestWeightUpsertValidation(t *testing.T) {
	s := newTestServer(t, &stubAnalyzer{})

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing userId", map[string]any{"date": "2025-06-01", "weightKg": 70.0}},
		{"missing date", map[string]any{"userId": 1, "weightKg": 70.0}},
		{"non-positive weight", map[string]any{"userId": 1, "date": "2025-06-01", "weightKg": 0.0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := doJSON(t, s, http.MethodPost, "/api/weight", tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, 400, resp.Code)
		})
	}
}

func TestWeightTrend(t *testing.T) {
	s := newTestServer(t, &stubAnalyzer{})

	for _, day := range []string{"2025-06-03", "2025-06-01", "2025-06-02"} {
		status, _ := doJSON(t, s, http.MethodPost, "/api/weight", map[string]any{
			"userId": 1, "date": day, "weightKg": 70.0,
		})
		require.Equal(t, http.StatusOK, status)
	}

	status, resp := doJSON(t, s, http.MethodGet, "/api/weight/trend?userId=1&from=2025-06-01&to=2025-06-30", nil)
	require.Equal(t, http.StatusOK, status)

	records := resp.Data.([]any)
	require.Len(t, records, 3)
	assert.Equal(t, "2025-06-01", records[0].(map[string]any)["date"])
	assert.Equal(t, "2025-06-03", records[2].(map[string]any)["date"])
}

func TestWeightTrendValidation(t *testing.T) {
	s := newTestServer(t, &stubAnalyzer{})

	status, _ := doJSON(t, s, http.MethodGet, "/api/weight/trend?userId=1", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestWeightDelete(t *testing.T) {
	s := newTestServer(t, &stubAnalyzer{})

	status, resp := doJSON(t, s, http.MethodPost, "/api/weight", map[string]any{
		"userId": 1, "date": "2025-06-01", "weightKg": 70.0,
	})
	require.Equal(t, http.StatusOK, status)
	id := dataField(t, resp)["id"].(float64)

	status, resp = doJSON(t, s, http.MethodDelete, "/api/weight/1", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 200, resp.Code)
	require.Equal(t, 1.0, id)

	status, resp = doJSON(t, s, http.MethodGet, "/api/weight/trend?userId=1&from=2025-06-01&to=2025-06-30", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, resp.Data)
}
