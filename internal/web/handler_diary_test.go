package web

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postDiaryEntry(t *testing.T, s *Server, body map[string]any) apiResponse {
	t.Helper()
	status, resp := doJSON(t, s, http.MethodPost, "/api/diary", body)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 200, resp.Code)
	return resp
}

func TestDiaryCreateAndList(t *testing.T) {
	s := newTestServer(t, &stubAnalyzer{})

	postDiaryEntry(t, s, map[string]any{
		"userId": 1, "date": "2025-06-01", "mealType": "breakfast",
		"foodName": "豆浆", "grams": 250.0, "calories": 80.0,
	})
	postDiaryEntry(t, s, map[string]any{
		"userId": 1, "date": "2025-06-01", "mealType": "lunch",
		"foodName": "米饭", "grams": 200.0, "calories": 260.0,
	})
	postDiaryEntry(t, s, map[string]any{
		"userId": 1, "date": "2025-06-02", "mealType": "lunch",
		"foodName": "面条", "calories": 300.0,
	})

	status, resp := doJSON(t, s, http.MethodGet, "/api/diary?userId=1&date=2025-06-01", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, resp.Data, 2)

	status, resp = doJSON(t, s, http.MethodGet, "/api/diary?userId=1&from=2025-06-01&to=2025-06-02", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, resp.Data, 3)
}

func TestDiaryListValidation(t *testing.T) {
	s := newTestServer(t, &stubAnalyzer{})

	status, _ := doJSON(t, s, http.MethodGet, "/api/diary?date=2025-06-01", nil)
	assert.Equal(t, http.StatusBadRequest, status, "missing userId")

	status, _ = doJSON(t, s, http.MethodGet, "/api/diary?userId=1", nil)
	assert.Equal(t, http.StatusBadRequest, status, "missing date and range")
}

func TestDiaryCreateValidation(t *testing.T) {
	s := newTestServer(t, &stubAnalyzer{})

	status, resp := doJSON(t, s, http.MethodPost, "/api/diary", map[string]any{
		"userId": 1, "date": "2025-06-01",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 400, resp.Code)
}

func TestDiaryUpdateAndDelete(t *testing.T) {
	s := newTestServer(t, &stubAnalyzer{})

	resp := postDiaryEntry(t, s, map[string]any{
		"userId": 1, "date": "2025-06-01", "mealType": "dinner",
		"foodName": "米饭", "calories": 130.0,
	})
	require.Equal(t, 1.0, dataField(t, resp)["id"])

	status, resp := doJSON(t, s, http.MethodPut, "/api/diary/1", map[string]any{
		"mealType": "dinner", "foodName": "米饭", "grams": 200.0, "calories": 260.0,
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 200, resp.Code)

	_, resp = doJSON(t, s, http.MethodGet, "/api/diary?userId=1&date=2025-06-01", nil)
	entries := resp.Data.([]any)
	require.Len(t, entries, 1)
	assert.Equal(t, 260.0, entries[0].(map[string]any)["calories"])

	status, resp = doJSON(t, s, http.MethodDelete, "/api/diary/1", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 200, resp.Code)

	_, resp = doJSON(t, s, http.MethodGet, "/api/diary?userId=1&date=2025-06-01", nil)
	assert.Empty(t, resp.Data)
}

func TestDiaryStatisticsEndpoint(t *testing.T) {
	s := newTestServer(t, &stubAnalyzer{})

	postDiaryEntry(t, s, map[string]any{
		"userId": 1, "date": "2025-06-01", "mealType": "lunch",
		"foodName": "米饭", "calories": 260.0, "protein": 5.2, "fat": 0.6, "carbohydrate": 56.0,
	})

	status, resp := doJSON(t, s, http.MethodGet, "/api/diary/statistics?userId=1&date=2025-06-01", nil)
	require.Equal(t, http.StatusOK, status)

	stats := dataField(t, resp)
	assert.Equal(t, 260.0, stats["totalCalories"])
	assert.Equal(t, 56.0, stats["totalCarbohydrate"])
	meals := stats["mealCalories"].(map[string]any)
	assert.Equal(t, 260.0, meals["lunch"])
}
