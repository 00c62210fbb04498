package web

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoodCRUD(t *testing.T) {
	s := newTestServer(t, &stubAnalyzer{})

	status, resp := doJSON(t, s, http.MethodPost, "/api/foods", map[string]any{
		"name": "米饭", "category": "主食", "calories": 130.0, "unit": "碗",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 200, resp.Code)
	id := dataField(t, resp)["id"].(float64)
	require.NotZero(t, id)

	status, resp = doJSON(t, s, http.MethodGet, "/api/foods/1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "米饭", dataField(t, resp)["name"])

	status, resp = doJSON(t, s, http.MethodPut, "/api/foods/1", map[string]any{
		"name": "米饭", "category": "主食", "calories": 116.0, "unit": "碗",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 200, resp.Code)

	_, resp = doJSON(t, s, http.MethodGet, "/api/foods/1", nil)
	assert.Equal(t, 116.0, dataField(t, resp)["calories"])

	status, resp = doJSON(t, s, http.MethodDelete, "/api/foods/1", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 200, resp.Code)

	status, resp = doJSON(t, s, http.MethodGet, "/api/foods/1", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, 404, resp.Code)
}

func TestCreateFoodValidation(t *testing.T) {
	s := newTestServer(t, &stubAnalyzer{})

	status, resp := doJSON(t, s, http.MethodPost, "/api/foods", map[string]any{"category": "主食"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 400, resp.Code)
	assert.Contains(t, resp.Message, "name")
}

func TestSearchFoods(t *testing.T) {
	s := newTestServer(t, &stubAnalyzer{})

	for _, f := range []map[string]any{
		{"name": "米饭", "category": "主食"},
		{"name": "糙米饭", "category": "主食"},
		{"name": "牛肉", "category": "肉类"},
	} {
		status, _ := doJSON(t, s, http.MethodPost, "/api/foods", f)
		require.Equal(t, http.StatusOK, status)
	}

	status, resp := doJSON(t, s, http.MethodGet, "/api/foods?q=米饭", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, resp.Data, 2)

	status, resp = doJSON(t, s, http.MethodGet, "/api/foods?category=肉类", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, resp.Data, 1)
}

func TestFoodInvalidID(t *testing.T) {
	s := newTestServer(t, &stubAnalyzer{})

	status, resp := doJSON(t, s, http.MethodGet, "/api/foods/abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 400, resp.Code)
}
