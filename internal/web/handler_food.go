package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/hanqiu-dev/dietagent/internal/domain"
)

type foodRequest struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein"`
	Fat          float64 `json:"fat"`
	Carbohydrate float64 `json:"carbohydrate"`
	Unit         string  `json:"unit"`
}

func (s *Server) handleCreateFood(w http.ResponseWriter, r *http.Request) {
	var req foodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		writeBadRequest(w, "name is required")
		return
	}

	food, err := s.foods.Create(r.Context(), &domain.Food{
		Name:         req.Name,
		Category:     req.Category,
		Calories:     req.Calories,
		Protein:      req.Protein,
		Fat:          req.Fat,
		Carbohydrate: req.Carbohydrate,
		Unit:         req.Unit,
	})
	if err != nil {
		s.logger.Error("create food failed", "error", err)
		writeFail(w, "failed to create food")
		return
	}
	writeOK(w, "created", food)
}

func (s *Server) handleSearchFoods(w http.ResponseWriter, r *http.Request) {
	foods, err := s.foods.Search(r.Context(), r.URL.Query().Get("q"), r.URL.Query().Get("category"))
	if err != nil {
		s.logger.Error("search foods failed", "error", err)
		writeFail(w, "failed to search foods")
		return
	}
	writeOK(w, "ok", foods)
}

func (s *Server) handleGetFood(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}

	food, err := s.foods.GetByID(r.Context(), id)
	if err != nil {
		s.logger.Error("get food failed", "id", id, "error", err)
		writeFail(w, "failed to get food")
		return
	}
	if food == nil {
		writeJSON(w, http.StatusNotFound, apiResponse{Code: 404, Message: "food not found"})
		return
	}
	writeOK(w, "ok", food)
}

func (s *Server) handleUpdateFood(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}

	var req foodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	if err := s.foods.Update(r.Context(), &domain.Food{
		ID:           id,
		Name:         req.Name,
		Category:     req.Category,
		Calories:     req.Calories,
		Protein:      req.Protein,
		Fat:          req.Fat,
		Carbohydrate: req.Carbohydrate,
		Unit:         req.Unit,
	}); err != nil {
		s.logger.Error("update food failed", "id", id, "error", err)
		writeFail(w, "failed to update food")
		return
	}
	writeOK(w, "updated", nil)
}

func (s *Server) handleDeleteFood(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	if err := s.foods.Delete(r.Context(), id); err != nil {
		s.logger.Error("delete food failed", "id", id, "error", err)
		writeFail(w, "failed to delete food")
		return
	}
	writeOK(w, "deleted", nil)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
