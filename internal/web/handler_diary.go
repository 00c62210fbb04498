package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/hanqiu-dev/dietagent/internal/domain"
)

type diaryEntryRequest struct {
	UserID       int64   `json:"userId"`
	Date         string  `json:"date"`
	MealType     string  `json:"mealType"`
	FoodName     string  `json:"foodName"`
	Grams        float64 `json:"grams"`
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein"`
	Fat          float64 `json:"fat"`
	Carbohydrate float64 `json:"carbohydrate"`
}

func (s *Server) handleCreateDiaryEntry(w http.ResponseWriter, r *http.Request) {
	var req diaryEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.UserID == 0 || req.Date == "" || req.FoodName == "" {
		writeBadRequest(w, "userId, date and foodName are required")
		return
	}

	entry, err := s.diary.Create(r.Context(), &domain.DietEntry{
		UserID:       req.UserID,
		Date:         req.Date,
		MealType:     req.MealType,
		FoodName:     req.FoodName,
		Grams:        req.Grams,
		Calories:     req.Calories,
		Protein:      req.Protein,
		Fat:          req.Fat,
		Carbohydrate: req.Carbohydrate,
	})
	if err != nil {
		s.logger.Error("create diary entry failed", "error", err)
		writeFail(w, "failed to create diary entry")
		return
	}
	writeOK(w, "created", entry)
}

// handleListDiary lists a user's entries for one day (?date=) or an
// inclusive range (?from=&to=).
func (s *Server) handleListDiary(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil {
		writeBadRequest(w, "userId is required")
		return
	}

	q := r.URL.Query()
	var entries []*domain.DietEntry
	switch {
	case q.Get("date") != "":
		entries, err = s.diary.ListByUserDate(r.Context(), userID, q.Get("date"))
	case q.Get("from") != "" && q.Get("to") != "":
		entries, err = s.diary.ListByUserRange(r.Context(), userID, q.Get("from"), q.Get("to"))
	default:
		writeBadRequest(w, "date or from/to is required")
		return
	}
	if err != nil {
		s.logger.Error("list diary entries failed", "user_id", userID, "error", err)
		writeFail(w, "failed to list diary entries")
		return
	}
	writeOK(w, "ok", entries)
}

func (s *Server) handleUpdateDiaryEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}

	var req diaryEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	if err := s.diary.Update(r.Context(), &domain.DietEntry{
		ID:           id,
		MealType:     req.MealType,
		FoodName:     req.FoodName,
		Grams:        req.Grams,
		Calories:     req.Calories,
		Protein:      req.Protein,
		Fat:          req.Fat,
		Carbohydrate: req.Carbohydrate,
	}); err != nil {
		s.logger.Error("update diary entry failed", "id", id, "error", err)
		writeFail(w, "failed to update diary entry")
		return
	}
	writeOK(w, "updated", nil)
}

func (s *Server) handleDeleteDiaryEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	if err := s.diary.Delete(r.Context(), id); err != nil {
		s.logger.Error("delete diary entry failed", "id", id, "error", err)
		writeFail(w, "failed to delete diary entry")
		return
	}
	writeOK(w, "deleted", nil)
}

func (s *Server) handleDiaryStatistics(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil {
		writeBadRequest(w, "userId is required")
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		writeBadRequest(w, "date is required")
		return
	}

	stats, err := s.diarySvc.Statistics(r.Context(), userID, date)
	if err != nil {
		s.logger.Error("diary statistics failed", "user_id", userID, "date", date, "error", err)
		writeFail(w, "failed to compute statistics")
		return
	}
	writeOK(w, "ok", stats)
}
