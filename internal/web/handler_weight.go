package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/hanqiu-dev/dietagent/internal/domain"
)

type weightRequest struct {
	UserID   int64   `json:"userId"`
	Date     string  `json:"date"`
	WeightKg float64 `json:"weightKg"`
	HeightCm float64 `json:"heightCm"`
	Note     string  `json:"note"`
}

type weightRecordView struct {
	*domain.WeightRecord
	BMI float64 `json:"bmi,omitempty"`
}

func (s *Server) handleUpsertWeight(w http.ResponseWriter, r *http.Request) {
	var req weightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.UserID == 0 || req.Date == "" || req.WeightKg <= 0 {
		writeBadRequest(w, "userId, date and a positive weightKg are required")
		return
	}

	record, err := s.weights.Upsert(r.Context(), &domain.WeightRecord{
		UserID:   req.UserID,
		Date:     req.Date,
		WeightKg: req.WeightKg,
		HeightCm: req.HeightCm,
		Note:     req.Note,
	})
	if err != nil {
		s.logger.Error("upsert weight record failed", "error", err)
		writeFail(w, "failed to save weight record")
		return
	}
	writeOK(w, "saved", viewWeight(record))
}

func (s *Server) handleWeightTrend(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID, err := strconv.ParseInt(q.Get("userId"), 10, 64)
	if err != nil {
		writeBadRequest(w, "userId is required")
		return
	}
	from, to := q.Get("from"), q.Get("to")
	if from == "" || to == "" {
		writeBadRequest(w, "from and to are required")
		return
	}

	records, err := s.weights.ListByUserRange(r.Context(), userID, from, to)
	if err != nil {
		s.logger.Error("weight trend failed", "user_id", userID, "error", err)
		writeFail(w, "failed to load weight trend")
		return
	}

	views := make([]weightRecordView, 0, len(records))
	for _, rec := range records {
		views = append(views, viewWeight(rec))
	}
	writeOK(w, "ok", views)
}

func (s *Server) handleDeleteWeight(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	if err := s.weights.Delete(r.Context(), id); err != nil {
		s.logger.Error("delete weight record failed", "id", id, "error", err)
		writeFail(w, "failed to delete weight record")
		return
	}
	writeOK(w, "deleted", nil)
}

// viewWeight derives BMI when the record carries a height.
func viewWeight(r *domain.WeightRecord) weightRecordView {
	v := weightRecordView{WeightRecord: r}
	if r.HeightCm > 0 {
		meters := r.HeightCm / 100
		v.BMI = r.WeightKg / (meters * meters)
	}
	return v
}
