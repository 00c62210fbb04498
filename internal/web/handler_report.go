package web

import (
	"encoding/json"
	"net/http"
	"strconv"
)

type generateReportRequest struct {
	UserID int64  `json:"userId"`
	Date   string `json:"date"`
}

func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	var req generateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.UserID == 0 || req.Date == "" {
		writeBadRequest(w, "userId and date are required")
		return
	}

	report, err := s.reports.Generate(r.Context(), req.UserID, req.Date)
	if err != nil {
		s.logger.Error("generate report failed", "user_id", req.UserID, "date", req.Date, "error", err)
		writeFail(w, "failed to generate report")
		return
	}
	writeOK(w, "generated", report)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID, err := strconv.ParseInt(q.Get("userId"), 10, 64)
	if err != nil {
		writeBadRequest(w, "userId is required")
		return
	}
	date := q.Get("date")
	if date == "" {
		writeBadRequest(w, "date is required")
		return
	}

	report, err := s.reports.Get(r.Context(), userID, date)
	if err != nil {
		s.logger.Error("get report failed", "user_id", userID, "date", date, "error", err)
		writeFail(w, "failed to get report")
		return
	}
	if report == nil {
		writeJSON(w, http.StatusNotFound, apiResponse{Code: 404, Message: "report not found"})
		return
	}
	writeOK(w, "ok", report)
}
