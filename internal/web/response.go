package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// apiResponse is the envelope every endpoint returns. Business failures use
// HTTP 200 with a non-200 envelope code, matching what the mobile client
// expects; only malformed requests get HTTP-level error statuses.
type apiResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeOK(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, apiResponse{Code: 200, Message: message, Data: data})
}

func writeFail(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, apiResponse{Code: 500, Message: message})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, apiResponse{Code: 400, Message: message})
}
