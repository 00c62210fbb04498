package web

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// maxUploadSize is the absolute ceiling for an uploaded photo; anything
// larger is rejected before the analysis pipeline ever sees it.
const maxUploadSize = 10 * 1024 * 1024

// handleAnalyzeUpload accepts a multipart photo upload, validates it, runs
// the analysis pipeline, and stores the photo alongside a successful result.
func (s *Server) handleAnalyzeUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeBadRequest(w, "failed to parse form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, "image file required")
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			s.logger.Error("failed to close upload file", "error", err)
		}
	}()

	if header.Size == 0 {
		writeBadRequest(w, "uploaded file is empty")
		return
	}
	if header.Size > maxUploadSize {
		writeBadRequest(w, "image must not exceed 10MB")
		return
	}
	if ct := header.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		writeBadRequest(w, "only image files are supported")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		s.logger.Error("read upload failed", "error", err)
		writeFail(w, "failed to read file")
		return
	}
	if len(data) > maxUploadSize {
		writeBadRequest(w, "image must not exceed 10MB")
		return
	}

	s.analyze(w, r, data)
}

type analyzeRequest struct {
	Base64Image string `json:"base64Image"`
	UserID      int64  `json:"userId"`
}

// handleAnalyzeBase64 accepts an already base64-encoded photo.
func (s *Server) handleAnalyzeBase64(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Base64Image) == "" {
		writeBadRequest(w, "image data must not be empty")
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Base64Image)
	if err != nil {
		writeBadRequest(w, "image data is not valid base64")
		return
	}
	if len(data) > maxUploadSize {
		writeBadRequest(w, "image must not exceed 10MB")
		return
	}

	s.analyze(w, r, data)
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request, data []byte) {
	result := s.analyzer.AnalyzeImage(r.Context(), data)
	if !result.Success {
		s.logger.Error("food analysis failed", "error", result.ErrorMessage)
		writeFail(w, "分析失败: "+result.ErrorMessage)
		return
	}

	// Best effort: the analysis result stands even if the photo cannot be
	// archived.
	if key, err := s.photos.Save("food", data); err != nil {
		s.logger.Error("failed to save analyzed photo", "error", err)
	} else {
		result.ImageURL = "/api/ai/photos/" + key
	}

	s.logger.Info("food analysis succeeded", "food", result.Food.Name)
	writeOK(w, "分析成功", result)
}

func (s *Server) handleGetPhoto(w http.ResponseWriter, r *http.Request) {
	data, err := s.photos.Open(r.PathValue("key"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(data))
	if _, err := w.Write(data); err != nil {
		s.logger.Error("write photo failed", "error", err)
	}
}
