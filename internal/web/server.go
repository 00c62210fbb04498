package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hanqiu-dev/dietagent/internal/domain"
	"github.com/hanqiu-dev/dietagent/internal/imagestore"
	"github.com/hanqiu-dev/dietagent/internal/service"
	"github.com/hanqiu-dev/dietagent/internal/store"
)

// FoodAnalyzer is the analysis-pipeline seam; it always returns a result
// value, never an error.
type FoodAnalyzer interface {
	AnalyzeImage(ctx context.Context, raw []byte) domain.FoodAnalysis
}

type Server struct {
	analyzer FoodAnalyzer
	photos   *imagestore.Store
	foods    *store.FoodStore
	diary    *store.DiaryStore
	weights  *store.WeightStore
	diarySvc *service.DiaryService
	reports  *service.ReportService
	mux      *http.ServeMux
	logger   *slog.Logger
}

func NewServer(
	analyzer FoodAnalyzer,
	photos *imagestore.Store,
	foods *store.FoodStore,
	diary *store.DiaryStore,
	weights *store.WeightStore,
	diarySvc *service.DiaryService,
	reports *service.ReportService,
	logger *slog.Logger,
) *Server {
	s := &Server{
		analyzer: analyzer,
		photos:   photos,
		foods:    foods,
		diary:    diary,
		weights:  weights,
		diarySvc: diarySvc,
		reports:  reports,
		mux:      http.NewServeMux(),
		logger:   logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, "ok", nil)
	})

	s.mux.HandleFunc("POST /api/ai/analyze-food/upload", s.handleAnalyzeUpload)
	s.mux.HandleFunc("POST /api/ai/analyze-food", s.handleAnalyzeBase64)
	s.mux.HandleFunc("GET /api/ai/photos/{key}", s.handleGetPhoto)

	s.mux.HandleFunc("POST /api/foods", s.handleCreateFood)
	s.mux.HandleFunc("GET /api/foods", s.handleSearchFoods)
	s.mux.HandleFunc("GET /api/foods/{id}", s.handleGetFood)
	s.mux.HandleFunc("PUT /api/foods/{id}", s.handleUpdateFood)
	s.mux.HandleFunc("DELETE /api/foods/{id}", s.handleDeleteFood)

	s.mux.HandleFunc("POST /api/diary", s.handleCreateDiaryEntry)
	s.mux.HandleFunc("GET /api/diary", s.handleListDiary)
	s.mux.HandleFunc("PUT /api/diary/{id}", s.handleUpdateDiaryEntry)
	s.mux.HandleFunc("DELETE /api/diary/{id}", s.handleDeleteDiaryEntry)
	s.mux.HandleFunc("GET /api/diary/statistics", s.handleDiaryStatistics)

	s.mux.HandleFunc("POST /api/weight", s.handleUpsertWeight)
	s.mux.HandleFunc("GET /api/weight/trend", s.handleWeightTrend)
	s.mux.HandleFunc("DELETE /api/weight/{id}", s.handleDeleteWeight)

	s.mux.HandleFunc("POST /api/reports/generate", s.handleGenerateReport)
	s.mux.HandleFunc("GET /api/reports", s.handleGetReport)
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:    addr,
		Handler: s,
		// Generous read/write budgets: one request may hold two sequential
		// model calls with 30s/60s transport timeouts each.
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}
