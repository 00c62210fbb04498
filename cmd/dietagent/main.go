package main

import (
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/hanqiu-dev/dietagent/internal/advice"
	"github.com/hanqiu-dev/dietagent/internal/config"
	"github.com/hanqiu-dev/dietagent/internal/db"
	"github.com/hanqiu-dev/dietagent/internal/foodai"
	"github.com/hanqiu-dev/dietagent/internal/imagestore"
	"github.com/hanqiu-dev/dietagent/internal/llm"
	"github.com/hanqiu-dev/dietagent/internal/logging"
	"github.com/hanqiu-dev/dietagent/internal/service"
	"github.com/hanqiu-dev/dietagent/internal/store"
	"github.com/hanqiu-dev/dietagent/internal/web"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	foodStore := store.NewFoodStore(database)
	diaryStore := store.NewDiaryStore(database)
	weightStore := store.NewWeightStore(database)
	reportStore := store.NewReportStore(database)

	client := llm.NewClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AITimeout, logger)
	analyzer := foodai.NewAnalyzer(client, logger)

	photos, err := imagestore.New(cfg.PhotoPath)
	if err != nil {
		logger.Error("failed to initialize photo store", "error", err)
		return
	}

	diarySvc := service.NewDiaryService(diaryStore, logger)
	reportSvc := service.NewReportService(diarySvc, reportStore, newAdvisor(cfg, client, logger), logger)

	server := web.NewServer(analyzer, photos, foodStore, diaryStore, weightStore, diarySvc, reportSvc, logger)
	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}

func newAdvisor(cfg *config.Config, client *llm.Client, logger *slog.Logger) advice.Advisor {
	if cfg.AdviceBackend == "llm" && cfg.AIAPIKey != "" {
		logger.Info("using model-backed advice generator")
		return advice.NewModel(client, cfg.AIMaxTokens, cfg.AITemperature, logger)
	}
	logger.Info("using static advice generator")
	return advice.Static{}
}
