package service

import (
	"context"
	"log/slog"

	"github.com/hanqiu-dev/dietagent/internal/advice"
	"github.com/hanqiu-dev/dietagent/internal/domain"
	"github.com/hanqiu-dev/dietagent/internal/store"
)

// Daily intake target bands used for the report score. One band per
// dimension; each dimension inside its band earns 25 points.
const (
	targetCaloriesLow  = 1500.0
	targetCaloriesHigh = 2500.0
	targetProteinLow   = 50.0
	targetProteinHigh  = 120.0
	targetFatLow       = 40.0
	targetFatHigh      = 90.0
	targetCarbLow      = 150.0
	targetCarbHigh     = 350.0
)

type ReportService struct {
	diary   *DiaryService
	reports *store.ReportStore
	advisor advice.Advisor
	logger  *slog.Logger
}

func NewReportService(diary *DiaryService, reports *store.ReportStore, advisor advice.Advisor, logger *slog.Logger) *ReportService {
	if advisor == nil {
		panic("service: nil advisor")
	}
	return &ReportService{diary: diary, reports: reports, advisor: advisor, logger: logger}
}

// Generate builds, scores, and stores the nutrition report for one user-day,
// replacing any previous report for that day.
func (s *ReportService) Generate(ctx context.Context, userID int64, date string) (*domain.NutritionReport, error) {
	stats, err := s.diary.Statistics(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	report := &domain.NutritionReport{
		UserID:            userID,
		Date:              date,
		TotalCalories:     stats.TotalCalories,
		TotalProtein:      stats.TotalProtein,
		TotalFat:          stats.TotalFat,
		TotalCarbohydrate: stats.TotalCarbohydrate,
	}
	report.Score = score(report)
	report.Advice = s.advisor.DailyAdvice(ctx, report)

	saved, err := s.reports.Upsert(ctx, report)
	if err != nil {
		return nil, err
	}
	s.logger.Info("nutrition report generated", "user_id", userID, "date", date, "score", saved.Score)
	return saved, nil
}

// Get returns the stored report for a user-day, or nil when none exists.
func (s *ReportService) Get(ctx context.Context, userID int64, date string) (*domain.NutritionReport, error) {
	return s.reports.GetByUserDate(ctx, userID, date)
}

func score(r *domain.NutritionReport) int {
	total := 0
	if r.TotalCalories >= targetCaloriesLow && r.TotalCalories <= targetCaloriesHigh {
		total += 25
	}
	if r.TotalProtein >= targetProteinLow && r.TotalProtein <= targetProteinHigh {
		total += 25
	}
	if r.TotalFat >= targetFatLow && r.TotalFat <= targetFatHigh {
		total += 25
	}
	if r.TotalCarbohydrate >= targetCarbLow && r.TotalCarbohydrate <= targetCarbHigh {
		total += 25
	}
	return total
}
