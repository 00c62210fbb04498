package service

import (
	"context"
	"log/slog"

	"github.com/hanqiu-dev/dietagent/internal/domain"
	"github.com/hanqiu-dev/dietagent/internal/store"
)

// Energy contributions per gram of each macronutrient (Atwater factors).
const (
	kcalPerGramProtein = 4
	kcalPerGramFat     = 9
	kcalPerGramCarb    = 4
)

// DailyStatistics aggregates one day of diary entries.
type DailyStatistics struct {
	Date              string              `json:"date"`
	TotalCalories     float64             `json:"totalCalories"`
	TotalProtein      float64             `json:"totalProtein"`
	TotalFat          float64             `json:"totalFat"`
	TotalCarbohydrate float64             `json:"totalCarbohydrate"`
	ProteinPercent    float64             `json:"proteinPercent"`
	FatPercent        float64             `json:"fatPercent"`
	CarbPercent       float64             `json:"carbPercent"`
	MealCalories      map[string]float64  `json:"mealCalories"`
	Entries           []*domain.DietEntry `json:"entries"`
}

type DiaryService struct {
	diary  *store.DiaryStore
	logger *slog.Logger
}

func NewDiaryService(diary *store.DiaryStore, logger *slog.Logger) *DiaryService {
	return &DiaryService{diary: diary, logger: logger}
}

// Statistics sums one day's entries and derives the macro energy split.
// Percentages are computed from macro-derived energy, not the logged calorie
// totals, so they always sum to ~100 even when entries carry rounded values.
func (s *DiaryService) Statistics(ctx context.Context, userID int64, date string) (*DailyStatistics, error) {
	entries, err := s.diary.ListByUserDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	stats := &DailyStatistics{
		Date:         date,
		MealCalories: make(map[string]float64),
		Entries:      entries,
	}
	for _, e := range entries {
		stats.TotalCalories += e.Calories
		stats.TotalProtein += e.Protein
		stats.TotalFat += e.Fat
		stats.TotalCarbohydrate += e.Carbohydrate
		stats.MealCalories[e.MealType] += e.Calories
	}

	macroEnergy := stats.TotalProtein*kcalPerGramProtein +
		stats.TotalFat*kcalPerGramFat +
		stats.TotalCarbohydrate*kcalPerGramCarb
	if macroEnergy > 0 {
		stats.ProteinPercent = stats.TotalProtein * kcalPerGramProtein / macroEnergy * 100
		stats.FatPercent = stats.TotalFat * kcalPerGramFat / macroEnergy * 100
		stats.CarbPercent = stats.TotalCarbohydrate * kcalPerGramCarb / macroEnergy * 100
	}
	return stats, nil
}
