package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hanqiu-dev/dietagent/internal/domain"
)

type ReportStore struct {
	db *sql.DB
}

func NewReportStore(db *sql.DB) *ReportStore {
	return &ReportStore{db: db}
}

// Upsert saves a report; regenerating for the same user and day replaces
// the previous report.
func (s *ReportStore) Upsert(ctx context.Context, r *domain.NutritionReport) (*domain.NutritionReport, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO nutrition_reports
			(user_id, report_date, total_calories, total_protein, total_fat, total_carbohydrate, score, advice)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, report_date)
		DO UPDATE SET
			total_calories = excluded.total_calories,
			total_protein = excluded.total_protein,
			total_fat = excluded.total_fat,
			total_carbohydrate = excluded.total_carbohydrate,
			score = excluded.score,
			advice = excluded.advice
	`, r.UserID, r.Date, r.TotalCalories, r.TotalProtein, r.TotalFat, r.TotalCarbohydrate, r.Score, r.Advice)
	if err != nil {
		return nil, fmt.Errorf("upsert nutrition report: %w", err)
	}
	return s.GetByUserDate(ctx, r.UserID, r.Date)
}

func (s *ReportStore) GetByUserDate(ctx context.Context, userID int64, date string) (*domain.NutritionReport, error) {
	r := &domain.NutritionReport{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, report_date, total_calories, total_protein, total_fat, total_carbohydrate, score, advice, created_at
		FROM nutrition_reports WHERE user_id = ? AND report_date = ?
	`, userID, date).Scan(&r.ID, &r.UserID, &r.Date, &r.TotalCalories, &r.TotalProtein,
		&r.TotalFat, &r.TotalCarbohydrate, &r.Score, &r.Advice, &r.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get nutrition report: %w", err)
	}
	return r, nil
}
