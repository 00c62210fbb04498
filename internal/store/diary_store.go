package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/hanqiu-dev/dietagent/internal/domain"
)

type DiaryStore struct {
	db *sql.DB
}

func NewDiaryStore(db *sql.DB) *DiaryStore {
	return &DiaryStore{db: db}
}

func (s *DiaryStore) Create(ctx context.Context, e *domain.DietEntry) (*domain.DietEntry, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO diet_entries (user_id, entry_date, meal_type, food_name, grams, calories, protein, fat, carbohydrate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.UserID, e.Date, e.MealType, e.FoodName, e.Grams, e.Calories, e.Protein, e.Fat, e.Carbohydrate)
	if err != nil {
		return nil, fmt.Errorf("create diary entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *DiaryStore) GetByID(ctx context.Context, id int64) (*domain.DietEntry, error) {
	e := &domain.DietEntry{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, entry_date, meal_type, food_name, grams, calories, protein, fat, carbohydrate, created_at
		FROM diet_entries WHERE id = ?
	`, id).Scan(&e.ID, &e.UserID, &e.Date, &e.MealType, &e.FoodName, &e.Grams,
		&e.Calories, &e.Protein, &e.Fat, &e.Carbohydrate, &e.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get diary entry: %w", err)
	}
	return e, nil
}

// ListByUserDate returns all entries for one user on one day, oldest first.
func (s *DiaryStore) ListByUserDate(ctx context.Context, userID int64, date string) ([]*domain.DietEntry, error) {
	return s.list(ctx, `
		SELECT id, user_id, entry_date, meal_type, food_name, grams, calories, protein, fat, carbohydrate, created_at
		FROM diet_entries
		WHERE user_id = ? AND entry_date = ?
		ORDER BY created_at ASC
	`, userID, date)
}

// ListByUserRange returns entries for a user within [from, to] inclusive.
func (s *DiaryStore) ListByUserRange(ctx context.Context, userID int64, from, to string) ([]*domain.DietEntry, error) {
	return s.list(ctx, `
		SELECT id, user_id, entry_date, meal_type, food_name, grams, calories, protein, fat, carbohydrate, created_at
		FROM diet_entries
		WHERE user_id = ? AND entry_date >= ? AND entry_date <= ?
		ORDER BY entry_date ASC, created_at ASC
	`, userID, from, to)
}

func (s *DiaryStore) list(ctx context.Context, query string, args ...any) ([]*domain.DietEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list diary entries: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var entries []*domain.DietEntry
	for rows.Next() {
		e := &domain.DietEntry{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.MealType, &e.FoodName, &e.Grams,
			&e.Calories, &e.Protein, &e.Fat, &e.Carbohydrate, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan diary entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate diary entries: %w", err)
	}
	return entries, nil
}

func (s *DiaryStore) Update(ctx context.Context, e *domain.DietEntry) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE diet_entries
		SET meal_type = ?, food_name = ?, grams = ?, calories = ?, protein = ?, fat = ?, carbohydrate = ?
		WHERE id = ?
	`, e.MealType, e.FoodName, e.Grams, e.Calories, e.Protein, e.Fat, e.Carbohydrate, e.ID)
	if err != nil {
		return fmt.Errorf("update diary entry: %w", err)
	}
	return nil
}

func (s *DiaryStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM diet_entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete diary entry: %w", err)
	}
	return nil
}
