// Package store holds the persistence collaborators for the diet-tracking
// entities: plain database/sql over sqlite, one store per aggregate.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hanqiu-dev/dietagent/internal/domain"
)

type FoodStore struct {
	db *sql.DB
}

func NewFoodStore(db *sql.DB) *FoodStore {
	return &FoodStore{db: db}
}

func (s *FoodStore) Create(ctx context.Context, f *domain.Food) (*domain.Food, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO foods (name, category, calories, protein, fat, carbohydrate, unit)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, f.Name, f.Category, f.Calories, f.Protein, f.Fat, f.Carbohydrate, f.Unit)
	if err != nil {
		return nil, fmt.Errorf("create food: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *FoodStore) GetByID(ctx context.Context, id int64) (*domain.Food, error) {
	f := &domain.Food{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, category, calories, protein, fat, carbohydrate, unit, created_at
		FROM foods WHERE id = ?
	`, id).Scan(&f.ID, &f.Name, &f.Category, &f.Calories, &f.Protein, &f.Fat, &f.Carbohydrate, &f.Unit, &f.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get food: %w", err)
	}
	return f, nil
}

func (s *FoodStore) Update(ctx context.Context, f *domain.Food) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE foods SET name = ?, category = ?, calories = ?, protein = ?, fat = ?, carbohydrate = ?, unit = ?
		WHERE id = ?
	`, f.Name, f.Category, f.Calories, f.Protein, f.Fat, f.Carbohydrate, f.Unit, f.ID)
	if err != nil {
		return fmt.Errorf("update food: %w", err)
	}
	return nil
}

func (s *FoodStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM foods WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete food: %w", err)
	}
	return nil
}

// Search matches foods by name substring (case-insensitive) and optionally
// narrows by category. Empty query lists everything in the category.
func (s *FoodStore) Search(ctx context.Context, query, category string) ([]*domain.Food, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, calories, protein, fat, carbohydrate, unit, created_at
		FROM foods
		WHERE LOWER(name) LIKE ? AND (? = '' OR category = ?)
		ORDER BY name ASC
	`, pattern, category, category)
	if err != nil {
		return nil, fmt.Errorf("search foods: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var foods []*domain.Food
	for rows.Next() {
		f := &domain.Food{}
		if err := rows.Scan(&f.ID, &f.Name, &f.Category, &f.Calories, &f.Protein, &f.Fat, &f.Carbohydrate, &f.Unit, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan food: %w", err)
		}
		foods = append(foods, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate foods: %w", err)
	}
	return foods, nil
}
