package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/hanqiu-dev/dietagent/internal/domain"
)

type WeightStore struct {
	db *sql.DB
}

func NewWeightStore(db *sql.DB) *WeightStore {
	return &WeightStore{db: db}
}

// Upsert records a weigh-in; a second weigh-in on the same day replaces the
// first (one record per user per day).
func (s *WeightStore) Upsert(ctx context.Context, r *domain.WeightRecord) (*domain.WeightRecord, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO weight_records (user_id, record_date, weight_kg, height_cm, note)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, record_date)
		DO UPDATE SET weight_kg = excluded.weight_kg, height_cm = excluded.height_cm, note = excluded.note
	`, r.UserID, r.Date, r.WeightKg, r.HeightCm, r.Note)
	if err != nil {
		return nil, fmt.Errorf("upsert weight record: %w", err)
	}
	return s.GetByUserDate(ctx, r.UserID, r.Date)
}

func (s *WeightStore) GetByUserDate(ctx context.Context, userID int64, date string) (*domain.WeightRecord, error) {
	r := &domain.WeightRecord{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, record_date, weight_kg, height_cm, note, created_at
		FROM weight_records WHERE user_id = ? AND record_date = ?
	`, userID, date).Scan(&r.ID, &r.UserID, &r.Date, &r.WeightKg, &r.HeightCm, &r.Note, &r.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get weight record: %w", err)
	}
	return r, nil
}

// ListByUserRange returns weigh-ins for a user within [from, to] inclusive,
// oldest first, for trend charting.
func (s *WeightStore) ListByUserRange(ctx context.Context, userID int64, from, to string) ([]*domain.WeightRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, record_date, weight_kg, height_cm, note, created_at
		FROM weight_records
		WHERE user_id = ? AND record_date >= ? AND record_date <= ?
		ORDER BY record_date ASC
	`, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list weight records: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var records []*domain.WeightRecord
	for rows.Next() {
		r := &domain.WeightRecord{}
		if err := rows.Scan(&r.ID, &r.UserID, &r.Date, &r.WeightKg, &r.HeightCm, &r.Note, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan weight record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weight records: %w", err)
	}
	return records, nil
}

func (s *WeightStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM weight_records WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete weight record: %w", err)
	}
	return nil
}
