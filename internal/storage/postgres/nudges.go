package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pulsecheck/pulse/internal/models"
	"github.com/pulsecheck/pulse/internal/storage"
)

func (s *Store) GetNudgeRecord(userID string) (models.NudgeRecord, error) {
	var (
		rec                  models.NudgeRecord
		lastNudge, lastCheck sql.NullString
	)
	err := s.db.QueryRow(`
		SELECT user_id, count, last_nudge_date, last_checkup_date, dismissed, updated_at
		FROM nudge_records WHERE user_id = $1`, userID,
	).Scan(&rec.UserID, &rec.Count, &lastNudge, &lastCheck, &rec.Dismissed, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NudgeRecord{}, fmt.Errorf("nudge record for %s: %w", userID, storage.ErrNotFound)
	}
	if err != nil {
		return models.NudgeRecord{}, fmt.Errorf("failed to get nudge record: %w", err)
	}
	rec.LastNudgeDate = storage.StringPtr(lastNudge)
	rec.LastCheckupDate = storage.StringPtr(lastCheck)
	return rec, nil
}

func (s *Store) SaveNudgeRecord(rec models.NudgeRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO nudge_records (user_id, count, last_nudge_date, last_checkup_date, dismissed, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			count = EXCLUDED.count,
			last_nudge_date = EXCLUDED.last_nudge_date,
			last_checkup_date = EXCLUDED.last_checkup_date,
			dismissed = EXCLUDED.dismissed,
			updated_at = EXCLUDED.updated_at`,
		rec.UserID, rec.Count,
		storage.NullableString(rec.LastNudgeDate), storage.NullableString(rec.LastCheckupDate),
		rec.Dismissed, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save nudge record: %w", err)
	}
	return nil
}

func (s *Store) AddNudgeHistory(h models.NudgeHistoryEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO nudge_history (id, user_id, day, reason, message, dismissed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		h.ID, h.UserID, h.Day, string(h.Reason), h.Message, h.Dismissed, h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert nudge history: %w", err)
	}
	return nil
}

func (s *Store) GetNudgeHistory(userID string) ([]models.NudgeHistoryEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, day, reason, message, dismissed, created_at
		FROM nudge_history WHERE user_id = $1
		ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query nudge history: %w", err)
	}
	defer rows.Close()

	var history []models.NudgeHistoryEntry
	for rows.Next() {
		var (
			h      models.NudgeHistoryEntry
			reason string
		)
		if err := rows.Scan(&h.ID, &h.UserID, &h.Day, &reason, &h.Message, &h.Dismissed, &h.CreatedAt); err != nil {
			return nil, err
		}
		h.Reason = models.ReasonCode(reason)
		history = append(history, h)
	}
	return history, rows.Err()
}

// UpdateNudgeHistory only ever sets dismissed; history rows are otherwise immutable.
func (s *Store) UpdateNudgeHistory(h models.NudgeHistoryEntry) error {
	res, err := s.db.Exec(`UPDATE nudge_history SET dismissed = $1 WHERE id = $2`, h.Dismissed, h.ID)
	if err != nil {
		return fmt.Errorf("failed to update nudge history: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("nudge history %s: %w", h.ID, storage.ErrNotFound)
	}
	return nil
}
