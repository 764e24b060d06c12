package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pulsecheck/pulse/internal/models"
	"github.com/pulsecheck/pulse/internal/storage"
)

const entryColumns = `id, user_id, day, energy, mood, sleep, symptoms, temperature, lifestyle, note, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) SaveHealthEntry(entry models.HealthEntry) (models.HealthEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	now := time.Now()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now

	sleep, err := storage.EncodeCard(entry.Sleep)
	if err != nil {
		return models.HealthEntry{}, err
	}
	symptoms, err := storage.EncodeCard(entry.Symptoms)
	if err != nil {
		return models.HealthEntry{}, err
	}
	temperature, err := storage.EncodeCard(entry.Temperature)
	if err != nil {
		return models.HealthEntry{}, err
	}
	lifestyle, err := storage.EncodeCard(entry.Lifestyle)
	if err != nil {
		return models.HealthEntry{}, err
	}

	var energy sql.NullInt64
	if entry.Energy != nil {
		energy = sql.NullInt64{Int64: int64(*entry.Energy), Valid: true}
	}

	_, err = s.db.Exec(`
		INSERT INTO health_entries (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, day) DO UPDATE SET
			energy = excluded.energy,
			mood = excluded.mood,
			sleep = excluded.sleep,
			symptoms = excluded.symptoms,
			temperature = excluded.temperature,
			lifestyle = excluded.lifestyle,
			note = excluded.note,
			updated_at = excluded.updated_at`,
		entry.ID, entry.UserID, entry.Day, energy, entry.Mood,
		sleep, symptoms, temperature, lifestyle, entry.Note,
		storage.FormatTime(entry.CreatedAt), storage.FormatTime(entry.UpdatedAt),
	)
	if err != nil {
		return models.HealthEntry{}, fmt.Errorf("failed to save health entry: %w", err)
	}

	return s.GetHealthEntry(entry.UserID, entry.Day)
}

func (s *Store) GetHealthEntry(userID, day string) (models.HealthEntry, error) {
	row := s.db.QueryRow(`SELECT `+entryColumns+` FROM health_entries WHERE user_id = ? AND day = ?`, userID, day)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.HealthEntry{}, fmt.Errorf("health entry for %s: %w", day, storage.ErrNotFound)
	}
	if err != nil {
		return models.HealthEntry{}, fmt.Errorf("failed to get health entry: %w", err)
	}
	return entry, nil
}

func (s *Store) GetHealthEntries(userID, startDay, endDay string) ([]models.HealthEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM health_entries WHERE user_id = ?`
	args := []any{userID}
	if startDay != "" {
		query += ` AND day >= ?`
		args = append(args, startDay)
	}
	if endDay != "" {
		query += ` AND day <= ?`
		args = append(args, endDay)
	}
	query += ` ORDER BY day`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query health entries: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

func (s *Store) GetRecentHealthEntries(userID string, limit int) ([]models.HealthEntry, error) {
	rows, err := s.db.Query(`
		SELECT `+entryColumns+` FROM (
			SELECT `+entryColumns+` FROM health_entries
			WHERE user_id = ?
			ORDER BY day DESC
			LIMIT ?
		) ORDER BY day`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent health entries: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

func (s *Store) GetCheckinDays(userID string) ([]string, error) {
	rows, err := s.db.Query(`SELECT day FROM health_entries WHERE user_id = ? ORDER BY day`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query check-in days: %w", err)
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

func collectEntries(rows *sql.Rows) ([]models.HealthEntry, error) {
	var entries []models.HealthEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanEntry(row rowScanner) (models.HealthEntry, error) {
	var (
		entry                                   models.HealthEntry
		energy                                  sql.NullInt64
		sleep, symptoms, temperature, lifestyle sql.NullString
		createdAt, updatedAt                    string
	)
	err := row.Scan(
		&entry.ID, &entry.UserID, &entry.Day, &energy, &entry.Mood,
		&sleep, &symptoms, &temperature, &lifestyle, &entry.Note,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return models.HealthEntry{}, err
	}

	if energy.Valid {
		entry.Energy = models.IntPtr(int(energy.Int64))
	}
	if entry.Sleep, err = storage.DecodeCard[models.Sleep](sleep); err != nil {
		return models.HealthEntry{}, err
	}
	if entry.Symptoms, err = storage.DecodeCard[models.Symptoms](symptoms); err != nil {
		return models.HealthEntry{}, err
	}
	if entry.Temperature, err = storage.DecodeCard[models.Temperature](temperature); err != nil {
		return models.HealthEntry{}, err
	}
	if entry.Lifestyle, err = storage.DecodeCard[models.Lifestyle](lifestyle); err != nil {
		return models.HealthEntry{}, err
	}
	if entry.CreatedAt, err = storage.ParseTime(createdAt); err != nil {
		return models.HealthEntry{}, err
	}
	if entry.UpdatedAt, err = storage.ParseTime(updatedAt); err != nil {
		return models.HealthEntry{}, err
	}
	return entry, nil
}
