package postgres

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

	cards := make([]sql.NullString, 0, 4)
	for _, encode := range []func() (sql.NullString, error){
		func() (sql.NullString, error) { return storage.EncodeCard(entry.Sleep) },
		func() (sql.NullString, error) { return storage.EncodeCard(entry.Symptoms) },
		func() (sql.NullString, error) { return storage.EncodeCard(entry.Temperature) },
		func() (sql.NullString, error) { return storage.EncodeCard(entry.Lifestyle) },
	} {
		raw, err := encode()
		if err != nil {
			return models.HealthEntry{}, err
		}
		cards = append(cards, raw)
	}

	var energy sql.NullInt64
	if entry.Energy != nil {
		energy = sql.NullInt64{Int64: int64(*entry.Energy), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO health_entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id, day) DO UPDATE SET
			energy = EXCLUDED.energy,
			mood = EXCLUDED.mood,
			sleep = EXCLUDED.sleep,
			symptoms = EXCLUDED.symptoms,
			temperature = EXCLUDED.temperature,
			lifestyle = EXCLUDED.lifestyle,
			note = EXCLUDED.note,
			updated_at = EXCLUDED.updated_at`,
		entry.ID, entry.UserID, entry.Day, energy, entry.Mood,
		cards[0], cards[1], cards[2], cards[3], entry.Note,
		entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return models.HealthEntry{}, fmt.Errorf("failed to save health entry: %w", err)
	}
	return s.GetHealthEntry(entry.UserID, entry.Day)
}

func (s *Store) GetHealthEntry(userID, day string) (models.HealthEntry, error) {
	row := s.db.QueryRow(`SELECT `+entryColumns+` FROM health_entries WHERE user_id = $1 AND day = $2`, userID, day)
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
	query := `SELECT ` + entryColumns + ` FROM health_entries WHERE user_id = $1`
	args := []any{userID}
	if startDay != "" {
		args = append(args, startDay)
		query += fmt.Sprintf(` AND day >= $%d`, len(args))
	}
	if endDay != "" {
		args = append(args, endDay)
		query += fmt.Sprintf(` AND day <= $%d`, len(args))
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
			WHERE user_id = $1
			ORDER BY day DESC
			LIMIT $2
		) recent ORDER BY day`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent health entries: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

func (s *Store) GetCheckinDays(userID string) ([]string, error) {
	rows, err := s.db.Query(`SELECT day FROM health_entries WHERE user_id = $1 ORDER BY day`, userID)
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
	)
	err := row.Scan(
		&entry.ID, &entry.UserID, &entry.Day, &energy, &entry.Mood,
		&sleep, &symptoms, &temperature, &lifestyle, &entry.Note,
		&entry.CreatedAt, &entry.UpdatedAt,
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
	return entry, nil
}
