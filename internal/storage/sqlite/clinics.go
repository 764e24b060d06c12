package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pulsecheck/pulse/internal/models"
	"github.com/pulsecheck/pulse/internal/storage"
)

func (s *Store) AddClinic(c models.Clinic) error {
	_, err := s.db.Exec(`
		INSERT INTO clinics (id, name, address, distance_km, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Address, c.DistanceKm, storage.FormatTime(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert clinic: %w", err)
	}
	return nil
}

func (s *Store) GetClinic(id string) (models.Clinic, error) {
	c, err := scanClinic(s.db.QueryRow(`SELECT id, name, address, distance_km, created_at FROM clinics WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Clinic{}, fmt.Errorf("clinic %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return models.Clinic{}, fmt.Errorf("failed to get clinic: %w", err)
	}
	return c, nil
}

func (s *Store) GetAllClinics() ([]models.Clinic, error) {
	rows, err := s.db.Query(`SELECT id, name, address, distance_km, created_at FROM clinics ORDER BY distance_km, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query clinics: %w", err)
	}
	defer rows.Close()

	var clinics []models.Clinic
	for rows.Next() {
		c, err := scanClinic(rows)
		if err != nil {
			return nil, err
		}
		clinics = append(clinics, c)
	}
	return clinics, rows.Err()
}

func scanClinic(row rowScanner) (models.Clinic, error) {
	var (
		c         models.Clinic
		createdAt string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Address, &c.DistanceKm, &createdAt); err != nil {
		return models.Clinic{}, err
	}
	var err error
	if c.CreatedAt, err = storage.ParseTime(createdAt); err != nil {
		return models.Clinic{}, err
	}
	return c, nil
}
