package postgres

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
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.Address, c.DistanceKm, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert clinic: %w", err)
	}
	return nil
}

func (s *Store) GetClinic(id string) (models.Clinic, error) {
	var c models.Clinic
	err := s.db.QueryRow(`SELECT id, name, address, distance_km, created_at FROM clinics WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Address, &c.DistanceKm, &c.CreatedAt)
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
		var c models.Clinic
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.DistanceKm, &c.CreatedAt); err != nil {
			return nil, err
		}
		clinics = append(clinics, c)
	}
	return clinics, rows.Err()
}
