package repositories

import (
	"database/sql"
	"fmt"

	"activity-registration-storefront/internal/models"
)

// UnitRepository handles organizational unit lookups
type UnitRepository struct {
	db *sql.DB
}

// NewUnitRepository creates a new unit repository
func NewUnitRepository(db *sql.DB) *UnitRepository {
	return &UnitRepository{db: db}
}

// List retrieves all units ordered by name
func (r *UnitRepository) List() ([]*models.Unit, error) {
	rows, err := r.db.Query("SELECT id, name, description, created_at FROM units ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	defer rows.Close()

	var units []*models.Unit
	for rows.Next() {
		u := &models.Unit{}
		if err := rows.Scan(&u.ID, &u.Name, &u.Description, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		units = append(units, u)
	}

	return units, rows.Err()
}

// Exists reports whether a unit with the given ID exists
func (r *UnitRepository) Exists(id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow("SELECT EXISTS(SELECT 1 FROM units WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check unit: %w", err)
	}
	return exists, nil
}
