package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"activity-registration-storefront/internal/models"
)

// ActivityRepository handles activity data operations
type ActivityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

const activityColumns = `id, title, description, price_member, price_non_member,
	max_participants, current_participants, status, start_date, end_date,
	location, image_url, created_at, updated_at`

func scanActivity(row interface{ Scan(...any) error }) (*models.Activity, error) {
	a := &models.Activity{}
	var startDate, endDate sql.NullTime
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Description,
		&a.PriceMember,
		&a.PriceNonMember,
		&a.MaxParticipants,
		&a.CurrentParticipants,
		&a.Status,
		&startDate,
		&endDate,
		&a.Location,
		&a.ImageURL,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if startDate.Valid {
		a.StartDate = &startDate.Time
	}
	if endDate.Valid {
		a.EndDate = &endDate.Time
	}
	return a, nil
}

// Create creates a new activity
func (r *ActivityRepository) Create(req *models.ActivityCreateRequest) (*models.Activity, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO activities (title, description, price_member, price_non_member,
			max_participants, status, start_date, end_date, location, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + activityColumns

	now := time.Now()
	row := r.db.QueryRow(
		query,
		req.Title,
		req.Description,
		req.PriceMember,
		req.PriceNonMember,
		req.MaxParticipants,
		req.Status,
		req.StartDate,
		req.EndDate,
		req.Location,
		req.ImageURL,
		now,
		now,
	)

	activity, err := scanActivity(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}
	return activity, nil
}

// GetByID retrieves an activity by ID
func (r *ActivityRepository) GetByID(id string) (*models.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = $1`

	activity, err := scanActivity(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, models.ErrActivityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return activity, nil
}

// List retrieves activities, optionally filtered by status, newest first
func (r *ActivityRepository) List(status models.ActivityStatus) ([]*models.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []*models.Activity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, activity)
	}

	return activities, rows.Err()
}

// Update updates an activity
func (r *ActivityRepository) Update(id string, req *models.ActivityUpdateRequest) (*models.Activity, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		UPDATE activities
		SET title = $1, description = $2, price_member = $3, price_non_member = $4,
			max_participants = $5, status = $6, start_date = $7, end_date = $8,
			location = $9, image_url = $10, updated_at = $11
		WHERE id = $12
		RETURNING ` + activityColumns

	row := r.db.QueryRow(
		query,
		req.Title,
		req.Description,
		req.PriceMember,
		req.PriceNonMember,
		req.MaxParticipants,
		req.Status,
		req.StartDate,
		req.EndDate,
		req.Location,
		req.ImageURL,
		time.Now(),
		id,
	)

	activity, err := scanActivity(row)
	if err == sql.ErrNoRows {
		return nil, models.ErrActivityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}
	return activity, nil
}

// Delete removes an activity. Activities referenced by order items
// cannot be deleted; deactivate them instead.
func (r *ActivityRepository) Delete(id string) error {
	var referenced bool
	err := r.db.QueryRow("SELECT EXISTS(SELECT 1 FROM order_items WHERE activity_id = $1)", id).Scan(&referenced)
	if err != nil {
		return fmt.Errorf("failed to check activity references: %w", err)
	}
	if referenced {
		return fmt.Errorf("activity has existing orders: %w", models.ErrInvalidInput)
	}

	result, err := r.db.Exec("DELETE FROM activities WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return models.ErrActivityNotFound
	}

	return nil
}
