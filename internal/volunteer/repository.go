package volunteer

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	UpsertProfile(ctx context.Context, profile *Profile) error
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	ListProfiles(ctx context.Context) ([]*Profile, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) UpsertProfile(ctx context.Context, profile *Profile) error {
	query := `
        INSERT INTO volunteer_profiles (
            user_id, latitude, longitude, max_travel_distance_km,
            waste_type_preferences, skills, experience_level, availability, location
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (user_id)
        DO UPDATE SET
            latitude = $2, longitude = $3, max_travel_distance_km = $4,
            waste_type_preferences = $5, skills = $6, experience_level = $7,
            availability = $8, location = $9, updated_at = CURRENT_TIMESTAMP
        RETURNING created_at, updated_at
    `

	return r.db.QueryRowxContext(
		ctx, query,
		profile.UserID, profile.Latitude, profile.Longitude, profile.MaxTravelDistanceKm,
		profile.WasteTypePreferences, profile.Skills, profile.ExperienceLevel,
		profile.Availability, profile.Location,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

// GetProfile returns the matching profile for a volunteer-role user.
// Accounts without the volunteer role or without a profile yield ErrProfileNotFound.
func (r *postgresRepository) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	var profile Profile
	query := `
        SELECT p.*, u.display_name
        FROM volunteer_profiles p
        JOIN users u ON p.user_id = u.id
        WHERE p.user_id = $1 AND u.role = 'volunteer'
    `

	err := r.db.GetContext(ctx, &profile, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}

	return &profile, err
}

func (r *postgresRepository) ListProfiles(ctx context.Context) ([]*Profile, error) {
	var profiles []*Profile
	query := `
        SELECT p.*, u.display_name
        FROM volunteer_profiles p
        JOIN users u ON p.user_id = u.id
        WHERE u.role = 'volunteer'
        ORDER BY p.user_id
    `

	err := r.db.SelectContext(ctx, &profiles, query)
	return profiles, err
}
