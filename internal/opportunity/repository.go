package opportunity

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, opp *Opportunity) error
	GetByID(ctx context.Context, id string) (*Opportunity, error)
	List(ctx context.Context, filter ListFilter) ([]*Opportunity, error)
	UpdateStatus(ctx context.Context, id, status string) error
	SetPhotoURL(ctx context.Context, id, url string) error
	CompletePastDated(ctx context.Context) (int64, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, opp *Opportunity) error {
	query := `
        INSERT INTO opportunities (
            id, organization_id, title, description, latitude, longitude,
            location, waste_types, required_skills, required_experience_level,
            time_of_day, event_date, status
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        RETURNING created_at, updated_at
    `

	return r.db.QueryRowxContext(
		ctx, query,
		opp.ID, opp.OrganizationID, opp.Title, opp.Description,
		opp.Latitude, opp.Longitude, opp.Location,
		opp.WasteTypes, opp.RequiredSkills, opp.RequiredExperienceLevel,
		opp.TimeOfDay, opp.EventDate, opp.Status,
	).Scan(&opp.CreatedAt, &opp.UpdatedAt)
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*Opportunity, error) {
	var opp Opportunity
	query := `SELECT * FROM opportunities WHERE id = $1`

	err := r.db.GetContext(ctx, &opp, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOpportunityNotFound
	}

	return &opp, err
}

func (r *postgresRepository) List(ctx context.Context, filter ListFilter) ([]*Opportunity, error) {
	query := `SELECT * FROM opportunities WHERE 1=1`
	args := []interface{}{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.MinDate != nil {
		args = append(args, *filter.MinDate)
		query += ` AND event_date >= $` + strconv.Itoa(len(args))
	}
	if filter.OrganizationID != "" {
		args = append(args, filter.OrganizationID)
		query += ` AND organization_id = $` + strconv.Itoa(len(args))
	}

	query += ` ORDER BY event_date ASC, id ASC`

	var opps []*Opportunity
	err := r.db.SelectContext(ctx, &opps, query, args...)
	return opps, err
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `
        UPDATE opportunities
        SET status = $2, updated_at = CURRENT_TIMESTAMP
        WHERE id = $1
    `

	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return ErrOpportunityNotFound
	}

	return nil
}

func (r *postgresRepository) SetPhotoURL(ctx context.Context, id, url string) error {
	query := `
        UPDATE opportunities
        SET photo_url = $2, updated_at = CURRENT_TIMESTAMP
        WHERE id = $1
    `

	res, err := r.db.ExecContext(ctx, query, id, url)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return ErrOpportunityNotFound
	}

	return nil
}

// CompletePastDated closes out active opportunities whose event date has
// passed. Run periodically by the scheduler.
func (r *postgresRepository) CompletePastDated(ctx context.Context) (int64, error) {
	query := `
        UPDATE opportunities
        SET status = 'completed', updated_at = CURRENT_TIMESTAMP
        WHERE status = 'active' AND event_date < NOW()
    `

	res, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}
