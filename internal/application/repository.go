package application

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Repository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	List(ctx context.Context, filter ListFilter) ([]*Application, error)
	UpdateStatus(ctx context.Context, app *Application) error
	HasOpenApplication(ctx context.Context, opportunityID, volunteerID string) (bool, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, app *Application) error {
	query := `
        INSERT INTO applications (id, opportunity_id, volunteer_id, status, message)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (opportunity_id, volunteer_id)
        DO UPDATE SET
            status = $4, message = $5, responded_at = NULL,
            updated_at = CURRENT_TIMESTAMP
        RETURNING id, created_at, updated_at
    `

	// The conflict branch reactivates a previously withdrawn or rejected
	// application instead of inserting a duplicate pair.
	return r.db.QueryRowxContext(
		ctx, query,
		app.ID, app.OpportunityID, app.VolunteerID, app.Status, app.Message,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*Application, error) {
	var app Application
	query := `SELECT * FROM applications WHERE id = $1`

	err := r.db.GetContext(ctx, &app, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrApplicationNotFound
	}

	return &app, err
}

func (r *postgresRepository) List(ctx context.Context, filter ListFilter) ([]*Application, error) {
	query := `SELECT * FROM applications WHERE 1=1`
	args := []interface{}{}

	if filter.VolunteerID != "" {
		args = append(args, filter.VolunteerID)
		query += ` AND volunteer_id = $` + strconv.Itoa(len(args))
	}
	if filter.OpportunityID != "" {
		args = append(args, filter.OpportunityID)
		query += ` AND opportunity_id = $` + strconv.Itoa(len(args))
	}
	if len(filter.StatusIn) > 0 {
		args = append(args, pq.Array(filter.StatusIn))
		query += ` AND status = ANY($` + strconv.Itoa(len(args)) + `)`
	}

	query += ` ORDER BY created_at DESC`

	var apps []*Application
	err := r.db.SelectContext(ctx, &apps, query, args...)
	return apps, err
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, app *Application) error {
	query := `
        UPDATE applications
        SET status = $2, responded_at = $3, updated_at = CURRENT_TIMESTAMP
        WHERE id = $1
    `

	_, err := r.db.ExecContext(ctx, query, app.ID, app.Status, app.RespondedAt)
	return err
}

// HasOpenApplication reports whether a pending or accepted application
// already pairs this volunteer with this opportunity.
func (r *postgresRepository) HasOpenApplication(ctx context.Context, opportunityID, volunteerID string) (bool, error) {
	var exists bool
	query := `
        SELECT EXISTS(
            SELECT 1 FROM applications
            WHERE opportunity_id = $1 AND volunteer_id = $2
                  AND status IN ('pending', 'accepted')
        )
    `

	err := r.db.GetContext(ctx, &exists, query, opportunityID, volunteerID)
	return exists, err
}
