package dashboard

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	VolunteerStats(ctx context.Context, volunteerID string) (*VolunteerStats, error)
	OrganizationStats(ctx context.Context, organizationID string) (*OrganizationStats, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) VolunteerStats(ctx context.Context, volunteerID string) (*VolunteerStats, error) {
	var stats VolunteerStats
	query := `
        SELECT
            COUNT(*) AS applications_total,
            COUNT(*) FILTER (WHERE a.status = 'pending') AS applications_pending,
            COUNT(*) FILTER (WHERE a.status = 'accepted') AS applications_accepted,
            COUNT(*) FILTER (WHERE a.status = 'accepted' AND o.status = 'active' AND o.event_date >= NOW()) AS upcoming_cleanups,
            COUNT(*) FILTER (WHERE a.status = 'accepted' AND o.status = 'completed') AS completed_cleanups
        FROM applications a
        JOIN opportunities o ON a.opportunity_id = o.id
        WHERE a.volunteer_id = $1
    `

	err := r.db.GetContext(ctx, &stats, query, volunteerID)
	return &stats, err
}

func (r *postgresRepository) OrganizationStats(ctx context.Context, organizationID string) (*OrganizationStats, error) {
	var stats OrganizationStats
	query := `
        SELECT
            COUNT(DISTINCT o.id) AS opportunities_total,
            COUNT(DISTINCT o.id) FILTER (WHERE o.status = 'active') AS opportunities_active,
            COUNT(DISTINCT o.id) FILTER (WHERE o.status = 'completed') AS opportunities_completed,
            COUNT(a.id) FILTER (WHERE a.status = 'pending') AS applications_pending,
            COUNT(DISTINCT a.volunteer_id) FILTER (WHERE a.status = 'accepted') AS volunteers_accepted
        FROM opportunities o
        LEFT JOIN applications a ON a.opportunity_id = o.id
        WHERE o.organization_id = $1
    `

	err := r.db.GetContext(ctx, &stats, query, organizationID)
	return &stats, err
}
