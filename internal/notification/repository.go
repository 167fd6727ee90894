package notification

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotificationNotFound = errors.New("notification not found")

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListForUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]*Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
	GetUserEmail(ctx context.Context, userID string) (string, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, n *Notification) error {
	query := `
        INSERT INTO notifications (id, user_id, kind, title, body)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at
    `

	return r.db.QueryRowxContext(
		ctx, query,
		n.ID, n.UserID, n.Kind, n.Title, n.Body,
	).Scan(&n.CreatedAt)
}

func (r *postgresRepository) ListForUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]*Notification, error) {
	query := `SELECT * FROM notifications WHERE user_id = $1`
	if unreadOnly {
		query += ` AND read = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT $2`

	var notifications []*Notification
	err := r.db.SelectContext(ctx, &notifications, query, userID, limit)
	return notifications, err
}

func (r *postgresRepository) MarkRead(ctx context.Context, id, userID string) error {
	query := `UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

func (r *postgresRepository) GetUserEmail(ctx context.Context, userID string) (string, error) {
	var email string
	query := `SELECT email FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &email, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotificationNotFound
	}

	return email, err
}
