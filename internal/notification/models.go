package notification

import "time"

// Notification is a persisted in-app message for a user. The same event may
// also fan out over the websocket hub and email depending on configuration.
type Notification struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Kind      string    `json:"kind" db:"kind"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	Read      bool      `json:"read" db:"read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// EmailMessage is a single outbound email.
type EmailMessage struct {
	To      string
	Subject string
	Body    string
}
