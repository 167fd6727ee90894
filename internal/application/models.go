package application

import (
	"time"
)

// Application lifecycle. A pending or accepted application pairs a volunteer
// with an opportunity and removes that pair from future matching; rejected
// and withdrawn applications leave the pair eligible again.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusWithdrawn = "withdrawn"
)

// Application links one volunteer to one opportunity. The pair is unique.
type Application struct {
	ID            string     `json:"id" db:"id"`
	OpportunityID string     `json:"opportunity_id" db:"opportunity_id"`
	VolunteerID   string     `json:"volunteer_id" db:"volunteer_id"`
	Status        string     `json:"status" db:"status"`
	Message       *string    `json:"message,omitempty" db:"message"`
	RespondedAt   *time.Time `json:"responded_at,omitempty" db:"responded_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// ListFilter narrows application listings. An empty StatusIn means any status.
type ListFilter struct {
	VolunteerID   string
	OpportunityID string
	StatusIn      []string
}

// DTOs

type ApplyDTO struct {
	OpportunityID string `json:"opportunity_id" validate:"required"`
	Message       string `json:"message,omitempty" validate:"max=1000"`
}

type RespondDTO struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}
