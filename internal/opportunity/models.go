package opportunity

import (
	"time"

	"github.com/lib/pq"
)

// Lifecycle states for a cleanup opportunity. Only active, future-dated
// opportunities are eligible for matching and applications.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Opportunity is a scheduled cleanup event published by an organization.
type Opportunity struct {
	ID                      string         `json:"id" db:"id"`
	OrganizationID          string         `json:"organization_id" db:"organization_id"`
	Title                   string         `json:"title" db:"title"`
	Description             string         `json:"description" db:"description"`
	Latitude                *float64       `json:"latitude,omitempty" db:"latitude"`
	Longitude               *float64       `json:"longitude,omitempty" db:"longitude"`
	Location                string         `json:"location" db:"location"`
	WasteTypes              pq.StringArray `json:"waste_types" db:"waste_types"`
	RequiredSkills          pq.StringArray `json:"required_skills" db:"required_skills"`
	RequiredExperienceLevel string         `json:"required_experience_level" db:"required_experience_level"`
	TimeOfDay               string         `json:"time_of_day" db:"time_of_day"`
	EventDate               time.Time      `json:"event_date" db:"event_date"`
	Status                  string         `json:"status" db:"status"`
	PhotoURL                *string        `json:"photo_url,omitempty" db:"photo_url"`
	CreatedAt               time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time      `json:"updated_at" db:"updated_at"`
}

// HasCoordinates reports whether the opportunity carries a usable coordinate pair.
func (o *Opportunity) HasCoordinates() bool {
	return o.Latitude != nil && o.Longitude != nil
}

// ListFilter narrows opportunity listings.
type ListFilter struct {
	Status         string
	MinDate        *time.Time
	OrganizationID string
}

// DTOs

type CreateOpportunityDTO struct {
	Title                   string   `json:"title" validate:"required,min=3,max=200"`
	Description             string   `json:"description" validate:"max=2000"`
	Latitude                *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude               *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Location                string   `json:"location" validate:"required,min=2,max=200"`
	WasteTypes              []string `json:"waste_types" validate:"max=20"`
	RequiredSkills          []string `json:"required_skills" validate:"max=30"`
	RequiredExperienceLevel string   `json:"required_experience_level" validate:"required,oneof=beginner intermediate advanced"`
	TimeOfDay               string   `json:"time_of_day" validate:"required,oneof=morning afternoon evening flexible"`
	EventDate               string   `json:"event_date" validate:"required"` // RFC3339
}

type UpdateStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=active completed cancelled"`
}
