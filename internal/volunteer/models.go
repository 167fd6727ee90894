package volunteer

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Experience levels a volunteer can declare.
const (
	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"
)

// Time-of-day preferences for availability.
const (
	TimeMorning   = "morning"
	TimeAfternoon = "afternoon"
	TimeEvening   = "evening"
	TimeFlexible  = "flexible"
)

// Availability describes when a volunteer can take part in cleanups.
// Stored as a JSONB document; a profile without one is treated as
// "availability unknown" by the matching engine, not as unavailable.
type Availability struct {
	Days           []string `json:"days"`
	TimePreference string   `json:"time_preference"`
}

// Value implements driver.Valuer for JSONB storage.
func (a Availability) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner for JSONB retrieval.
func (a *Availability) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported availability type %T", src)
	}
}

// Profile is a volunteer's matching profile. Coordinates and availability
// are optional; the free-text location is always present and serves as the
// fallback for location scoring.
type Profile struct {
	UserID               string         `json:"user_id" db:"user_id"`
	DisplayName          string         `json:"display_name" db:"display_name"`
	Latitude             *float64       `json:"latitude,omitempty" db:"latitude"`
	Longitude            *float64       `json:"longitude,omitempty" db:"longitude"`
	MaxTravelDistanceKm  float64        `json:"max_travel_distance_km" db:"max_travel_distance_km"`
	WasteTypePreferences pq.StringArray `json:"waste_type_preferences" db:"waste_type_preferences"`
	Skills               pq.StringArray `json:"skills" db:"skills"`
	ExperienceLevel      string         `json:"experience_level" db:"experience_level"`
	Availability         *Availability  `json:"availability,omitempty" db:"availability"`
	Location             string         `json:"location" db:"location"`
	CreatedAt            time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at" db:"updated_at"`
}

// HasCoordinates reports whether the profile carries a usable coordinate pair.
func (p *Profile) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// DTOs

type AvailabilityDTO struct {
	Days           []string `json:"days" validate:"required,min=1,dive,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	TimePreference string   `json:"time_preference" validate:"required,oneof=morning afternoon evening flexible"`
}

type UpsertProfileDTO struct {
	Latitude             *float64         `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude            *float64         `json:"longitude,omitempty" validate:"omitempty,longitude"`
	MaxTravelDistanceKm  float64          `json:"max_travel_distance_km" validate:"min=0,max=1000"`
	WasteTypePreferences []string         `json:"waste_type_preferences" validate:"max=20"`
	Skills               []string         `json:"skills" validate:"max=30"`
	ExperienceLevel      string           `json:"experience_level" validate:"required,oneof=beginner intermediate advanced"`
	Availability         *AvailabilityDTO `json:"availability,omitempty"`
	Location             string           `json:"location" validate:"required,min=2,max=200"`
}
