package matching

import (
	"github.com/greensweep/backend/internal/opportunity"
)

// ScoreBreakdown carries the per-dimension percentages behind a blended
// score. Each value is in [0,100].
type ScoreBreakdown struct {
	Location         int `json:"location"`
	WasteTypes       int `json:"waste_types"`
	Skills           int `json:"skills"`
	Experience       int `json:"experience"`
	TimeAvailability int `json:"time_availability"`
}

// OpportunityMatch is one ranked opportunity for a volunteer.
type OpportunityMatch struct {
	Opportunity *opportunity.Opportunity `json:"opportunity"`
	Score       int                      `json:"score"`
	Breakdown   ScoreBreakdown           `json:"breakdown"`
}

// VolunteerSummary is the reduced public view of a volunteer exposed to
// organizations in match results.
type VolunteerSummary struct {
	UserID          string   `json:"user_id"`
	DisplayName     string   `json:"display_name"`
	Location        string   `json:"location"`
	ExperienceLevel string   `json:"experience_level"`
	Skills          []string `json:"skills"`
}

// VolunteerMatch is one ranked volunteer for an opportunity.
type VolunteerMatch struct {
	Volunteer VolunteerSummary `json:"volunteer"`
	Score     int              `json:"score"`
	Breakdown ScoreBreakdown   `json:"breakdown"`
}
