package matching

import (
	"math"
	"strings"

	"github.com/greensweep/backend/internal/opportunity"
	"github.com/greensweep/backend/internal/volunteer"
)

// Weights holds the relative importance of each scoring dimension.
// They must sum to 1.0.
type Weights struct {
	Location         float64
	WasteTypes       float64
	Skills           float64
	Experience       float64
	TimeAvailability float64
}

func DefaultWeights() Weights {
	return Weights{
		Location:         0.30,
		WasteTypes:       0.25,
		Skills:           0.20,
		Experience:       0.15,
		TimeAvailability: 0.10,
	}
}

var experienceRank = map[string]int{
	volunteer.ExperienceBeginner:     1,
	volunteer.ExperienceIntermediate: 2,
	volunteer.ExperienceAdvanced:     3,
}

// Scorer computes compatibility between a volunteer profile and an
// opportunity. It is pure and stateless; the same inputs always produce the
// same score.
type Scorer struct {
	weights Weights
}

func NewScorer(weights Weights) *Scorer {
	return &Scorer{weights: weights}
}

// ScorePair returns the blended score in [0,100] together with the
// per-dimension breakdown.
func (s *Scorer) ScorePair(v *volunteer.Profile, o *opportunity.Opportunity) (int, ScoreBreakdown) {
	location := s.locationScore(v, o)
	wasteTypes := s.wasteTypeScore(v.WasteTypePreferences, o.WasteTypes)
	skills := s.skillScore(v.Skills, o.RequiredSkills)
	experience := s.experienceScore(v.ExperienceLevel, o.RequiredExperienceLevel)
	timeAvail := s.timeScore(v.Availability, o)

	blended := location*s.weights.Location +
		wasteTypes*s.weights.WasteTypes +
		skills*s.weights.Skills +
		experience*s.weights.Experience +
		timeAvail*s.weights.TimeAvailability

	breakdown := ScoreBreakdown{
		Location:         toPercent(location),
		WasteTypes:       toPercent(wasteTypes),
		Skills:           toPercent(skills),
		Experience:       toPercent(experience),
		TimeAvailability: toPercent(timeAvail),
	}

	return toPercent(blended), breakdown
}

func toPercent(score float64) int {
	return int(math.Round(score * 100))
}

// locationScore prefers real distance when both sides carry coordinates and
// falls back to free-text locale comparison otherwise.
func (s *Scorer) locationScore(v *volunteer.Profile, o *opportunity.Opportunity) float64 {
	if v.HasCoordinates() && o.HasCoordinates() {
		distance := haversineKm(*v.Latitude, *v.Longitude, *o.Latitude, *o.Longitude)
		if v.MaxTravelDistanceKm <= 0 || distance > v.MaxTravelDistanceKm {
			return 0
		}
		return math.Max(0, 1-distance/v.MaxTravelDistanceKm)
	}

	// Fallback: case-insensitive substring containment either way.
	a := strings.ToLower(v.Location)
	b := strings.ToLower(o.Location)
	if a != "" && b != "" && (strings.Contains(a, b) || strings.Contains(b, a)) {
		return 0.8
	}
	return 0.2
}

// wasteTypeScore measures tag overlap. The denominator is the larger of the
// two set sizes so that a long preference list with a small overlap scores
// lower than the reverse.
func (s *Scorer) wasteTypeScore(prefs, types []string) float64 {
	if len(prefs) == 0 || len(types) == 0 {
		return 0.5
	}

	prefSet := make(map[string]bool, len(prefs))
	for _, p := range prefs {
		prefSet[p] = true
	}

	matches := 0
	for _, t := range types {
		if prefSet[t] {
			matches++
		}
	}

	denom := len(prefs)
	if len(types) > denom {
		denom = len(types)
	}

	return float64(matches) / float64(denom)
}

// skillScore counts required skills covered by the volunteer's skill list
// using bidirectional case-insensitive substring matching, so "first aid"
// covers a requirement of "first aid certification" and vice versa.
func (s *Scorer) skillScore(volSkills, required []string) float64 {
	if len(required) == 0 {
		return 1
	}
	if len(volSkills) == 0 {
		return 0.3
	}

	lowered := make([]string, len(volSkills))
	for i, skill := range volSkills {
		lowered[i] = strings.ToLower(skill)
	}

	matched := 0
	for _, req := range required {
		reqLower := strings.ToLower(req)
		for _, skill := range lowered {
			if strings.Contains(reqLower, skill) || strings.Contains(skill, reqLower) {
				matched++
				break
			}
		}
	}

	return math.Min(1, float64(matched)/float64(len(required)))
}

func (s *Scorer) experienceScore(volLevel, requiredLevel string) float64 {
	vol, ok := experienceRank[volLevel]
	if !ok {
		vol = 1
	}
	req, ok := experienceRank[requiredLevel]
	if !ok {
		req = 1
	}

	if vol >= req {
		return 1
	}
	return float64(vol) / float64(req)
}

// timeScore checks the opportunity's weekday against the volunteer's declared
// days, then refines with the time-of-day preference.
func (s *Scorer) timeScore(av *volunteer.Availability, o *opportunity.Opportunity) float64 {
	if av == nil || len(av.Days) == 0 {
		return 0.5
	}

	weekday := o.EventDate.Weekday().String()
	dayMatch := false
	for _, day := range av.Days {
		if strings.EqualFold(day, weekday) {
			dayMatch = true
			break
		}
	}

	if !dayMatch {
		return 0.3
	}

	if av.TimePreference == volunteer.TimeFlexible || av.TimePreference == o.TimeOfDay {
		return 1
	}
	return 0.7
}

// haversineKm returns the great-circle distance between two coordinate pairs.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371 // km

	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}
