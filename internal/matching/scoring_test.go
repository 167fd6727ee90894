package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/greensweep/backend/internal/opportunity"
	"github.com/greensweep/backend/internal/volunteer"
)

func float64Ptr(v float64) *float64 { return &v }

func TestHaversineKm(t *testing.T) {
	t.Run("symmetry", func(t *testing.T) {
		d1 := haversineKm(52.52, 13.405, 48.1351, 11.582)
		d2 := haversineKm(48.1351, 11.582, 52.52, 13.405)
		assert.InDelta(t, d1, d2, 1e-9)
	})

	t.Run("zero distance for identical points", func(t *testing.T) {
		assert.InDelta(t, 0, haversineKm(40.7128, -74.006, 40.7128, -74.006), 1e-9)
	})

	t.Run("known distance", func(t *testing.T) {
		// Berlin to Munich is roughly 504 km
		d := haversineKm(52.52, 13.405, 48.1351, 11.582)
		assert.InDelta(t, 504, d, 5)
	})
}

func TestLocationScore(t *testing.T) {
	scorer := NewScorer(DefaultWeights())

	t.Run("linear decay within travel distance", func(t *testing.T) {
		v := &volunteer.Profile{
			Latitude:            float64Ptr(0),
			Longitude:           float64Ptr(0),
			MaxTravelDistanceKm: 10,
		}
		// ~0.09 degrees of latitude is about 10 km; use half of that
		o := &opportunity.Opportunity{
			Latitude:  float64Ptr(0.0449),
			Longitude: float64Ptr(0),
		}

		score := scorer.locationScore(v, o)
		assert.InDelta(t, 0.5, score, 0.02)
	})

	t.Run("zero beyond travel distance", func(t *testing.T) {
		v := &volunteer.Profile{
			Latitude:            float64Ptr(0),
			Longitude:           float64Ptr(0),
			MaxTravelDistanceKm: 10,
		}
		o := &opportunity.Opportunity{
			Latitude:  float64Ptr(1),
			Longitude: float64Ptr(0),
		}

		assert.Equal(t, 0.0, scorer.locationScore(v, o))
	})

	t.Run("zero travel distance never matches", func(t *testing.T) {
		v := &volunteer.Profile{
			Latitude:            float64Ptr(0),
			Longitude:           float64Ptr(0),
			MaxTravelDistanceKm: 0,
		}
		o := &opportunity.Opportunity{
			Latitude:  float64Ptr(0.01),
			Longitude: float64Ptr(0),
		}

		assert.Equal(t, 0.0, scorer.locationScore(v, o))
	})

	t.Run("text fallback match", func(t *testing.T) {
		v := &volunteer.Profile{Location: "Springfield Downtown"}
		o := &opportunity.Opportunity{Location: "springfield"}

		assert.Equal(t, 0.8, scorer.locationScore(v, o))
	})

	t.Run("text fallback no match", func(t *testing.T) {
		v := &volunteer.Profile{Location: "Springfield"}
		o := &opportunity.Opportunity{Location: "Shelbyville"}

		assert.Equal(t, 0.2, scorer.locationScore(v, o))
	})

	t.Run("one side missing coordinates falls back to text", func(t *testing.T) {
		v := &volunteer.Profile{
			Latitude:            float64Ptr(0),
			Longitude:           float64Ptr(0),
			MaxTravelDistanceKm: 10,
			Location:            "Riverside",
		}
		o := &opportunity.Opportunity{Location: "Riverside Park"}

		assert.Equal(t, 0.8, scorer.locationScore(v, o))
	})
}

func TestWasteTypeScore(t *testing.T) {
	scorer := NewScorer(DefaultWeights())

	t.Run("neutral when either side is empty", func(t *testing.T) {
		assert.Equal(t, 0.5, scorer.wasteTypeScore(nil, []string{"plastic"}))
		assert.Equal(t, 0.5, scorer.wasteTypeScore([]string{"plastic"}, nil))
	})

	t.Run("larger set size is the denominator", func(t *testing.T) {
		prefs := []string{"plastic", "glass", "metal", "organic"}
		types := []string{"plastic", "glass"}

		assert.Equal(t, 0.5, scorer.wasteTypeScore(prefs, types))
		assert.Equal(t, 0.5, scorer.wasteTypeScore(types, prefs))
	})

	t.Run("full overlap", func(t *testing.T) {
		assert.Equal(t, 1.0, scorer.wasteTypeScore([]string{"plastic"}, []string{"plastic"}))
	})

	t.Run("disjoint sets", func(t *testing.T) {
		assert.Equal(t, 0.0, scorer.wasteTypeScore([]string{"plastic"}, []string{"glass"}))
	})

	t.Run("tags match exactly, not by substring", func(t *testing.T) {
		assert.Equal(t, 0.0, scorer.wasteTypeScore([]string{"plastic"}, []string{"plastics"}))
	})
}

func TestSkillScore(t *testing.T) {
	scorer := NewScorer(DefaultWeights())

	t.Run("no requirements means full score", func(t *testing.T) {
		assert.Equal(t, 1.0, scorer.skillScore(nil, nil))
		assert.Equal(t, 1.0, scorer.skillScore([]string{"diving"}, nil))
	})

	t.Run("baseline when volunteer lists nothing", func(t *testing.T) {
		assert.Equal(t, 0.3, scorer.skillScore(nil, []string{"diving"}))
	})

	t.Run("bidirectional substring matching", func(t *testing.T) {
		// volunteer skill is a substring of the requirement
		assert.Equal(t, 1.0, scorer.skillScore([]string{"First Aid"}, []string{"first aid certification"}))
		// requirement is a substring of the volunteer skill
		assert.Equal(t, 1.0, scorer.skillScore([]string{"advanced diving license"}, []string{"Diving"}))
	})

	t.Run("partial coverage", func(t *testing.T) {
		score := scorer.skillScore([]string{"diving"}, []string{"diving", "first aid"})
		assert.Equal(t, 0.5, score)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Equal(t, 0.0, scorer.skillScore([]string{"cooking"}, []string{"diving"}))
	})
}

func TestExperienceScore(t *testing.T) {
	scorer := NewScorer(DefaultWeights())

	t.Run("meets or exceeds requirement", func(t *testing.T) {
		assert.Equal(t, 1.0, scorer.experienceScore(volunteer.ExperienceAdvanced, volunteer.ExperienceBeginner))
		assert.Equal(t, 1.0, scorer.experienceScore(volunteer.ExperienceIntermediate, volunteer.ExperienceIntermediate))
	})

	t.Run("linear shortfall", func(t *testing.T) {
		assert.InDelta(t, 1.0/3.0, scorer.experienceScore(volunteer.ExperienceBeginner, volunteer.ExperienceAdvanced), 1e-9)
		assert.InDelta(t, 2.0/3.0, scorer.experienceScore(volunteer.ExperienceIntermediate, volunteer.ExperienceAdvanced), 1e-9)
	})

	t.Run("unrecognized levels default to beginner", func(t *testing.T) {
		assert.Equal(t, 1.0, scorer.experienceScore("expert", volunteer.ExperienceBeginner))
		assert.Equal(t, 1.0, scorer.experienceScore("", ""))
	})
}

func TestTimeScore(t *testing.T) {
	scorer := NewScorer(DefaultWeights())
	// 2026-09-07 is a Monday
	monday := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)

	t.Run("neutral without availability", func(t *testing.T) {
		o := &opportunity.Opportunity{EventDate: monday, TimeOfDay: volunteer.TimeMorning}
		assert.Equal(t, 0.5, scorer.timeScore(nil, o))
		assert.Equal(t, 0.5, scorer.timeScore(&volunteer.Availability{TimePreference: volunteer.TimeMorning}, o))
	})

	t.Run("day mismatch", func(t *testing.T) {
		av := &volunteer.Availability{Days: []string{"Saturday", "Sunday"}, TimePreference: volunteer.TimeMorning}
		o := &opportunity.Opportunity{EventDate: monday, TimeOfDay: volunteer.TimeMorning}

		assert.Equal(t, 0.3, scorer.timeScore(av, o))
	})

	t.Run("day match with matching time preference", func(t *testing.T) {
		av := &volunteer.Availability{Days: []string{"Monday"}, TimePreference: volunteer.TimeMorning}
		o := &opportunity.Opportunity{EventDate: monday, TimeOfDay: volunteer.TimeMorning}

		assert.Equal(t, 1.0, scorer.timeScore(av, o))
	})

	t.Run("day match with flexible preference", func(t *testing.T) {
		av := &volunteer.Availability{Days: []string{"monday"}, TimePreference: volunteer.TimeFlexible}
		o := &opportunity.Opportunity{EventDate: monday, TimeOfDay: volunteer.TimeEvening}

		assert.Equal(t, 1.0, scorer.timeScore(av, o))
	})

	t.Run("day match with differing time preference", func(t *testing.T) {
		av := &volunteer.Availability{Days: []string{"Monday"}, TimePreference: volunteer.TimeMorning}
		o := &opportunity.Opportunity{EventDate: monday, TimeOfDay: volunteer.TimeEvening}

		assert.Equal(t, 0.7, scorer.timeScore(av, o))
	})
}

func TestScorePair(t *testing.T) {
	scorer := NewScorer(DefaultWeights())
	monday := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)

	t.Run("ideal pairing blends to 100", func(t *testing.T) {
		v := &volunteer.Profile{
			Latitude:             float64Ptr(51.5074),
			Longitude:            float64Ptr(-0.1278),
			MaxTravelDistanceKm:  10,
			WasteTypePreferences: []string{"plastic", "glass"},
			Skills:               []string{"diving"},
			ExperienceLevel:      volunteer.ExperienceIntermediate,
			Availability: &volunteer.Availability{
				Days:           []string{"Monday"},
				TimePreference: volunteer.TimeFlexible,
			},
		}
		o := &opportunity.Opportunity{
			Latitude:                float64Ptr(51.5074),
			Longitude:               float64Ptr(-0.1278),
			WasteTypes:              []string{"plastic", "glass"},
			RequiredSkills:          nil,
			RequiredExperienceLevel: volunteer.ExperienceIntermediate,
			TimeOfDay:               volunteer.TimeMorning,
			EventDate:               monday,
		}

		score, breakdown := scorer.ScorePair(v, o)
		assert.Equal(t, 100, score)
		assert.Equal(t, ScoreBreakdown{
			Location:         100,
			WasteTypes:       100,
			Skills:           100,
			Experience:       100,
			TimeAvailability: 100,
		}, breakdown)
	})

	t.Run("score and breakdown stay in range", func(t *testing.T) {
		v := &volunteer.Profile{
			Location:        "Springfield",
			ExperienceLevel: volunteer.ExperienceBeginner,
			Skills:          []string{"cooking"},
		}
		o := &opportunity.Opportunity{
			Location:                "Shelbyville",
			WasteTypes:              []string{"hazardous"},
			RequiredSkills:          []string{"diving"},
			RequiredExperienceLevel: volunteer.ExperienceAdvanced,
			TimeOfDay:               volunteer.TimeMorning,
			EventDate:               monday,
		}

		score, breakdown := scorer.ScorePair(v, o)
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
		for _, dim := range []int{
			breakdown.Location, breakdown.WasteTypes, breakdown.Skills,
			breakdown.Experience, breakdown.TimeAvailability,
		} {
			assert.GreaterOrEqual(t, dim, 0)
			assert.LessOrEqual(t, dim, 100)
		}
	})
}
