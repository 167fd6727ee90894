package matching

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greensweep/backend/internal/application"
	"github.com/greensweep/backend/internal/common/logger"
	"github.com/greensweep/backend/internal/opportunity"
	"github.com/greensweep/backend/internal/volunteer"
)

type fakeVolunteerStore struct {
	profiles map[string]*volunteer.Profile
}

func (f *fakeVolunteerStore) GetProfile(ctx context.Context, userID string) (*volunteer.Profile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, volunteer.ErrProfileNotFound
	}
	return profile, nil
}

func (f *fakeVolunteerStore) ListProfiles(ctx context.Context) ([]*volunteer.Profile, error) {
	out := make([]*volunteer.Profile, 0, len(f.profiles))
	for _, p := range f.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

type fakeOpportunityStore struct {
	opportunities map[string]*opportunity.Opportunity
}

func (f *fakeOpportunityStore) GetByID(ctx context.Context, id string) (*opportunity.Opportunity, error) {
	opp, ok := f.opportunities[id]
	if !ok {
		return nil, opportunity.ErrOpportunityNotFound
	}
	return opp, nil
}

func (f *fakeOpportunityStore) List(ctx context.Context, filter opportunity.ListFilter) ([]*opportunity.Opportunity, error) {
	out := make([]*opportunity.Opportunity, 0, len(f.opportunities))
	for _, o := range f.opportunities {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.MinDate != nil && o.EventDate.Before(*filter.MinDate) {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeApplicationStore struct {
	applications []*application.Application
}

func (f *fakeApplicationStore) List(ctx context.Context, filter application.ListFilter) ([]*application.Application, error) {
	statusIn := make(map[string]bool, len(filter.StatusIn))
	for _, s := range filter.StatusIn {
		statusIn[s] = true
	}

	var out []*application.Application
	for _, app := range f.applications {
		if filter.VolunteerID != "" && app.VolunteerID != filter.VolunteerID {
			continue
		}
		if filter.OpportunityID != "" && app.OpportunityID != filter.OpportunityID {
			continue
		}
		if len(statusIn) > 0 && !statusIn[app.Status] {
			continue
		}
		out = append(out, app)
	}
	return out, nil
}

func testVolunteer(id string) *volunteer.Profile {
	return &volunteer.Profile{
		UserID:               id,
		DisplayName:          "Volunteer " + id,
		Latitude:             float64Ptr(51.5),
		Longitude:            float64Ptr(-0.12),
		MaxTravelDistanceKm:  50,
		WasteTypePreferences: []string{"plastic", "glass"},
		ExperienceLevel:      volunteer.ExperienceIntermediate,
		Location:             "London",
	}
}

func testOpportunity(id string, date time.Time) *opportunity.Opportunity {
	return &opportunity.Opportunity{
		ID:                      id,
		OrganizationID:          "org-1",
		Title:                   "Cleanup " + id,
		Latitude:                float64Ptr(51.5),
		Longitude:               float64Ptr(-0.12),
		WasteTypes:              []string{"plastic", "glass"},
		RequiredExperienceLevel: volunteer.ExperienceBeginner,
		TimeOfDay:               volunteer.TimeMorning,
		EventDate:               date,
		Status:                  opportunity.StatusActive,
		Location:                "London",
	}
}

func newTestService(t *testing.T, vols *fakeVolunteerStore, opps *fakeOpportunityStore, apps *fakeApplicationStore) Service {
	t.Helper()
	return NewService(vols, opps, apps, DefaultConfig(), logger.NewNoOpLogger())
}

func TestMatchOpportunitiesForVolunteer(t *testing.T) {
	ctx := context.Background()
	future := time.Now().Add(48 * time.Hour)

	t.Run("unknown volunteer", func(t *testing.T) {
		svc := newTestService(t,
			&fakeVolunteerStore{profiles: map[string]*volunteer.Profile{}},
			&fakeOpportunityStore{opportunities: map[string]*opportunity.Opportunity{}},
			&fakeApplicationStore{},
		)

		_, err := svc.MatchOpportunitiesForVolunteer(ctx, "missing", 0)
		assert.ErrorIs(t, err, ErrVolunteerNotFound)
	})

	t.Run("open application excludes the opportunity", func(t *testing.T) {
		vols := &fakeVolunteerStore{profiles: map[string]*volunteer.Profile{
			"vol-1": testVolunteer("vol-1"),
		}}
		opps := &fakeOpportunityStore{opportunities: map[string]*opportunity.Opportunity{
			"opp-1": testOpportunity("opp-1", future),
			"opp-2": testOpportunity("opp-2", future),
		}}
		apps := &fakeApplicationStore{applications: []*application.Application{
			{ID: "app-1", OpportunityID: "opp-1", VolunteerID: "vol-1", Status: application.StatusAccepted},
		}}
		svc := newTestService(t, vols, opps, apps)

		matches, err := svc.MatchOpportunitiesForVolunteer(ctx, "vol-1", 0)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "opp-2", matches[0].Opportunity.ID)

		// Withdrawing the application frees the pair again.
		apps.applications[0].Status = application.StatusWithdrawn

		matches, err = svc.MatchOpportunitiesForVolunteer(ctx, "vol-1", 0)
		require.NoError(t, err)
		assert.Len(t, matches, 2)
	})

	t.Run("results are ranked and truncated", func(t *testing.T) {
		vols := &fakeVolunteerStore{profiles: map[string]*volunteer.Profile{
			"vol-1": testVolunteer("vol-1"),
		}}

		near := testOpportunity("opp-near", future)
		mid := testOpportunity("opp-mid", future)
		mid.Latitude = float64Ptr(51.6)
		far := testOpportunity("opp-far", future)
		far.Latitude = float64Ptr(51.8)
		extra := testOpportunity("opp-extra", future)
		extra.Latitude = float64Ptr(51.7)

		opps := &fakeOpportunityStore{opportunities: map[string]*opportunity.Opportunity{
			near.ID: near, mid.ID: mid, far.ID: far, extra.ID: extra,
		}}
		svc := newTestService(t, vols, opps, &fakeApplicationStore{})

		matches, err := svc.MatchOpportunitiesForVolunteer(ctx, "vol-1", 3)
		require.NoError(t, err)
		require.Len(t, matches, 3)
		assert.Equal(t, "opp-near", matches[0].Opportunity.ID)
		assert.GreaterOrEqual(t, matches[0].Score, matches[1].Score)
		assert.GreaterOrEqual(t, matches[1].Score, matches[2].Score)
	})

	t.Run("identical data yields identical ordered output", func(t *testing.T) {
		vols := &fakeVolunteerStore{profiles: map[string]*volunteer.Profile{
			"vol-1": testVolunteer("vol-1"),
		}}
		opps := &fakeOpportunityStore{opportunities: map[string]*opportunity.Opportunity{
			"opp-1": testOpportunity("opp-1", future),
			"opp-2": testOpportunity("opp-2", future),
			"opp-3": testOpportunity("opp-3", future),
		}}
		svc := newTestService(t, vols, opps, &fakeApplicationStore{})

		first, err := svc.MatchOpportunitiesForVolunteer(ctx, "vol-1", 0)
		require.NoError(t, err)
		second, err := svc.MatchOpportunitiesForVolunteer(ctx, "vol-1", 0)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("equal scores break ties by candidate id", func(t *testing.T) {
		vols := &fakeVolunteerStore{profiles: map[string]*volunteer.Profile{
			"vol-1": testVolunteer("vol-1"),
		}}
		opps := &fakeOpportunityStore{opportunities: map[string]*opportunity.Opportunity{
			"opp-b": testOpportunity("opp-b", future),
			"opp-a": testOpportunity("opp-a", future),
			"opp-c": testOpportunity("opp-c", future),
		}}
		svc := newTestService(t, vols, opps, &fakeApplicationStore{})

		matches, err := svc.MatchOpportunitiesForVolunteer(ctx, "vol-1", 0)
		require.NoError(t, err)
		require.Len(t, matches, 3)
		assert.Equal(t, "opp-a", matches[0].Opportunity.ID)
		assert.Equal(t, "opp-b", matches[1].Opportunity.ID)
		assert.Equal(t, "opp-c", matches[2].Opportunity.ID)
	})

	t.Run("candidates below the threshold are dropped", func(t *testing.T) {
		vols := &fakeVolunteerStore{profiles: map[string]*volunteer.Profile{
			"vol-1": testVolunteer("vol-1"),
		}}
		opps := &fakeOpportunityStore{opportunities: map[string]*opportunity.Opportunity{
			"opp-1": testOpportunity("opp-1", future),
		}}

		base := newTestService(t, vols, opps, &fakeApplicationStore{})
		baseline, err := base.MatchOpportunitiesForVolunteer(ctx, "vol-1", 0)
		require.NoError(t, err)
		require.Len(t, baseline, 1)
		score := baseline[0].Score

		// A candidate scoring exactly at the threshold survives.
		atThreshold := NewService(vols, opps, &fakeApplicationStore{},
			Config{ScoreThreshold: score, OpportunityLimit: 10, VolunteerLimit: 20},
			logger.NewNoOpLogger())
		matches, err := atThreshold.MatchOpportunitiesForVolunteer(ctx, "vol-1", 0)
		require.NoError(t, err)
		assert.Len(t, matches, 1)

		// One point above the threshold excludes it.
		aboveThreshold := NewService(vols, opps, &fakeApplicationStore{},
			Config{ScoreThreshold: score + 1, OpportunityLimit: 10, VolunteerLimit: 20},
			logger.NewNoOpLogger())
		matches, err = aboveThreshold.MatchOpportunitiesForVolunteer(ctx, "vol-1", 0)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}

func TestMatchVolunteersForOpportunity(t *testing.T) {
	ctx := context.Background()
	future := time.Now().Add(48 * time.Hour)

	t.Run("unknown opportunity", func(t *testing.T) {
		svc := newTestService(t,
			&fakeVolunteerStore{profiles: map[string]*volunteer.Profile{}},
			&fakeOpportunityStore{opportunities: map[string]*opportunity.Opportunity{}},
			&fakeApplicationStore{},
		)

		_, err := svc.MatchVolunteersForOpportunity(ctx, "missing", 0)
		assert.ErrorIs(t, err, ErrOpportunityNotFound)
	})

	t.Run("pending applicants are excluded", func(t *testing.T) {
		vols := &fakeVolunteerStore{profiles: map[string]*volunteer.Profile{
			"vol-1": testVolunteer("vol-1"),
			"vol-2": testVolunteer("vol-2"),
		}}
		opps := &fakeOpportunityStore{opportunities: map[string]*opportunity.Opportunity{
			"opp-1": testOpportunity("opp-1", future),
		}}
		apps := &fakeApplicationStore{applications: []*application.Application{
			{ID: "app-1", OpportunityID: "opp-1", VolunteerID: "vol-1", Status: application.StatusPending},
		}}
		svc := newTestService(t, vols, opps, apps)

		matches, err := svc.MatchVolunteersForOpportunity(ctx, "opp-1", 0)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "vol-2", matches[0].Volunteer.UserID)
	})

	t.Run("rejected applicants stay eligible", func(t *testing.T) {
		vols := &fakeVolunteerStore{profiles: map[string]*volunteer.Profile{
			"vol-1": testVolunteer("vol-1"),
		}}
		opps := &fakeOpportunityStore{opportunities: map[string]*opportunity.Opportunity{
			"opp-1": testOpportunity("opp-1", future),
		}}
		apps := &fakeApplicationStore{applications: []*application.Application{
			{ID: "app-1", OpportunityID: "opp-1", VolunteerID: "vol-1", Status: application.StatusRejected},
		}}
		svc := newTestService(t, vols, opps, apps)

		matches, err := svc.MatchVolunteersForOpportunity(ctx, "opp-1", 0)
		require.NoError(t, err)
		assert.Len(t, matches, 1)
	})

	t.Run("summary exposes reduced fields only", func(t *testing.T) {
		profile := testVolunteer("vol-1")
		profile.Skills = []string{"diving"}
		vols := &fakeVolunteerStore{profiles: map[string]*volunteer.Profile{"vol-1": profile}}
		opps := &fakeOpportunityStore{opportunities: map[string]*opportunity.Opportunity{
			"opp-1": testOpportunity("opp-1", future),
		}}
		svc := newTestService(t, vols, opps, &fakeApplicationStore{})

		matches, err := svc.MatchVolunteersForOpportunity(ctx, "opp-1", 0)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, VolunteerSummary{
			UserID:          "vol-1",
			DisplayName:     "Volunteer vol-1",
			Location:        "London",
			ExperienceLevel: volunteer.ExperienceIntermediate,
			Skills:          []string{"diving"},
		}, matches[0].Volunteer)
	})
}
