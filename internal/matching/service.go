package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/greensweep/backend/internal/application"
	"github.com/greensweep/backend/internal/common/logger"
	"github.com/greensweep/backend/internal/opportunity"
	"github.com/greensweep/backend/internal/volunteer"
)

var (
	ErrVolunteerNotFound   = errors.New("volunteer not found")
	ErrOpportunityNotFound = errors.New("opportunity not found")
)

// Read-only stores the engine consumes. The engine never mutates the records
// it reads; results computed from a stale snapshot are safe to serve.

type VolunteerStore interface {
	GetProfile(ctx context.Context, userID string) (*volunteer.Profile, error)
	ListProfiles(ctx context.Context) ([]*volunteer.Profile, error)
}

type OpportunityStore interface {
	GetByID(ctx context.Context, id string) (*opportunity.Opportunity, error)
	List(ctx context.Context, filter opportunity.ListFilter) ([]*opportunity.Opportunity, error)
}

type ApplicationStore interface {
	List(ctx context.Context, filter application.ListFilter) ([]*application.Application, error)
}

type Service interface {
	MatchOpportunitiesForVolunteer(ctx context.Context, volunteerID string, limit int) ([]*OpportunityMatch, error)
	MatchVolunteersForOpportunity(ctx context.Context, opportunityID string, limit int) ([]*VolunteerMatch, error)
}

// Config bounds the result sets and sets the inclusion threshold on the
// rounded [0,100] blended score.
type Config struct {
	ScoreThreshold   int
	OpportunityLimit int
	VolunteerLimit   int
}

func DefaultConfig() Config {
	return Config{
		ScoreThreshold:   30,
		OpportunityLimit: 10,
		VolunteerLimit:   20,
	}
}

type service struct {
	volunteers    VolunteerStore
	opportunities OpportunityStore
	applications  ApplicationStore
	scorer        *Scorer
	config        Config
	log           logger.Logger
}

func NewService(
	volunteers VolunteerStore,
	opportunities OpportunityStore,
	applications ApplicationStore,
	config Config,
	log logger.Logger,
) Service {
	return &service{
		volunteers:    volunteers,
		opportunities: opportunities,
		applications:  applications,
		scorer:        NewScorer(DefaultWeights()),
		config:        config,
		log:           log,
	}
}

func (s *service) MatchOpportunitiesForVolunteer(ctx context.Context, volunteerID string, limit int) ([]*OpportunityMatch, error) {
	if limit <= 0 {
		limit = s.config.OpportunityLimit
	}

	profile, err := s.volunteers.GetProfile(ctx, volunteerID)
	if err != nil {
		if errors.Is(err, volunteer.ErrProfileNotFound) {
			return nil, ErrVolunteerNotFound
		}
		return nil, fmt.Errorf("loading volunteer profile: %w", err)
	}

	excluded, err := s.excludedOpportunities(ctx, volunteerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	candidates, err := s.opportunities.List(ctx, opportunity.ListFilter{
		Status:  opportunity.StatusActive,
		MinDate: &now,
	})
	if err != nil {
		return nil, fmt.Errorf("listing candidate opportunities: %w", err)
	}

	recordPoolSize("opportunities_for_volunteer", len(candidates))

	matches := make([]*OpportunityMatch, 0, len(candidates))
	for _, opp := range candidates {
		if excluded[opp.ID] {
			continue
		}

		score, breakdown := s.scorer.ScorePair(profile, opp)
		recordBlendedScore(score)
		if score < s.config.ScoreThreshold {
			continue
		}

		matches = append(matches, &OpportunityMatch{
			Opportunity: opp,
			Score:       score,
			Breakdown:   breakdown,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Opportunity.ID < matches[j].Opportunity.ID
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	recordMatchRequest("opportunities_for_volunteer")
	s.log.WithFields(map[string]interface{}{
		"volunteer_id": volunteerID,
		"candidates":   len(candidates),
		"matches":      len(matches),
	}).Debug("matched opportunities for volunteer", nil)

	return matches, nil
}

func (s *service) MatchVolunteersForOpportunity(ctx context.Context, opportunityID string, limit int) ([]*VolunteerMatch, error) {
	if limit <= 0 {
		limit = s.config.VolunteerLimit
	}

	opp, err := s.opportunities.GetByID(ctx, opportunityID)
	if err != nil {
		if errors.Is(err, opportunity.ErrOpportunityNotFound) {
			return nil, ErrOpportunityNotFound
		}
		return nil, fmt.Errorf("loading opportunity: %w", err)
	}

	excluded, err := s.excludedVolunteers(ctx, opportunityID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.volunteers.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing candidate volunteers: %w", err)
	}

	recordPoolSize("volunteers_for_opportunity", len(candidates))

	matches := make([]*VolunteerMatch, 0, len(candidates))
	for _, profile := range candidates {
		if excluded[profile.UserID] {
			continue
		}

		score, breakdown := s.scorer.ScorePair(profile, opp)
		recordBlendedScore(score)
		if score < s.config.ScoreThreshold {
			continue
		}

		matches = append(matches, &VolunteerMatch{
			Volunteer: VolunteerSummary{
				UserID:          profile.UserID,
				DisplayName:     profile.DisplayName,
				Location:        profile.Location,
				ExperienceLevel: profile.ExperienceLevel,
				Skills:          profile.Skills,
			},
			Score:     score,
			Breakdown: breakdown,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Volunteer.UserID < matches[j].Volunteer.UserID
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	recordMatchRequest("volunteers_for_opportunity")
	s.log.WithFields(map[string]interface{}{
		"opportunity_id": opportunityID,
		"candidates":     len(candidates),
		"matches":        len(matches),
	}).Debug("matched volunteers for opportunity", nil)

	return matches, nil
}

// excludedOpportunities returns the opportunity IDs this volunteer already
// has an open (pending or accepted) application for.
func (s *service) excludedOpportunities(ctx context.Context, volunteerID string) (map[string]bool, error) {
	apps, err := s.applications.List(ctx, application.ListFilter{
		VolunteerID: volunteerID,
		StatusIn:    []string{application.StatusPending, application.StatusAccepted},
	})
	if err != nil {
		return nil, fmt.Errorf("building exclusion set: %w", err)
	}

	excluded := make(map[string]bool, len(apps))
	for _, app := range apps {
		excluded[app.OpportunityID] = true
	}
	return excluded, nil
}

func (s *service) excludedVolunteers(ctx context.Context, opportunityID string) (map[string]bool, error) {
	apps, err := s.applications.List(ctx, application.ListFilter{
		OpportunityID: opportunityID,
		StatusIn:      []string{application.StatusPending, application.StatusAccepted},
	})
	if err != nil {
		return nil, fmt.Errorf("building exclusion set: %w", err)
	}

	excluded := make(map[string]bool, len(apps))
	for _, app := range apps {
		excluded[app.VolunteerID] = true
	}
	return excluded, nil
}
