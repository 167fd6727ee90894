package dashboard

import (
	"context"
	"fmt"
)

type Service interface {
	VolunteerStats(ctx context.Context, volunteerID string) (*VolunteerStats, error)
	OrganizationStats(ctx context.Context, organizationID string) (*OrganizationStats, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) VolunteerStats(ctx context.Context, volunteerID string) (*VolunteerStats, error) {
	stats, err := s.repo.VolunteerStats(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("collecting volunteer stats: %w", err)
	}
	return stats, nil
}

func (s *service) OrganizationStats(ctx context.Context, organizationID string) (*OrganizationStats, error) {
	stats, err := s.repo.OrganizationStats(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("collecting organization stats: %w", err)
	}
	return stats, nil
}
