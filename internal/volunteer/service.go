package volunteer

import (
	"context"
	"errors"

	"github.com/greensweep/backend/internal/common/logger"
)

var ErrProfileNotFound = errors.New("volunteer profile not found")

type Service interface {
	UpsertProfile(ctx context.Context, userID string, dto *UpsertProfileDTO) (*Profile, error)
	GetProfile(ctx context.Context, userID string) (*Profile, error)
}

type service struct {
	repo Repository
	log  logger.Logger
}

func NewService(repo Repository, log logger.Logger) Service {
	return &service{repo: repo, log: log}
}

func (s *service) UpsertProfile(ctx context.Context, userID string, dto *UpsertProfileDTO) (*Profile, error) {
	profile := &Profile{
		UserID:               userID,
		Latitude:             dto.Latitude,
		Longitude:            dto.Longitude,
		MaxTravelDistanceKm:  dto.MaxTravelDistanceKm,
		WasteTypePreferences: dto.WasteTypePreferences,
		Skills:               dto.Skills,
		ExperienceLevel:      dto.ExperienceLevel,
		Location:             dto.Location,
	}

	// A coordinate pair is all-or-nothing; a lone latitude is useless for
	// distance scoring and is dropped.
	if dto.Latitude == nil || dto.Longitude == nil {
		profile.Latitude = nil
		profile.Longitude = nil
	}

	if dto.Availability != nil {
		profile.Availability = &Availability{
			Days:           dto.Availability.Days,
			TimePreference: dto.Availability.TimePreference,
		}
	}

	if err := s.repo.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.log.Info("volunteer profile saved", map[string]interface{}{
		"user_id": userID,
	})

	return profile, nil
}

func (s *service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}
