package opportunity

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"github.com/greensweep/backend/internal/common/logger"
)

var (
	ErrOpportunityNotFound = errors.New("opportunity not found")
	ErrNotOwner            = errors.New("opportunity belongs to another organization")
	ErrPastEventDate       = errors.New("event date must be in the future")
)

type Service interface {
	Create(ctx context.Context, organizationID string, dto *CreateOpportunityDTO) (*Opportunity, error)
	GetByID(ctx context.Context, id string) (*Opportunity, error)
	List(ctx context.Context, filter ListFilter) ([]*Opportunity, error)
	UpdateStatus(ctx context.Context, id, organizationID, status string) error
	UploadPhoto(ctx context.Context, id, organizationID string, file multipart.File, header *multipart.FileHeader) (string, error)
	CompletePastDated(ctx context.Context) error
}

type service struct {
	repo    Repository
	uploads UploadService
	log     logger.Logger
}

func NewService(repo Repository, uploads UploadService, log logger.Logger) Service {
	return &service{repo: repo, uploads: uploads, log: log}
}

func (s *service) Create(ctx context.Context, organizationID string, dto *CreateOpportunityDTO) (*Opportunity, error) {
	eventDate, err := time.Parse(time.RFC3339, dto.EventDate)
	if err != nil {
		return nil, errors.New("event_date must be RFC3339")
	}

	if eventDate.Before(time.Now()) {
		return nil, ErrPastEventDate
	}

	opp := &Opportunity{
		ID:                      uuid.NewString(),
		OrganizationID:          organizationID,
		Title:                   dto.Title,
		Description:             dto.Description,
		Latitude:                dto.Latitude,
		Longitude:               dto.Longitude,
		Location:                dto.Location,
		WasteTypes:              dto.WasteTypes,
		RequiredSkills:          dto.RequiredSkills,
		RequiredExperienceLevel: dto.RequiredExperienceLevel,
		TimeOfDay:               dto.TimeOfDay,
		EventDate:               eventDate,
		Status:                  StatusActive,
	}

	if dto.Latitude == nil || dto.Longitude == nil {
		opp.Latitude = nil
		opp.Longitude = nil
	}

	if err := s.repo.Create(ctx, opp); err != nil {
		return nil, err
	}

	s.log.Info("opportunity created", map[string]interface{}{
		"opportunity_id":  opp.ID,
		"organization_id": organizationID,
		"event_date":      opp.EventDate,
	})

	return opp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Opportunity, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]*Opportunity, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateStatus(ctx context.Context, id, organizationID, status string) error {
	opp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if opp.OrganizationID != organizationID {
		return ErrNotOwner
	}

	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *service) UploadPhoto(ctx context.Context, id, organizationID string, file multipart.File, header *multipart.FileHeader) (string, error) {
	opp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	if opp.OrganizationID != organizationID {
		return "", ErrNotOwner
	}

	url, err := s.uploads.UploadFile(ctx, file, header, "opportunities")
	if err != nil {
		return "", err
	}

	if err := s.repo.SetPhotoURL(ctx, id, url); err != nil {
		return "", err
	}

	// Replaced photos are removed from storage; a failed delete only
	// leaves an orphaned file behind, so it is logged and not returned.
	if opp.PhotoURL != nil && *opp.PhotoURL != url {
		if err := s.uploads.DeleteFile(ctx, *opp.PhotoURL); err != nil {
			s.log.WithError(err).Warn("failed to delete replaced photo", map[string]interface{}{
				"opportunity_id": id,
			})
		}
	}

	return url, nil
}

func (s *service) CompletePastDated(ctx context.Context) error {
	n, err := s.repo.CompletePastDated(ctx)
	if err != nil {
		return err
	}

	if n > 0 {
		s.log.Info("completed past-dated opportunities", map[string]interface{}{
			"count": n,
		})
	}

	return nil
}
