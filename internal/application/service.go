package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/greensweep/backend/internal/common/logger"
	"github.com/greensweep/backend/internal/opportunity"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("an open application for this opportunity already exists")
	ErrOpportunityClosed   = errors.New("opportunity is not accepting applications")
	ErrNotApplicant        = errors.New("application belongs to another volunteer")
	ErrNotOwner            = errors.New("opportunity belongs to another organization")
	ErrInvalidTransition   = errors.New("invalid status transition")
)

// OpportunityGetter is the slice of the opportunity service this package needs.
type OpportunityGetter interface {
	GetByID(ctx context.Context, id string) (*opportunity.Opportunity, error)
}

// Notifier delivers a notification to a user. Implementations must not block
// the calling request path for long; delivery failures are logged, not returned.
type Notifier interface {
	Notify(ctx context.Context, userID, kind, title, body string)
}

// NoopNotifier satisfies Notifier and does nothing.
type NoopNotifier struct{}

func (NoopNotifier) Notify(ctx context.Context, userID, kind, title, body string) {}

type Service interface {
	Apply(ctx context.Context, volunteerID string, dto *ApplyDTO) (*Application, error)
	Respond(ctx context.Context, applicationID, organizationID, status string) (*Application, error)
	Withdraw(ctx context.Context, applicationID, volunteerID string) (*Application, error)
	ListForVolunteer(ctx context.Context, volunteerID string) ([]*Application, error)
	ListForOpportunity(ctx context.Context, opportunityID, organizationID string) ([]*Application, error)
}

type service struct {
	repo          Repository
	opportunities OpportunityGetter
	notifier      Notifier
	log           logger.Logger
}

func NewService(repo Repository, opportunities OpportunityGetter, notifier Notifier, log logger.Logger) Service {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &service{
		repo:          repo,
		opportunities: opportunities,
		notifier:      notifier,
		log:           log,
	}
}

func (s *service) Apply(ctx context.Context, volunteerID string, dto *ApplyDTO) (*Application, error) {
	opp, err := s.opportunities.GetByID(ctx, dto.OpportunityID)
	if err != nil {
		return nil, err
	}

	if opp.Status != opportunity.StatusActive {
		return nil, ErrOpportunityClosed
	}

	open, err := s.repo.HasOpenApplication(ctx, dto.OpportunityID, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("checking existing application: %w", err)
	}
	if open {
		return nil, ErrAlreadyApplied
	}

	app := &Application{
		ID:            uuid.NewString(),
		OpportunityID: dto.OpportunityID,
		VolunteerID:   volunteerID,
		Status:        StatusPending,
	}
	if dto.Message != "" {
		app.Message = &dto.Message
	}

	if err := s.repo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("creating application: %w", err)
	}

	s.log.WithFields(map[string]interface{}{
		"application_id": app.ID,
		"opportunity_id": app.OpportunityID,
		"volunteer_id":   volunteerID,
	}).Info("application submitted", nil)

	s.notifier.Notify(ctx, opp.OrganizationID, "application_received",
		"New volunteer application",
		fmt.Sprintf("A volunteer applied to %q", opp.Title))

	return app, nil
}

func (s *service) Respond(ctx context.Context, applicationID, organizationID, status string) (*Application, error) {
	if status != StatusAccepted && status != StatusRejected {
		return nil, ErrInvalidTransition
	}

	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	opp, err := s.opportunities.GetByID(ctx, app.OpportunityID)
	if err != nil {
		return nil, err
	}
	if opp.OrganizationID != organizationID {
		return nil, ErrNotOwner
	}

	// Only pending applications can be accepted or rejected.
	if app.Status != StatusPending {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	app.Status = status
	app.RespondedAt = &now

	if err := s.repo.UpdateStatus(ctx, app); err != nil {
		return nil, fmt.Errorf("updating application status: %w", err)
	}

	s.log.WithFields(map[string]interface{}{
		"application_id": app.ID,
		"status":         status,
	}).Info("application responded", nil)

	title := "Application accepted"
	if status == StatusRejected {
		title = "Application not accepted"
	}
	s.notifier.Notify(ctx, app.VolunteerID, "application_"+status, title,
		fmt.Sprintf("Your application to %q was %s", opp.Title, status))

	return app, nil
}

func (s *service) Withdraw(ctx context.Context, applicationID, volunteerID string) (*Application, error) {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.VolunteerID != volunteerID {
		return nil, ErrNotApplicant
	}

	// Pending and accepted applications may be withdrawn; withdrawing frees
	// the pair for matching again.
	if app.Status != StatusPending && app.Status != StatusAccepted {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	app.Status = StatusWithdrawn
	app.RespondedAt = &now

	if err := s.repo.UpdateStatus(ctx, app); err != nil {
		return nil, fmt.Errorf("withdrawing application: %w", err)
	}

	s.log.WithFields(map[string]interface{}{
		"application_id": app.ID,
	}).Info("application withdrawn", nil)

	return app, nil
}

func (s *service) ListForVolunteer(ctx context.Context, volunteerID string) ([]*Application, error) {
	return s.repo.List(ctx, ListFilter{VolunteerID: volunteerID})
}

func (s *service) ListForOpportunity(ctx context.Context, opportunityID, organizationID string) ([]*Application, error) {
	opp, err := s.opportunities.GetByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	if opp.OrganizationID != organizationID {
		return nil, ErrNotOwner
	}

	return s.repo.List(ctx, ListFilter{OpportunityID: opportunityID})
}
