package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/greensweep/backend/internal/common/logger"
)

const defaultListLimit = 50

// Service persists notifications and fans them out to the live hub and,
// when enabled, to email. It implements application.Notifier.
type Service interface {
	Notify(ctx context.Context, userID, kind, title, body string)
	ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]*Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}

type Config struct {
	EmailEnabled bool
	LiveEnabled  bool
}

type service struct {
	repo   Repository
	hub    *Hub
	email  EmailSender
	config Config
	log    logger.Logger
}

func NewService(repo Repository, hub *Hub, email EmailSender, config Config, log logger.Logger) Service {
	return &service{
		repo:   repo,
		hub:    hub,
		email:  email,
		config: config,
		log:    log,
	}
}

// Notify stores the notification and pushes it out. Fan-out failures are
// logged and swallowed so callers on the request path never fail on them.
func (s *service) Notify(ctx context.Context, userID, kind, title, body string) {
	n := &Notification{
		ID:     uuid.NewString(),
		UserID: userID,
		Kind:   kind,
		Title:  title,
		Body:   body,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.log.WithError(err).Error("failed to persist notification", map[string]interface{}{
			"user_id": userID,
			"kind":    kind,
		})
		return
	}

	if s.config.LiveEnabled && s.hub != nil {
		s.hub.Push(userID, n)
	}

	if s.config.EmailEnabled && s.email != nil {
		go s.sendEmail(userID, title, body)
	}
}

func (s *service) sendEmail(userID, title, body string) {
	ctx := context.Background()

	email, err := s.repo.GetUserEmail(ctx, userID)
	if err != nil {
		s.log.WithError(err).Warn("could not resolve email for notification", map[string]interface{}{
			"user_id": userID,
		})
		return
	}

	msg := &EmailMessage{To: email, Subject: title, Body: body}
	if err := s.email.Send(ctx, msg); err != nil {
		s.log.WithError(err).Warn("failed to send notification email", map[string]interface{}{
			"user_id": userID,
		})
	}
}

func (s *service) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]*Notification, error) {
	return s.repo.ListForUser(ctx, userID, unreadOnly, defaultListLimit)
}

func (s *service) MarkRead(ctx context.Context, id, userID string) error {
	return s.repo.MarkRead(ctx, id, userID)
}
