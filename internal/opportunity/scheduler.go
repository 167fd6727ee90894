package opportunity

import (
	"context"
	"time"

	"github.com/greensweep/backend/internal/common/logger"
)

// Scheduler runs periodic opportunity maintenance jobs.
type Scheduler struct {
	service Service
	log     logger.Logger
}

func NewScheduler(service Service, log logger.Logger) *Scheduler {
	return &Scheduler{service: service, log: log}
}

func (s *Scheduler) Start(ctx context.Context) {
	// Close out past-dated opportunities every hour
	go s.runHourly(ctx, s.service.CompletePastDated)
}

func (s *Scheduler) runHourly(ctx context.Context, task func(context.Context) error) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := task(ctx); err != nil {
				s.log.WithError(err).Error("scheduled task failed", nil)
			}
		case <-ctx.Done():
			return
		}
	}
}
