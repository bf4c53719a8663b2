package knowledge

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
)

// Scheduler runs the knowledge base reconciliation sweep on a cron schedule
type Scheduler struct {
	service *Service
	cron    *cron.Cron
	logger  arbor.ILogger
}

// NewScheduler creates a reconciliation scheduler
func NewScheduler(service *Service, logger arbor.ILogger) *Scheduler {
	return &Scheduler{
		service: service,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger,
	}
}

// Start begins the scheduled reconciliation. An empty schedule disables it.
func (s *Scheduler) Start(schedule string) error {
	if schedule == "" {
		s.logger.Info().Msg("Knowledge reconciliation scheduler disabled")
		return nil
	}

	_, err := s.cron.AddFunc(schedule, func() {
		s.runReconcile()
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info().
		Str("schedule", schedule).
		Msg("Knowledge reconciliation scheduler started")

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info().Msg("Knowledge reconciliation scheduler stopped")
}

func (s *Scheduler) runReconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	report, err := s.service.Reconcile(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Scheduled knowledge reconciliation failed")
		return
	}

	s.logger.Info().
		Int("checked", report.Checked).
		Int("orphaned_entries", report.OrphanedEntries).
		Int("orphaned_artifacts", report.OrphanedArtifacts).
		Dur("duration", time.Since(start)).
		Msg("Scheduled knowledge reconciliation completed")
}
