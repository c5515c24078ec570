// Package scheduler runs the periodic background jobs: catalog sync and
// disclosure cache refresh.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
)

// Job is a named unit of scheduled work.
type Job struct {
	Name     string
	Schedule string // cron expression
	Run      func(ctx context.Context) error
}

// Service wraps the cron runner with logging and per-job error isolation.
type Service struct {
	cron    *cron.Cron
	logger  arbor.ILogger
	timeout time.Duration
}

// NewService creates a scheduler. Job runs are bounded by timeout.
func NewService(logger arbor.ILogger, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Service{
		cron:    cron.New(),
		logger:  logger,
		timeout: timeout,
	}
}

// Register adds a job to the schedule. A failing job logs and waits for
// its next tick; it never stops the scheduler.
func (s *Service) Register(job Job) error {
	if job.Run == nil {
		return fmt.Errorf("job %s has no run function", job.Name)
	}

	_, err := s.cron.AddFunc(job.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		start := time.Now()
		if err := job.Run(ctx); err != nil {
			s.logger.Warn().
				Str("job", job.Name).
				Err(err).
				Msg("Scheduled job failed")
			return
		}

		s.logger.Info().
			Str("job", job.Name).
			Str("duration", time.Since(start).Round(time.Millisecond).String()).
			Msg("Scheduled job completed")
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s (%q): %w", job.Name, job.Schedule, err)
	}

	s.logger.Info().
		Str("job", job.Name).
		Str("schedule", job.Schedule).
		Msg("Job registered")

	return nil
}

// Start begins running scheduled jobs.
func (s *Service) Start() {
	s.cron.Start()
	s.logger.Info().Msg("Scheduler started")
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Service) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("Scheduler stopped")
}
