package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/rfdevuser/InventoryManagement/internal/config"
	"github.com/rfdevuser/InventoryManagement/internal/domain/models"
	"github.com/rfdevuser/InventoryManagement/internal/service/reporting"
)

// DigestGenerator produces the daily intake digest.
type DigestGenerator interface {
	Enabled() bool
	GenerateDailyDigest(ctx context.Context, day time.Time) (models.DailyDigest, error)
}

// SessionSweeper closes idle form sessions.
type SessionSweeper interface {
	Sweep(maxIdle time.Duration) int
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	digests   DigestGenerator
	sessions  SessionSweeper
	cfg       config.Config
	logger    *zap.Logger
	scheduled []cron.EntryID
}

// NewScheduler creates a new scheduler instance running jobs in the configured timezone.
func NewScheduler(cfg config.Config, digests DigestGenerator, sessions SessionSweeper, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to UTC", zap.String("timezone", cfg.Reporting.Timezone), zap.Error(err))
		location = time.UTC
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(location)),
		digests:  digests,
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler")

	if s.digests != nil && s.digests.Enabled() {
		id, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.generateDailyDigest)
		if err != nil {
			s.logger.Error("failed to schedule daily digest", zap.Error(err))
		} else {
			s.scheduled = append(s.scheduled, id)
		}
	} else {
		s.logger.Info("submission journal disabled, daily digest not scheduled")
	}

	if s.sessions != nil && s.cfg.Server.SessionIdleTTL > 0 {
		id, err := s.cron.AddFunc(s.cfg.Reporting.SweepSchedule, s.sweepSessions)
		if err != nil {
			s.logger.Error("failed to schedule session sweep", zap.Error(err))
		} else {
			s.scheduled = append(s.scheduled, id)
		}
	}

	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// Jobs returns the number of registered jobs.
func (s *Scheduler) Jobs() int {
	return len(s.scheduled)
}

func (s *Scheduler) generateDailyDigest() {
	s.logger.Info("generating daily digest")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	digest, err := s.digests.GenerateDailyDigest(ctx, time.Now())
	if err != nil {
		s.logger.Error("failed to generate daily digest", zap.Error(err))
		return
	}

	s.logger.Info(reporting.FormatDigest(digest))
}

func (s *Scheduler) sweepSessions() {
	closed := s.sessions.Sweep(s.cfg.Server.SessionIdleTTL)
	s.logger.Debug("session sweep finished", zap.Int("closed", closed))
}
