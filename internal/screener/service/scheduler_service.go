package service

import (
	"context"
	"time"

	"golang-swing-screener/internal/screener/config"
	"golang-swing-screener/pkg/common"
	"golang-swing-screener/pkg/logger"
	"golang-swing-screener/pkg/utils"

	"github.com/robfig/cron/v3"
)

// SchedulerService re-invokes the screener on a cron cadence while the
// market session is LIVE. Cancellation simply stops the re-invocation loop.
type SchedulerService interface {
	Start(ctx context.Context)
}

type schedulerService struct {
	cfg         *config.Config
	logger      *logger.Logger
	screenerSvc ScreenerService
	cronParser  cron.Parser
}

// NewSchedulerService creates a new scheduler service.
func NewSchedulerService(cfg *config.Config, log *logger.Logger, screenerSvc ScreenerService) SchedulerService {
	return &schedulerService{
		cfg:         cfg,
		logger:      log,
		screenerSvc: screenerSvc,
		cronParser:  cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
	}
}

// Start blocks until the context is cancelled.
func (s *schedulerService) Start(ctx context.Context) {
	if !s.cfg.Scheduler.Enabled {
		s.logger.Info("Scheduler disabled")
		return
	}

	schedule, err := s.cronParser.Parse(s.cfg.Scheduler.CronExpression)
	if err != nil {
		s.logger.Error("Invalid scheduler cron expression",
			logger.ErrorField(err),
			logger.StringField("cron_expression", s.cfg.Scheduler.CronExpression),
		)
		return
	}

	if s.cfg.Scheduler.RunOnStart {
		s.runOnce(ctx, true)
	}

	for {
		next := schedule.Next(utils.TimeNowIST())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Scheduler service stopping")
			return
		case <-timer.C:
			s.runOnce(ctx, false)
		}
	}
}

// runOnce triggers a screener run; outside the LIVE session the tick is
// skipped unless forced.
func (s *schedulerService) runOnce(ctx context.Context, force bool) {
	now := utils.TimeNowIST()
	session := utils.MarketSession(now)
	if !force && session != common.MarketSessionLive {
		s.logger.Debug("Skipping scheduled run outside market session", logger.StringField("session", session))
		return
	}

	if _, err := s.screenerSvc.Run(ctx); err != nil {
		s.logger.Error("Scheduled screener run failed", logger.ErrorField(err))
	}
}
