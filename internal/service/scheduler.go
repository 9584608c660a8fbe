package service

import (
	"context"

	"golang-stock-advisor/config"
	"golang-stock-advisor/pkg/logger"

	"github.com/robfig/cron/v3"
)

// SchedulerService triggers the rating batch on the configured cron schedule.
// Manual runs remain available through the HTTP API.
type SchedulerService interface {
	Start(ctx context.Context) error
	Stop()
}

type schedulerService struct {
	cfg         *config.Config
	log         *logger.Logger
	ratingBatch RatingBatchService
	cron        *cron.Cron
}

func NewSchedulerService(cfg *config.Config, log *logger.Logger, ratingBatch RatingBatchService) SchedulerService {
	return &schedulerService{
		cfg:         cfg,
		log:         log,
		ratingBatch: ratingBatch,
		cron:        cron.New(),
	}
}

func (s *schedulerService) Start(ctx context.Context) error {
	if s.cfg.Pipeline.CronSchedule == "" {
		s.log.Info("No pipeline cron schedule configured, scheduler disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.cfg.Pipeline.CronSchedule, func() {
		s.log.Info("Scheduled rating batch triggered",
			logger.StringField("schedule", s.cfg.Pipeline.CronSchedule))
		if _, err := s.ratingBatch.Run(ctx); err != nil {
			s.log.Error("Scheduled rating batch failed", logger.ErrorField(err))
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("Pipeline scheduler started",
		logger.StringField("schedule", s.cfg.Pipeline.CronSchedule))
	return nil
}

func (s *schedulerService) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info("Pipeline scheduler stopped")
}
