// internal/scheduler/scheduler.go
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/podworks/pod-backend/internal/config"
	"github.com/podworks/pod-backend/internal/services"
)

// Scheduler runs the recurring pipeline jobs: the nightly analytics rollup
// and, when enabled, recurring batch generation.
type Scheduler struct {
	cron              *cron.Cron
	config            *config.Config
	analyticsService  *services.AnalyticsService
	generationService *services.GenerationService
}

func New(cfg *config.Config, analyticsService *services.AnalyticsService, generationService *services.GenerationService) *Scheduler {
	return &Scheduler{
		cron:              cron.New(),
		config:            cfg,
		analyticsService:  analyticsService,
		generationService: generationService,
	}
}

func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.config.Jobs.AnalyticsRollupCron, s.runAnalyticsRollup)
	if err != nil {
		return err
	}

	// Recurring generation is opt-in; every run costs money.
	if spec := s.config.Jobs.BatchGenerateCron; spec != "" {
		if _, err := s.cron.AddFunc(spec, s.runBatchGenerate); err != nil {
			return err
		}
		logrus.WithField("cron", spec).Info("Recurring batch generation enabled")
	}

	s.cron.Start()
	logrus.WithField("cron", s.config.Jobs.AnalyticsRollupCron).Info("Scheduler started")
	return nil
}

// Stop halts the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(30 * time.Second):
		logrus.Warn("Scheduler stop timed out, abandoning running jobs")
	}
}

func (s *Scheduler) runAnalyticsRollup() {
	count, err := s.analyticsService.RollupYesterday()
	if err != nil {
		logrus.WithError(err).Error("Nightly analytics rollup failed")
		return
	}
	logrus.WithField("products", count).Info("Nightly analytics rollup finished")
}

func (s *Scheduler) runBatchGenerate() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	result, err := s.generationService.BatchGenerate(ctx, 0)
	if err != nil {
		logrus.WithError(err).Error("Scheduled batch generation failed")
		return
	}
	logrus.WithFields(logrus.Fields{
		"planned":   result.Planned,
		"generated": result.Generated,
		"failed":    result.Failed,
	}).Info("Scheduled batch generation finished")
}
