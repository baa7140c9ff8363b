// Package scheduler drives the recurring month-end rating run: rate every
// active tenant for the just-closed period and commit the statements.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/meterworks/metrobill/internal/clock"
	"github.com/meterworks/metrobill/internal/config"
	"github.com/meterworks/metrobill/internal/period"
	ratingdomain "github.com/meterworks/metrobill/internal/rating/domain"
	statementdomain "github.com/meterworks/metrobill/internal/statement/domain"
)

type Scheduler struct {
	cron         *cron.Cron
	log          *zap.Logger
	cfg          *config.Config
	clock        clock.Clock
	ratingSvc    ratingdomain.Service
	statementSvc statementdomain.Service
}

type SchedulerParam struct {
	fx.In

	Log          *zap.Logger
	Cfg          *config.Config
	Clock        clock.Clock
	RatingSvc    ratingdomain.Service
	StatementSvc statementdomain.Service
}

func NewScheduler(p SchedulerParam) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		log:          p.Log.Named("scheduler"),
		cfg:          p.Cfg,
		clock:        p.Clock,
		ratingSvc:    p.RatingSvc,
		statementSvc: p.StatementSvc,
	}
}

func (s *Scheduler) Start() error {
	spec := s.cfg.Scheduler.Cron
	if _, err := s.cron.AddFunc(spec, s.runMonthEnd); err != nil {
		return err
	}
	s.log.Info("scheduler started", zap.String("cron", spec))
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	s.log.Info("scheduler stopping")
	s.cron.Stop()
}

// runMonthEnd rates the period that closed before the trigger instant. The
// default schedule fires on the 1st, so the previous calendar month is due.
func (s *Scheduler) runMonthEnd() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	p := period.FromTime(s.clock.Now(ctx)).Previous()
	s.log.Info("month-end rating run starting", zap.String("period", p.String()))

	runs, err := s.ratingSvc.RunAllTenants(ctx, p)
	if err != nil {
		s.log.Error("month-end rating run failed", zap.String("period", p.String()), zap.Error(err))
		return
	}

	committed := 0
	for _, run := range runs {
		if err := s.statementSvc.Commit(ctx, run); err != nil {
			s.log.Error("statement commit failed",
				zap.Int64("tenant_id", run.TenantID.Int64()),
				zap.String("period", run.Period),
				zap.Error(err))
			continue
		}
		committed++
	}

	s.log.Info("month-end rating run completed",
		zap.String("period", p.String()),
		zap.Int("tenants", len(runs)),
		zap.Int("committed", committed))
}

var Module = fx.Module("scheduler",
	fx.Provide(NewScheduler),
)
