package currency

import (
	"context"
	"time"

	"github.com/botanoz/turistpassfinal-sub000/internal/domain"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type refresher interface {
	AttemptRefresh(ctx context.Context) (domain.RefreshOutcome, error)
}

// Cron fires periodic refresh attempts. The tick runs more often than the
// cadence allows; RefreshScheduler decides whether each tick actually calls
// the provider, so the tick interval only bounds reaction latency.
type Cron struct {
	refresher refresher
	tick      time.Duration
	// -----
	sched gocron.Scheduler
}

const defaultTick = 5 * time.Minute

func NewCron(r refresher, tick time.Duration) *Cron {
	if tick <= 0 {
		tick = defaultTick
	}
	return &Cron{refresher: r, tick: tick}
}

func (c *Cron) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	c.sched = scheduler

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		outcome, refreshErr := c.refresher.AttemptRefresh(jobCtx)
		if refreshErr != nil {
			logrus.Errorf("Refresh job %s failed: %v", execID, refreshErr)
			return
		}
		switch outcome.State {
		case domain.RefreshDone:
			logrus.Infof("Refresh job %s updated %d currencies", execID, len(outcome.UpdatedCodes))
		case domain.RefreshSkipped:
			logrus.Debugf("Refresh job %s skipped (%s), next allowed at %s", execID, outcome.SkipReason, outcome.NextAllowedAt)
		case domain.RefreshFailed:
			logrus.Warnf("Refresh job %s: provider error: %v", execID, outcome.Err)
		}
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(c.tick),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := c.Shutdown(); sdErr != nil {
			logrus.Errorf("Refresh cron shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (c *Cron) Shutdown() error {
	if c.sched == nil {
		return nil
	}
	err := c.sched.Shutdown()
	c.sched = nil
	return err
}
