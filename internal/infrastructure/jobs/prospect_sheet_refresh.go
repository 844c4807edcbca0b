package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"vendor-onboarding.backend/pkg/logger"
)

type prospectRefresher interface {
	Refresh(ctx context.Context) (int, error)
}

// ProspectSheetRefreshJob keeps the prospect sheet cache warm
type ProspectSheetRefreshJob struct {
	source   prospectRefresher
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

func NewProspectSheetRefreshJob(source prospectRefresher, interval time.Duration) *ProspectSheetRefreshJob {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &ProspectSheetRefreshJob{
		source:   source,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start refreshes once, then on every tick until ctx is done or Stop is called.
func (j *ProspectSheetRefreshJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting prospect sheet refresh job", zap.Duration("interval", j.interval))

	j.refresh(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Prospect sheet refresh job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Prospect sheet refresh job stopped")
			return
		case <-ticker.C:
			j.refresh(ctx)
		}
	}
}

func (j *ProspectSheetRefreshJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

func (j *ProspectSheetRefreshJob) refresh(ctx context.Context) {
	n, err := j.source.Refresh(ctx)
	if err != nil {
		logger.Warn(ctx, "Prospect sheet refresh failed", zap.Error(err))
		return
	}
	logger.Debug(ctx, "Prospect sheet refreshed", zap.Int("rows", n))
}
