package application

import (
	"context"
	"time"
)

// DefaultRetentionWindow is how long rejected submissions are kept.
const DefaultRetentionWindow = 30 * 24 * time.Hour

// RetentionSweeper periodically purges stale rejected submissions.
type RetentionSweeper struct {
	lifecycle LifecycleService
	window    time.Duration
	interval  time.Duration
	logger    Logger
	now       func() time.Time
}

// NewRetentionSweeper defaults window to 30 days and interval to one day.
func NewRetentionSweeper(lifecycle LifecycleService, window, interval time.Duration, logger Logger, now func() time.Time) *RetentionSweeper {
	if window <= 0 {
		window = DefaultRetentionWindow
	}
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	if now == nil {
		now = time.Now
	}
	return &RetentionSweeper{
		lifecycle: lifecycle,
		window:    window,
		interval:  interval,
		logger:    logger,
		now:       now,
	}
}

// SweepOnce purges rejected submissions older than the retention window.
func (r *RetentionSweeper) SweepOnce(ctx context.Context) (PurgeReport, error) {
	cutoff := r.now().UTC().Add(-r.window)
	report, err := r.lifecycle.PurgeRejectedOlderThan(ctx, cutoff)
	if r.logger != nil {
		r.logger.Printf("retention sweep cutoff=%s scanned=%d deleted=%d failed=%d err=%v",
			cutoff.Format(time.RFC3339), report.Scanned, report.Deleted, len(report.Failed), err)
	}
	return report, err
}

// Run sweeps on every tick until ctx is cancelled.
func (r *RetentionSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = r.SweepOnce(ctx)
		}
	}
}
