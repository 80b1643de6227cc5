package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	admindomain "github.com/sngm3741/halal-food-club/api/internal/admin/domain"
)

type cutoffRecorder struct {
	LifecycleService
	cutoffs []time.Time
}

func (r *cutoffRecorder) PurgeRejectedOlderThan(_ context.Context, cutoff time.Time) (PurgeReport, error) {
	r.cutoffs = append(r.cutoffs, cutoff)
	return PurgeReport{}, nil
}

func TestRetentionSweeper_SweepOnceUsesWindow(t *testing.T) {
	clock := newTestClock()
	recorder := &cutoffRecorder{}
	sweeper := NewRetentionSweeper(recorder, 0, 0, discardLogger{}, clock.Now)

	_, err := sweeper.SweepOnce(context.Background())
	require.NoError(t, err)
	require.Len(t, recorder.cutoffs, 1)
	assert.Equal(t, clock.Now().Add(-30*24*time.Hour), recorder.cutoffs[0])
}

func TestRetentionSweeper_PurgesThroughLifecycle(t *testing.T) {
	f := newLifecycleFixture(t)
	now := f.clock.Now()
	stale := f.seed(t, admindomain.StatusRejected, false, "")
	fresh := f.seed(t, admindomain.StatusRejected, false, "")
	backdate(t, f.submissions, stale, now.Add(-31*24*time.Hour))
	backdate(t, f.submissions, fresh, now.Add(-29*24*time.Hour))

	sweeper := NewRetentionSweeper(f.svc, DefaultRetentionWindow, time.Hour, discardLogger{}, f.clock.Now)
	report, err := sweeper.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Deleted)

	_, err = f.submissions.FindByID(context.Background(), stale.ID)
	require.ErrorIs(t, err, admindomain.ErrNotFound)
	f.reload(t, fresh.ID)
}

func TestRetentionSweeper_RunStopsOnCancel(t *testing.T) {
	recorder := &cutoffRecorder{}
	sweeper := NewRetentionSweeper(recorder, time.Hour, time.Millisecond, discardLogger{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancellation")
	}
}
