package redis

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLockerDefaults(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	locker := NewLocker(client, 0, nil)
	assert.Equal(t, defaultTTL, locker.ttl)
	assert.Equal(t, defaultRetry, locker.retry)

	locker = NewLocker(client, time.Minute, nil)
	assert.Equal(t, time.Minute, locker.ttl)
}

func TestLockReportsUnreachableServer(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewLocker(client, time.Second, nil).Lock(ctx, "submission:1")
	require.Error(t, err)
}

func TestKeepAliveExtendsUntilStopped(t *testing.T) {
	var calls atomic.Int32
	stop := keepAlive(5*time.Millisecond, func(context.Context) (bool, error) {
		calls.Add(1)
		return true, nil
	}, func(err error) { t.Errorf("unexpected report: %v", err) })

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)
	stop()
	after := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, calls.Load())

	stop()
}

func TestKeepAliveStopsWhenLeaseLost(t *testing.T) {
	var calls atomic.Int32
	var reported atomic.Value
	stop := keepAlive(5*time.Millisecond, func(context.Context) (bool, error) {
		calls.Add(1)
		return false, nil
	}, func(err error) { reported.Store(err) })

	assert.Eventually(t, func() bool { return reported.Load() != nil }, time.Second, time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.ErrorIs(t, reported.Load().(error), errLeaseLost)

	stop()
}

func TestKeepAliveRetriesAfterError(t *testing.T) {
	var calls atomic.Int32
	var reports atomic.Int32
	stop := keepAlive(5*time.Millisecond, func(context.Context) (bool, error) {
		if calls.Add(1) == 1 {
			return false, errors.New("connection reset")
		}
		return true, nil
	}, func(error) { reports.Add(1) })
	defer stop()

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)
	assert.Equal(t, int32(1), reports.Load())
}
