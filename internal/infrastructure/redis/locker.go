// Package redis provides a per-key lock shared by every API replica.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const (
	defaultTTL   = 30 * time.Second
	defaultRetry = 50 * time.Millisecond
	keyPrefix    = "halal-food-club:lock:"
)

// releaseScript deletes the key only if it still holds our token.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// renewScript extends the key's expiry only if it still holds our token.
var renewScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// Logger is the subset of *log.Logger the locker needs.
type Logger interface {
	Printf(format string, v ...any)
}

// Locker implements SET NX PX locking with token-checked release.
// While a lock is held its lease is extended every ttl/3, so TTL only bounds
// how long a crashed holder blocks others, not how long a live holder may work.
type Locker struct {
	client *goredis.Client
	ttl    time.Duration
	retry  time.Duration
	logger Logger
}

// NewLocker wraps client. ttl <= 0 selects 30s.
func NewLocker(client *goredis.Client, ttl time.Duration, logger Logger) *Locker {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Locker{client: client, ttl: ttl, retry: defaultRetry, logger: logger}
}

// Lock polls until the key is acquired or ctx is done.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := keyPrefix + key
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire %s: %w", redisKey, err)
		}
		if ok {
			stop := keepAlive(max(l.ttl/3, time.Millisecond), func(ctx context.Context) (bool, error) {
				return l.extend(ctx, redisKey, token)
			}, func(err error) {
				l.logf("renew lock %s: %v", redisKey, err)
			})
			return l.releaser(redisKey, token, stop), nil
		}

		timer := time.NewTimer(l.retry)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (l *Locker) releaser(key, token string, stopRenewal func()) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			stopRenewal()
			l.release(key, token)
		})
	}
}

func (l *Locker) extend(ctx context.Context, key, token string) (bool, error) {
	n, err := renewScript.Run(ctx, l.client, []string{key}, token, l.ttl.Milliseconds()).Int64()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// keepAlive calls extend every interval until the returned stop is called or
// extend reports the lease gone. Errors are reported and retried on the next tick.
// stop blocks until the renewal goroutine has exited.
func keepAlive(interval time.Duration, extend func(context.Context) (bool, error), report func(error)) func() {
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
			}
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			held, err := extend(ctx)
			cancel()
			switch {
			case err != nil:
				report(err)
			case !held:
				report(errLeaseLost)
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
		<-exited
	}
}

var errLeaseLost = errors.New("lease expired before renewal")

func (l *Locker) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := releaseScript.Run(ctx, l.client, []string{key}, token).Err()
	if err != nil && !errors.Is(err, goredis.Nil) {
		l.logf("release lock %s: %v", key, err)
	}
}

func (l *Locker) logf(format string, v ...any) {
	if l.logger != nil {
		l.logger.Printf(format, v...)
	}
}

// Ping checks connectivity at startup.
func (l *Locker) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}
