package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"videotube/pkg/apperror"
	"videotube/pkg/logger"
	"videotube/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter decides whether the caller identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// NewLimiter shares counters through redis when a client is configured and
// falls back to per-process token buckets otherwise.
func NewLimiter(redisClient *redis.Client, limit int, window time.Duration) Limiter {
	if redisClient != nil {
		return &redisLimiter{client: redisClient, limit: limit, window: window}
	}
	return NewLocalLimiter(limit, window)
}

type redisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// Allow counts the hit and reads the key's TTL in one transaction. A counter
// left without an expiry, for example by a failed EXPIRE, gets one here so a
// caller can never be locked out for good.
func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	key = "rate_limit:" + key
	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	ttl := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	if ttl.Val() < 0 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, err
		}
	}
	return incr.Val() <= int64(l.limit), nil
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type localLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewLocalLimiter(requests int, window time.Duration) Limiter {
	if requests <= 0 {
		requests = 1
	}
	if window <= 0 {
		window = time.Second
	}
	return &localLimiter{
		visitors:  make(map[string]*visitor),
		limit:     rate.Every(window / time.Duration(requests)),
		burst:     requests,
		ttl:       2 * window,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *localLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	// Idle visitors are dropped at most once per ttl.
	if now.Sub(l.lastSweep) >= l.ttl {
		for k, other := range l.visitors {
			if now.Sub(other.lastSeen) > l.ttl {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}
	l.mu.Unlock()

	return v.limiter.AllowN(now, 1), nil
}

// RateLimitMiddleware keys on route and client IP. It runs ahead of
// authentication, so the IP is the only caller identity available. When the
// limiter backend fails the request is let through and the failure logged.
func RateLimitMiddleware(limiter Limiter, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}

		key := fmt.Sprintf("%s:%s:%s", c.Request.Method, endpoint, c.ClientIP())
		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.Warn("Rate limit check failed: %v", err)
			c.Next()
			return
		}

		if !allowed {
			metrics.RecordRateLimitHit(endpoint)
			_ = c.Error(apperror.TooManyRequests("Rate limit exceeded"))
			c.Abort()
			return
		}

		c.Next()
	}
}
