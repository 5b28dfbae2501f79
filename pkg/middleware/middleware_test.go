package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"videotube/pkg/apperror"
	"videotube/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	log := logger.New()
	log.SetOutput(io.Discard)
	r.Use(ErrorHandler(log))
	return r
}

func testLogger() *logger.Logger {
	log := logger.New()
	log.SetOutput(io.Discard)
	return log
}

func TestErrorHandler_AppError(t *testing.T) {
	router := setupTestRouter()
	router.GET("/test", func(c *gin.Context) {
		_ = c.Error(apperror.Forbidden("You are not allowed to update this video"))
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"status":403,"success":false,"message":"You are not allowed to update this video"}`, w.Body.String())
}

func TestErrorHandler_UnknownErrorIsInternal(t *testing.T) {
	router := setupTestRouter()
	router.GET("/test", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: relation does not exist"))
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "relation")
	assert.Contains(t, w.Body.String(), "something went wrong")
}

func TestErrorHandler_Panic(t *testing.T) {
	router := setupTestRouter()
	router.GET("/test", func(c *gin.Context) {
		panic("nil map")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestErrorHandler_NoErrorPassesThrough(t *testing.T) {
	router := setupTestRouter()
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLocalLimiter(t *testing.T) {
	limiter := NewLocalLimiter(2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, _ := limiter.Allow(ctx, "1.2.3.4")
	assert.False(t, ok)

	ok, _ = limiter.Allow(ctx, "5.6.7.8")
	assert.True(t, ok)
}

func TestLocalLimiter_SweepsIdleVisitorsPeriodically(t *testing.T) {
	l := NewLocalLimiter(5, time.Minute).(*localLimiter)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := start
	l.now = func() time.Time { return clock }
	l.lastSweep = start
	ctx := context.Background()

	_, _ = l.Allow(ctx, "idle")
	clock = start.Add(l.ttl / 2)
	_, _ = l.Allow(ctx, "busy")
	assert.Len(t, l.visitors, 2)
	assert.Equal(t, start, l.lastSweep)

	clock = start.Add(l.ttl + time.Second)
	_, _ = l.Allow(ctx, "busy")
	assert.Len(t, l.visitors, 1)
	assert.Contains(t, l.visitors, "busy")
	assert.Equal(t, clock, l.lastSweep)

	// Within a ttl of the last sweep nothing is scanned, even stale entries.
	l.visitors["stale"] = &visitor{lastSeen: start}
	clock = clock.Add(time.Second)
	_, _ = l.Allow(ctx, "busy")
	assert.Contains(t, l.visitors, "stale")
}

func TestRedisLimiter_RepairsMissingExpiry(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })
	ctx := context.Background()
	limiter := NewLimiter(client, 2, time.Minute)
	key := "GET:/test:203.0.113.9"
	require.NoError(t, client.Del(ctx, "rate_limit:"+key).Err())
	t.Cleanup(func() { client.Del(ctx, "rate_limit:"+key) })

	ok, err := limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	ttl, err := client.TTL(ctx, "rate_limit:"+key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	// A counter stuck without an expiry is over the limit but still recovers.
	require.NoError(t, client.Set(ctx, "rate_limit:"+key, 10, 0).Err())
	ok, err = limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
	ttl, err = client.TTL(ctx, "rate_limit:"+key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestNewLimiter_WithoutRedisIsLocal(t *testing.T) {
	_, isLocal := NewLimiter(nil, 10, time.Second).(*localLimiter)
	assert.True(t, isLocal)
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func TestRateLimitMiddleware(t *testing.T) {
	router := setupTestRouter()
	router.Use(RateLimitMiddleware(NewLocalLimiter(1, time.Minute), testLogger()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")
}

type recordingLimiter struct {
	keys []string
}

func (r *recordingLimiter) Allow(_ context.Context, key string) (bool, error) {
	r.keys = append(r.keys, key)
	return true, nil
}

func TestRateLimitMiddleware_KeysOnClientIP(t *testing.T) {
	limiter := &recordingLimiter{}
	router := setupTestRouter()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Next()
	})
	router.Use(RateLimitMiddleware(limiter, testLogger()))
	router.GET("/videos/:videoId", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest(http.MethodGet, "/videos/abc", nil)
	req.RemoteAddr = "198.51.100.7:5123"
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, []string{"GET:/videos/:videoId:198.51.100.7"}, limiter.keys)
}

func TestRateLimitMiddleware_BackendFailureFailsOpen(t *testing.T) {
	router := setupTestRouter()
	router.Use(RateLimitMiddleware(failingLimiter{}, testLogger()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBodyLimit(t *testing.T) {
	router := setupTestRouter()
	router.Use(BodyLimit(16, 1024))
	router.POST("/test", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			_ = c.Error(apperror.PayloadTooLarge("request body too large"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"a":"b"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"content":"this is far too long"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/test", bytes.NewReader(make([]byte, 512)))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBodyLimit_UnknownLengthIsCapped(t *testing.T) {
	router := setupTestRouter()
	router.Use(BodyLimit(8, 8))
	router.POST("/test", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			_ = c.Error(apperror.PayloadTooLarge("request body too large"))
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/test", io.NopCloser(strings.NewReader("0123456789")))
	req.ContentLength = -1
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestMetricsAndRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New()
	log.SetOutput(&buf)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Metrics(), RequestLogger(log))
	router.GET("/videos/:videoId", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/videos/abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, buf.String(), "GET /videos/abc")
	assert.Contains(t, buf.String(), `"status":204`)
}
