package http

import (
	"log/slog"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/outfit-concierge/internal/infra/config"
)

// errorHandlingMiddleware serializes the last recorded error into the shared
// {"error":{code,message}} envelope.
func errorHandlingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		httpErr := asHTTPError(c.Errors.Last().Err)
		message := httpErr.Message
		if message == "" {
			message = httpErr.Error()
		}

		level := slog.LevelWarn
		if httpErr.Status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			"code", httpErr.Code,
			"status", httpErr.Status,
			"path", c.Request.URL.Path,
			"error", httpErr.Err,
		)

		c.JSON(httpErr.Status, gin.H{
			"error": gin.H{
				"code":    httpErr.Code,
				"message": message,
			},
		})
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}

func rateLimitMiddleware(cfg config.RateLimitConfig, logger *slog.Logger) gin.HandlerFunc {
	if !cfg.Enabled || cfg.RequestsPerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiter := newIPRateLimiter(cfg)
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !limiter.allow(ip) {
			logger.Warn("rate limit exceeded", "ip", ip, "path", c.Request.URL.Path)
			abortWithError(c, NewHTTPError(http.StatusTooManyRequests, "rate_limit_exceeded", "too many requests", nil))
			return
		}
		c.Next()
	}
}

// ipRateLimiter is a token bucket per client IP. Buckets idle longer than the
// ttl are dropped on the next allow call.
type ipRateLimiter struct {
	mu            sync.Mutex
	buckets       map[string]*tokenBucket
	ratePerMinute float64
	burst         float64
	ttl           time.Duration
}

type tokenBucket struct {
	tokens   float64
	lastSeen time.Time
}

func newIPRateLimiter(cfg config.RateLimitConfig) *ipRateLimiter {
	return &ipRateLimiter{
		buckets:       make(map[string]*tokenBucket),
		ratePerMinute: float64(cfg.RequestsPerMinute),
		burst:         float64(cfg.Burst),
		ttl:           5 * time.Minute,
	}
}

func (l *ipRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	bucket, ok := l.buckets[ip]
	if !ok {
		bucket = &tokenBucket{tokens: l.burst, lastSeen: now}
		l.buckets[ip] = bucket
	} else {
		if elapsed := now.Sub(bucket.lastSeen).Minutes(); elapsed > 0 {
			bucket.tokens = math.Min(l.burst, bucket.tokens+elapsed*l.ratePerMinute)
		}
		bucket.lastSeen = now
	}
	l.evictIdleLocked(now)

	if bucket.tokens < 1 {
		return false
	}
	bucket.tokens--
	return true
}

func (l *ipRateLimiter) evictIdleLocked(now time.Time) {
	for ip, bucket := range l.buckets {
		if now.Sub(bucket.lastSeen) > l.ttl {
			delete(l.buckets, ip)
		}
	}
}
