package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// LimitResult is the outcome of a rate-limit check.
type LimitResult struct {
	Allowed    bool
	Limit      int
	Window     time.Duration
	RetryAfter time.Duration
}

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (LimitResult, error)
}

// RedisLimiter counts requests per key in a fixed window backed by Redis,
// so the limit holds across process restarts and replicas.
type RedisLimiter struct {
	rdb    redis.Cmdable
	limit  int
	window time.Duration
}

// NewRedisLimiter builds a limiter allowing limit requests per window.
func NewRedisLimiter(rdb redis.Cmdable, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, limit: limit, window: window}
}

// Allow increments the counter for key. The first hit in a window sets the
// key's TTL; once the count passes the limit the remaining TTL tells the
// client when to retry.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (LimitResult, error) {
	redisKey := "ratelimit:receive:" + key

	count, err := l.rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		return LimitResult{}, err
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return LimitResult{}, err
		}
	}

	res := LimitResult{Limit: l.limit, Window: l.window}
	if count <= int64(l.limit) {
		res.Allowed = true
		return res, nil
	}

	res.RetryAfter = l.window
	if ttl, err := l.rdb.TTL(ctx, redisKey).Result(); err == nil && ttl > 0 {
		res.RetryAfter = ttl
	}
	return res, nil
}

// RateLimit rejects requests over the limit before they reach the handler,
// so throttled clients never touch the store. A limiter failure fails open
// with a log line rather than blocking traffic.
func RateLimit(limiter Limiter, logger *log.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = log.New(os.Stdout, "ratelimit ", log.LstdFlags)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := limiter.Allow(r.Context(), clientIP(r))
			if err != nil {
				logger.Printf("rate limiter unavailable, failing open: %v", err)
				next.ServeHTTP(w, r)
				return
			}

			if !res.Allowed {
				retryAfter := int(math.Ceil(res.RetryAfter.Seconds()))
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error": fmt.Sprintf("rate limit exceeded: max %d requests per %s", res.Limit, res.Window),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP keys the limiter by originating address. chi's RealIP middleware
// has already folded X-Forwarded-For / X-Real-IP into RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
