package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Varun5711/authcore/internal/logger"
	"github.com/Varun5711/authcore/internal/metrics"
	"github.com/Varun5711/authcore/internal/presenter"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// slidingWindow trims the window and records the attempt only when it is
// under the limit, so rejected retries never extend a client's lockout.
// Scores are unix milliseconds. Returns {allowed, remaining, oldest}.
var slidingWindow = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)

local count = redis.call('ZCARD', key)
if count < limit then
	redis.call('ZADD', key, now, ARGV[4])
	redis.call('PEXPIRE', key, window)
	return {1, limit - count - 1, 0}
end

local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
return {0, 0, tonumber(oldest[2])}
`)

// RateLimiter is a Redis sorted-set sliding window keyed by client IP. It
// fails open: if Redis is unreachable the request is allowed.
type RateLimiter struct {
	redis     *redis.Client
	limit     int
	window    time.Duration
	keyPrefix string
	ips       *IPResolver
	log       *logger.Logger
	now       func() time.Time
}

func NewRateLimiter(redisClient *redis.Client, limit int, window time.Duration, ips *IPResolver, log *logger.Logger) *RateLimiter {
	return &RateLimiter{
		redis:     redisClient,
		limit:     limit,
		window:    window,
		keyPrefix: "ratelimit:auth:",
		ips:       ips,
		log:       log,
		now:       time.Now,
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.keyPrefix + rl.ips.ClientIP(r)

		allowed, remaining, resetTime := rl.Allow(r.Context(), key)

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			retryAfter := int(resetTime.Sub(rl.now()).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			metrics.RateLimitRejectedTotal.Inc()
			presenter.Error(w, http.StatusTooManyRequests, "too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Allow reports whether another attempt fits in the window, the attempts
// left after this one, and when the oldest recorded attempt leaves the window.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, int, time.Time) {
	now := rl.now()
	windowMs := rl.window.Milliseconds()

	res, err := slidingWindow.Run(ctx, rl.redis, []string{key},
		now.UnixMilli(),
		windowMs,
		rl.limit,
		fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString()),
	).Int64Slice()
	if err != nil || len(res) != 3 {
		rl.log.Warn("Rate limiter unavailable, allowing request: %v", err)
		return true, rl.limit, now.Add(rl.window)
	}

	if res[0] == 1 {
		return true, int(res[1]), now.Add(rl.window)
	}

	resetTime := now.Add(rl.window)
	if res[2] > 0 {
		resetTime = time.UnixMilli(res[2]).Add(rl.window)
	}
	return false, 0, resetTime
}
