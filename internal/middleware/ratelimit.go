package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// fixed window: INCR the sender's key and set its expiry on first hit.
var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RateLimiter enforces a per-sender fixed-window message limit backed by
// Redis, so multiple bot instances share one budget. It fails open: if
// Redis is unreachable the message is processed anyway.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(rdb *redis.Client, limit int) *RateLimiter {
	if limit <= 0 {
		limit = 20
	}
	return &RateLimiter{rdb: rdb, limit: limit, window: time.Minute}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "rl:" + c.Request.PostFormValue("From")
		if key == "rl:" {
			key = "rl:" + c.ClientIP()
		}

		count, err := rl.incr(c.Request.Context(), key)
		if err != nil {
			slog.Warn("rate limit check failed", "error", err)
			c.Next()
			return
		}
		if count > int64(rl.limit) {
			slog.Debug("rate limited", "key", key, "count", count, "limit", rl.limit)
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) incr(ctx context.Context, key string) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, rl.rdb, []string{key}, rl.window.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}
	n, ok := res.(int64)
	if !ok {
		return 0, nil
	}
	return n, nil
}
