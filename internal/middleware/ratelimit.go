package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	rateLimitMax     = 50
	rateLimitWindow  = time.Second
	loginLimitMax    = 5
	loginLimitWindow = time.Minute
)

// RateLimit returns a middleware that enforces a per-IP limit of 50 requests
// per second for unauthenticated traffic. Authenticated admins bypass it.
func RateLimit(rdb *redis.Client) gin.HandlerFunc {
	return limitWith(rdb, "folio:rate_limit", rateLimitMax, rateLimitWindow, true)
}

// LoginRateLimit returns a stricter limiter for the login endpoints: 5
// attempts per minute per IP. It applies regardless of auth state, since its
// whole point is slowing down credential guessing.
func LoginRateLimit(rdb *redis.Client) gin.HandlerFunc {
	return limitWith(rdb, "folio:login_limit", loginLimitMax, loginLimitWindow, false)
}

func limitWith(rdb *redis.Client, prefix string, max int64, window time.Duration, bypassAuthed bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if bypassAuthed && IsAuthenticated(c) {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		windowKey := time.Now().Unix() / int64(window/time.Second)
		key := fmt.Sprintf("%s:%s:%d", prefix, ip, windowKey)

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			// Redis being down should not take the site down with it.
			c.Next()
			return
		}

		if count == 1 {
			rdb.PExpire(ctx, key, window+time.Second)
		}

		if count > max {
			c.Header("Retry-After", fmt.Sprintf("%d", int(window/time.Second)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"ok":      0,
				"code":    http.StatusTooManyRequests,
				"message": "too many requests, slow down",
			})
			return
		}

		c.Next()
	}
}
