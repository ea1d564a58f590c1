package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func newLimitedRouter(mws ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mws...)
	r.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func hit(r *gin.Engine) int {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestLoginRateLimitBlocksAfterMax(t *testing.T) {
	r := newLimitedRouter(LoginRateLimit(newTestRedis(t)))

	for i := 0; i < loginLimitMax; i++ {
		require.Equal(t, http.StatusOK, hit(r), "attempt %d should pass", i+1)
	}

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestLoginRateLimitIgnoresAuthState(t *testing.T) {
	authed := func(c *gin.Context) {
		c.Set(ContextKeyAdminID, "admin-1")
		c.Next()
	}
	r := newLimitedRouter(authed, LoginRateLimit(newTestRedis(t)))

	for i := 0; i < loginLimitMax; i++ {
		require.Equal(t, http.StatusOK, hit(r))
	}
	assert.Equal(t, http.StatusTooManyRequests, hit(r), "login limiter must not grant an auth bypass")
}

func TestRateLimitBypassesAuthenticated(t *testing.T) {
	authed := func(c *gin.Context) {
		c.Set(ContextKeyAdminID, "admin-1")
		c.Next()
	}
	r := newLimitedRouter(authed, RateLimit(newTestRedis(t)))

	for i := 0; i < rateLimitMax+10; i++ {
		require.Equal(t, http.StatusOK, hit(r))
	}
}

func TestRateLimitBlocksAnonymousBurst(t *testing.T) {
	r := newLimitedRouter(RateLimit(newTestRedis(t)))

	blocked := false
	for i := 0; i < rateLimitMax+1; i++ {
		if hit(r) == http.StatusTooManyRequests {
			blocked = true
			break
		}
	}
	assert.True(t, blocked, "a burst past the per-second limit must be rejected")
}
