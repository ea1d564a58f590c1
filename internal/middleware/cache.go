package middleware

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	cachePrefix      = "folio:http_cache:"
	cacheMaxBody     = 1 << 20 // 1 MiB
	DefaultCacheTTL  = 15 * time.Second
	cacheStatusHit   = "hit"
	cacheStatusField = "x-folio-cache"
)

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type,omitempty"`
	BodyBase64  string `json:"body_base64"`
}

type cacheBodyWriter struct {
	gin.ResponseWriter
	body     []byte
	overflow bool
}

func (w *cacheBodyWriter) Write(data []byte) (int, error) {
	w.capture(data)
	return w.ResponseWriter.Write(data)
}

func (w *cacheBodyWriter) WriteString(s string) (int, error) {
	w.capture([]byte(s))
	return w.ResponseWriter.WriteString(s)
}

func (w *cacheBodyWriter) capture(data []byte) {
	if w.overflow || len(data) == 0 {
		return
	}
	remaining := cacheMaxBody - len(w.body)
	if remaining <= 0 {
		w.overflow = true
		return
	}
	if len(data) > remaining {
		w.body = append(w.body, data[:remaining]...)
		w.overflow = true
		return
	}
	w.body = append(w.body, data...)
}

// Cache returns a short-TTL redis response cache for public GET endpoints.
// Authenticated requests bypass it, so an admin previewing the live site
// never sees a stale copy.
func Cache(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return func(c *gin.Context) {
		if rdb == nil || c.Request.Method != http.MethodGet || IsAuthenticated(c) {
			c.Next()
			return
		}

		key := cachePrefix + c.Request.URL.Path
		ctx := c.Request.Context()

		if raw, err := rdb.Get(ctx, key).Bytes(); err == nil && len(raw) > 0 {
			var payload cachedResponse
			if json.Unmarshal(raw, &payload) == nil {
				if body, err := base64.StdEncoding.DecodeString(payload.BodyBase64); err == nil {
					c.Header(cacheStatusField, cacheStatusHit)
					c.Data(payload.Status, payload.ContentType, body)
					c.Abort()
					return
				}
			}
		}

		buffer := &cacheBodyWriter{ResponseWriter: c.Writer}
		c.Writer = buffer
		c.Next()

		if c.Writer.Status() != http.StatusOK || buffer.overflow || len(buffer.body) == 0 {
			return
		}

		payload := cachedResponse{
			Status:      http.StatusOK,
			ContentType: c.Writer.Header().Get("Content-Type"),
			BodyBase64:  base64.StdEncoding.EncodeToString(buffer.body),
		}
		if raw, err := json.Marshal(payload); err == nil {
			rdb.Set(ctx, key, raw, ttl)
		}
	}
}

// PurgeCache drops the cached copy of one path. Publish calls this so the
// public endpoint reflects the promotion immediately instead of after TTL.
func PurgeCache(ctx context.Context, rdb *redis.Client, path string) {
	if rdb == nil {
		return
	}
	rdb.Del(ctx, cachePrefix+path)
}
