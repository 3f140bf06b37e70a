package mw

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"equipment-tracker-backend/internal/metrics"
)

type cachedResponse struct {
	status  int
	headers http.Header
	body    []byte
}

type bodyCacheWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyCacheWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w bodyCacheWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// ListCache caches successful GET responses for a fixed TTL and drops every
// entry as soon as a mutation succeeds. A zero TTL disables it.
type ListCache struct {
	store   *cache.Cache
	ttl     time.Duration
	metrics *metrics.Metrics
}

// NewListCache creates a ListCache with the given TTL.
func NewListCache(ttl time.Duration, m *metrics.Metrics) *ListCache {
	lc := &ListCache{ttl: ttl, metrics: m}
	if ttl > 0 {
		lc.store = cache.New(ttl, 2*ttl)
	}
	return lc
}

// Enabled reports whether responses are cached at all.
func (lc *ListCache) Enabled() bool {
	return lc.store != nil
}

// Flush drops every cached response.
func (lc *ListCache) Flush() {
	if lc.store != nil {
		lc.store.Flush()
	}
}

// Serve answers GET requests from the cache and fills it on a miss.
func (lc *ListCache) Serve() gin.HandlerFunc {
	return func(c *gin.Context) {
		if lc.store == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.RequestURI
		if resp, found := lc.store.Get(key); found {
			cached := resp.(cachedResponse)
			for k, v := range cached.headers {
				c.Writer.Header()[k] = v
			}
			c.Writer.Header().Set("X-Cache", "HIT")
			c.Writer.WriteHeader(cached.status)
			c.Writer.Write(cached.body)
			lc.metrics.IncrementCacheHit()
			c.Abort()
			return
		}

		blw := &bodyCacheWriter{body: bytes.NewBuffer(nil), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// Only cache successful responses
		if blw.Status() >= 200 && blw.Status() < 300 {
			lc.store.Set(key, cachedResponse{
				status:  blw.Status(),
				headers: blw.Header().Clone(),
				body:    blw.body.Bytes(),
			}, lc.ttl)
		}
	}
}

// Invalidate flushes the cache after a successful mutation.
func (lc *ListCache) Invalidate() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if status := c.Writer.Status(); status >= 200 && status < 300 {
			lc.Flush()
		}
	}
}
