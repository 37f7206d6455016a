package http

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/khirotaka/toolfault/internal/config"
	"github.com/khirotaka/toolfault/pkg/toolerr"
	"golang.org/x/time/rate"
)

const (
	// RequestIDHeader carries the correlation ID for a request.
	RequestIDHeader = "X-Request-ID"
	// APIKeyHeader carries the caller's API key.
	APIKeyHeader = "X-API-Key"

	maxBodySize = 100 * 1024 // 100KB

	contextKeyAPIKey = "apiKey"
)

// RequestID assigns a correlation ID to each request. An inbound
// X-Request-ID is kept as-is so callers can trace retries across systems.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// BodyLimit caps the request body size before JSON binding reads it.
func BodyLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
		c.Next()
	}
}

// APIKeyAuth authenticates requests against the configured API keys. With no
// keys configured the gateway is open and every request passes through.
func APIKeyAuth(auth config.AuthConfig) gin.HandlerFunc {
	keys := make(map[string]config.APIKey, len(auth.Keys))
	for _, k := range auth.Keys {
		keys[k.Key] = k
	}

	return func(c *gin.Context) {
		if len(keys) == 0 {
			c.Next()
			return
		}

		raw := c.GetHeader(APIKeyHeader)
		if raw == "" {
			respondError(c, toolerr.New(toolerr.ErrCodeUnauthorized, "missing API key"))
			return
		}

		key, ok := keys[raw]
		if !ok {
			respondError(c, toolerr.New(toolerr.ErrCodeUnauthorized, "invalid API key"))
			return
		}

		c.Set(contextKeyAPIKey, key)
		c.Next()
	}
}

// apiKeyFromContext returns the API key the request authenticated with, if any.
func apiKeyFromContext(c *gin.Context) (config.APIKey, bool) {
	v, ok := c.Get(contextKeyAPIKey)
	if !ok {
		return config.APIKey{}, false
	}
	key, ok := v.(config.APIKey)
	return key, ok
}

// RateLimit throttles requests per caller. Authenticated requests share one
// limiter per key name, anonymous requests one per client IP. A zero RPS
// disables limiting entirely.
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	if cfg.RPS <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	limiterFor := func(caller string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		lim, ok := limiters[caller]
		if !ok {
			lim = rate.NewLimiter(rate.Limit(cfg.RPS), burst)
			limiters[caller] = lim
		}
		return lim
	}

	return func(c *gin.Context) {
		caller := c.ClientIP()
		if key, ok := apiKeyFromContext(c); ok {
			caller = key.Name
		}

		res := limiterFor(caller).Reserve()
		if !res.OK() {
			respondError(c, toolerr.New(toolerr.ErrCodeRateLimited, "rate limit exceeded"))
			return
		}
		if delay := res.Delay(); delay > 0 {
			// 枠は消費せずに返す
			res.Cancel()
			retryAfterMs := delay.Milliseconds()
			if retryAfterMs == 0 {
				retryAfterMs = 1
			}
			respondError(c, toolerr.New(toolerr.ErrCodeRateLimited, "rate limit exceeded").WithDetails(map[string]any{
				"retryAfterMs": retryAfterMs,
			}))
			return
		}
		c.Next()
	}
}
