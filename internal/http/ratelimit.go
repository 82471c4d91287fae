package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"credverify/internal/domain"
	"credverify/internal/http/common"

	"github.com/gin-gonic/gin"
)

// rateLimitMiddleware enforces a per-client-IP fixed window on the
// verification endpoint. Limiter errors fail open: a broken limiter must
// not take verification down with it.
func rateLimitMiddleware(limiter domain.RateLimiter, requests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || requests <= 0 {
			c.Next()
			return
		}
		key := fmt.Sprintf("ip:%s:verify", c.ClientIP())
		decision, err := limiter.Allow(c.Request.Context(), key, requests, window)
		if err != nil {
			c.Next()
			return
		}
		writeRateLimitHeaders(c, decision)
		if !decision.Allowed {
			common.WriteErrorCode(c, http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded")
			return
		}
		c.Next()
	}
}

func writeRateLimitHeaders(c *gin.Context, decision domain.RateLimitDecision) {
	if decision.Limit > 0 {
		c.Header("RateLimit-Limit", strconv.Itoa(decision.Limit))
	}
	if decision.Remaining >= 0 {
		c.Header("RateLimit-Remaining", strconv.Itoa(decision.Remaining))
	}
	if !decision.ResetAt.IsZero() {
		c.Header("RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))
		if !decision.Allowed {
			retryAfter := int64(time.Until(decision.ResetAt).Seconds())
			if retryAfter < 0 {
				retryAfter = 0
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
		}
	}
}
