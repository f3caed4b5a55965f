package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"video-tutor/pkg/response"
)

// RateLimit throttles requests per client IP. Answering costs completion
// tokens, so the budget sits in front of every tutor route.
func (mw Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !mw.clients.Allow(ip) {
			mw.l.Warnf(c.Request.Context(), "middleware: rate limit exceeded for %s on %s", ip, c.FullPath())
			response.TooManyRequests(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// clientLimiters keeps one token bucket per client with auto-cleanup.
type clientLimiters struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newClientLimiters(requestsPerMin int) *clientLimiters {
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &clientLimiters{
		limiters: expirable.NewLRU[string, *rate.Limiter](
			1000, // max tracked clients
			nil,
			time.Minute*5,
		),
		rate:  rate.Limit(float64(requestsPerMin) / 60.0),
		burst: burst,
	}
}

func (cl *clientLimiters) Allow(key string) bool {
	limiter, ok := cl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(cl.rate, cl.burst)
		cl.limiters.Add(key, limiter)
	}
	return limiter.Allow()
}
