package middleware

import (
	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/biabrauna/econsciente-api/internal/handlers/dto"
)

const maxTrackedClients = 10000

// RateLimiter limita requisições por IP com token bucket.
// Os limiters ficam num LRU para não crescer sem limite.
type RateLimiter struct {
	limiters *lru.Cache[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

// NewRateLimiter cria um RateLimiter com rps requisições por segundo e burst
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	limiters, _ := lru.New[string, *rate.Limiter](maxTrackedClients)
	return &RateLimiter{limiters: limiters, limit: rate.Limit(rps), burst: burst}
}

// Middleware responde 429 quando o IP excede o limite
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.limiterFor(c.ClientIP()).Allow() {
			c.Header("Retry-After", "1")
			dto.WriteProblem(c, dto.RateLimitedErrorResponseI18n(c))
			return
		}
		c.Next()
	}
}

func (l *RateLimiter) limiterFor(key string) *rate.Limiter {
	if limiter, ok := l.limiters.Get(key); ok {
		return limiter
	}
	limiter := rate.NewLimiter(l.limit, l.burst)
	if previous, ok, _ := l.limiters.PeekOrAdd(key, limiter); ok {
		return previous
	}
	return limiter
}
