package middleware

import (
	"net/http"
	"sync"
	"time"

	"barbershop/config"
	"barbershop/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	clientCleanupInterval = time.Minute
	clientStaleAfter      = 3 * time.Minute
)

type rateLimitClient struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimitMiddleware applies a per-IP token bucket to the public
// unauthenticated endpoints.
type RateLimitMiddleware struct {
	mu      sync.Mutex
	clients map[string]*rateLimitClient
	r       rate.Limit
	burst   int
}

// NewRateLimitMiddleware creates the per-IP rate limiter from config.
func NewRateLimitMiddleware(cfg *config.Config) *RateLimitMiddleware {
	rps := 5.0
	burst := 10
	if cfg.RateLimit != nil {
		if cfg.RateLimit.RPS > 0 {
			rps = cfg.RateLimit.RPS
		}
		if cfg.RateLimit.Burst > 0 {
			burst = cfg.RateLimit.Burst
		}
	}

	m := &RateLimitMiddleware{
		clients: make(map[string]*rateLimitClient),
		r:       rate.Limit(rps),
		burst:   burst,
	}

	// cleanup stale entries every minute
	go func() {
		for {
			time.Sleep(clientCleanupInterval)
			m.mu.Lock()
			for ip, c := range m.clients {
				if time.Since(c.seen) > clientStaleAfter {
					delete(m.clients, ip)
				}
			}
			m.mu.Unlock()
		}
	}()

	return m
}

func (m *RateLimitMiddleware) limiterFor(ip string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.clients[ip]; ok {
		c.seen = time.Now()

		return c.lim
	}

	lim := rate.NewLimiter(m.r, m.burst)
	m.clients[ip] = &rateLimitClient{lim: lim, seen: time.Now()}

	return lim
}

// Limit rejects requests above the per-IP rate with 429.
func (m *RateLimitMiddleware) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.limiterFor(c.RealIP()).Allow() {
			return response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests", "")
		}

		return next(c)
	}
}
