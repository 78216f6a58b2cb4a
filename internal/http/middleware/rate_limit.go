package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/diagnosis/patrol-checkpoints/internal/http/response"
	"github.com/diagnosis/patrol-checkpoints/internal/repository"
)

// RateLimitConfig defines rate limiting parameters
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	KeyFunc  func(r *http.Request) []string
}

type RateLimiter struct {
	store  repository.RateLimitRepository
	config RateLimitConfig
}

func NewRateLimiter(store repository.RateLimitRepository, config RateLimitConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = IPKeyFunc
	}
	return &RateLimiter{store: store, config: config}
}

// Middleware answers 429 once any key of the request exceeds the limit.
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rl.config.Requests <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			for _, key := range rl.config.KeyFunc(r) {
				allowed, err := rl.store.CheckRateLimit(r.Context(), key, rl.config.Requests, rl.config.Window)
				if err == nil && !allowed {
					w.Header().Set("Retry-After", retryAfter(rl.config.Window))
					response.RateLimit(w, "too many requests, try again later")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func retryAfter(window time.Duration) string {
	secs := int(window.Seconds())
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// IPKeyFunc keys requests by path and client IP.
func IPKeyFunc(r *http.Request) []string {
	ip := ClientIP(r)
	if ip == "" {
		return nil
	}
	return []string{"ip:" + r.URL.Path + ":" + ip}
}

// ClientIP is the host part of RemoteAddr. Forwarding headers are ignored here;
// deployments behind a trusted proxy mount chi's RealIP first, which rewrites RemoteAddr.
func ClientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
