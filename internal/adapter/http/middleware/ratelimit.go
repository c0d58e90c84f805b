package middleware

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/easybank/internal/adapter/http/dto"
	"github.com/iho/easybank/internal/domain"
	"github.com/iho/easybank/internal/usecase"
)

var rateLimitRejections = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_rate_limit_rejections_total",
		Help: "Total number of requests rejected by the rate limiter",
	},
	[]string{"route"},
)

// RateLimitMiddleware throttles requests per client and route using the
// shared sliding-window limiter. Keys are clientIP:route, so one noisy
// client cannot exhaust a route for everyone else.
type RateLimitMiddleware struct {
	limiter usecase.RateLimiter
	limit   int
	window  time.Duration
}

// NewRateLimitMiddleware creates a new RateLimitMiddleware.
func NewRateLimitMiddleware(limiter usecase.RateLimiter, limit int, window time.Duration) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		limit:   limit,
		window:  window,
	}
}

// Limit wraps next with throttling, using route as the stable key segment
// for the request pattern (never the raw URL, which would explode the
// keyspace).
func (m *RateLimitMiddleware) Limit(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r) + ":" + route

			if err := m.limiter.Check(r.Context(), key, m.limit, m.window); err != nil {
				rateLimitRejections.WithLabelValues(route).Inc()

				var rle *domain.RateLimitError
				if errors.As(err, &rle) {
					w.Header().Set("Retry-After", strconv.Itoa(int(rle.RetryAfter.Seconds())))
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(dto.ErrorResponse{
					Error:   "rate limit exceeded",
					Message: err.Error(),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the client IP from the request.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
