package middleware

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"his-backend/pkg/response"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RateLimitMiddleware throttles per client IP with a fixed Redis window.
// Applied to credential endpoints only.
type RateLimitMiddleware struct {
	redisClient *redis.Client
	log         *logrus.Logger
	limit       int
	window      time.Duration
}

func NewRateLimitMiddleware(redisClient *redis.Client, log *logrus.Logger, limit int, window time.Duration) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		redisClient: redisClient,
		log:         log,
		limit:       limit,
		window:      window,
	}
}

func (m *RateLimitMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := fmt.Sprintf("rate_limit:%s:%s", r.URL.Path, ClientIP(r))

		count, err := m.redisClient.Incr(r.Context(), key).Result()
		if err != nil {
			// Redis being down should not lock everyone out
			m.log.Warnf("Rate limiter unavailable: %+v", err)
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			if err := m.redisClient.Expire(r.Context(), key, m.window).Err(); err != nil {
				m.log.Warnf("Failed to set rate limit window: %+v", err)
			}
		}

		if count > int64(m.limit) {
			response.TooManyRequests(w, "Too many attempts, try again later")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ClientIP prefers X-Forwarded-For so limits hold behind a reverse proxy.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
