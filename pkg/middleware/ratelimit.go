package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/Thejackcode565/Wish-A-Day/internal/services"
	"github.com/Thejackcode565/Wish-A-Day/pkg/ratelimit"
	"github.com/sirupsen/logrus"
)

// RateLimitMiddleware caps how many times a single source IP can pass
// through per day. The counter sees only a hash of the address.
func RateLimitMiddleware(counter ratelimit.Counter, limit int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "wishes:" + services.HashIP(clientIP(r))

			count, err := counter.Incr(r.Context(), key)
			if err != nil {
				// Rate limiting must not take the service down with it.
				logrus.WithError(err).Error("Rate limit counter unavailable")
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(limit) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{
					"detail": "Daily wish limit reached",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
