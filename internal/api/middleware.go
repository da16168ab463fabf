package api

import (
	"crypto/subtle"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"ngnfx/internal/adapters"
	"ngnfx/internal/metrics"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

const apiKeyHeader = "x-api-key"

func writeError(w http.ResponseWriter, statusCode int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// APIKey accepts requests whose x-api-key header matches one of keys. An empty key set rejects everything.
func APIKey(keys []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !keyAllowed(keys, r.Header.Get(apiKeyHeader)) {
				writeError(w, http.StatusUnauthorized, "Unauthorized - Invalid API key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func keyAllowed(keys []string, presented string) bool {
	if presented == "" {
		return false
	}
	for _, k := range keys {
		if subtle.ConstantTimeCompare([]byte(k), []byte(presented)) == 1 {
			return true
		}
	}
	return false
}

// IPAllowList restricts access to the listed client IPs. An empty list allows all.
func IPAllowList(ips []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(ips))
	for _, ip := range ips {
		allowed[ip] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(allowed) > 0 {
				if _, ok := allowed[clientIP(r)]; !ok {
					writeError(w, http.StatusForbidden, "Forbidden - IP not allowed")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP is the first x-forwarded-for entry, falling back to the connection address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("x-forwarded-for"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit counts requests per API key, or per client IP for anonymous callers.
// A failing store lets the request through.
func RateLimit(store adapters.RateLimitStore, m *metrics.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(apiKeyHeader)
			if key == "" {
				key = "ip:" + clientIP(r)
			}

			allowed, err := store.Increment(r.Context(), key)
			if err != nil {
				logrus.WithError(err).Warn("Rate limit store unavailable, allowing request")
				allowed = true
			}
			if !allowed {
				m.ObserveRateLimited()
				writeError(w, http.StatusTooManyRequests, "Rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CronAuth requires "Authorization: Bearer <secret>". An empty secret rejects everything.
func CronAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			expected := "Bearer " + secret
			got := r.Header.Get("Authorization")
			if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()

		next.ServeHTTP(ww, r)

		logrus.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(started).String(),
		}).Debug("HTTP request served")
	})
}
