// Package middleware disponibiliza middlewares HTTP específicos da aplicação.
package middleware

import (
	"log"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/JeanGrijp/alerting-system/internal/adapters/http/respond"
	"github.com/JeanGrijp/alerting-system/internal/core/domain"
	"github.com/JeanGrijp/alerting-system/internal/core/ports"
)

const rateLimitExceededMessage = "Too many failed attempts, please try again later."

// NewRateLimiterMiddleware aplica o controle de admissão a todas as rotas, antes de qualquer handler.
//
// O endereço vem de RemoteAddr; atrás de proxy, use chi/middleware.RealIP antes deste middleware.
func NewRateLimiterMiddleware(limiter ports.RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			decision, err := limiter.Allow(r.Context(), extractIP(r))
			if err != nil {
				if domain.IsBlockedError(err) {
					writeRateLimitHeaders(w, decision)
					w.Header().Set("Retry-After", formatSeconds(decision))
					respond.Error(w, http.StatusTooManyRequests, rateLimitExceededMessage)
					return
				}

				log.Printf("rate limiter failed: %v", err)
				respond.Error(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
				return
			}

			writeRateLimitHeaders(w, decision)
			next.ServeHTTP(w, r)
		})
	}
}

func extractIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}

func writeRateLimitHeaders(w http.ResponseWriter, decision domain.Decision) {
	h := w.Header()
	h.Set("RateLimit-Limit", strconv.Itoa(decision.AppliedRule.Requests))
	h.Set("RateLimit-Remaining", strconv.Itoa(decision.Remaining()))
	h.Set("RateLimit-Reset", formatSeconds(decision))
}

// formatSeconds arredonda para cima: um reset em 0.2s vira 1.
func formatSeconds(decision domain.Decision) string {
	seconds := math.Ceil(decision.ResetAfter.Seconds())
	if seconds < 0 {
		seconds = 0
	}
	return strconv.Itoa(int(seconds))
}
