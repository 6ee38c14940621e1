// Package router monta as rotas HTTP da API sobre chi.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/JeanGrijp/alerting-system/internal/adapters/http/handlers"
	httpMiddleware "github.com/JeanGrijp/alerting-system/internal/adapters/http/middleware"
	"github.com/JeanGrijp/alerting-system/internal/core/ports"
)

type Dependencies struct {
	Limiter   ports.RateLimiter
	Validator ports.AccessValidator
	Metrics   ports.MetricsReader

	// TrustProxyHeaders usa X-Forwarded-For / X-Real-IP como endereço do cliente.
	TrustProxyHeaders bool
	LogRequests       bool
}

// New aplica o limiter globalmente: toda rota, inclusive /api/metrics e 404s, consome a janela do cliente.
func New(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	if deps.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	if deps.LogRequests {
		r.Use(chimiddleware.Logger)
	}
	r.Use(chimiddleware.Recoverer)
	r.Use(httpMiddleware.NewRateLimiterMiddleware(deps.Limiter))

	r.With(httpMiddleware.NewAccessTokenMiddleware(deps.Validator)).
		Post("/api/submit", handlers.SubmitHandler)
	r.Method(http.MethodGet, "/api/metrics", handlers.NewMetricsHandler(deps.Metrics))

	return r
}
