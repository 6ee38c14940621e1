package middleware

import (
	"net/http"

	"github.com/JeanGrijp/alerting-system/internal/adapters/http/respond"
	"github.com/JeanGrijp/alerting-system/internal/core/ports"
)

const (
	AccessTokenHeader         = "x-access-token"
	invalidAccessTokenMessage = "Invalid access token"
)

// NewAccessTokenMiddleware recusa com 401 qualquer requisição sem o token configurado.
func NewAccessTokenMiddleware(validator ports.AccessValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if validator == nil || !validator.Validate(r.Header.Get(AccessTokenHeader)) {
				respond.Error(w, http.StatusUnauthorized, invalidAccessTokenMessage)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
