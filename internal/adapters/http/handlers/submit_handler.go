// Package handlers agrupa os handlers HTTP da API.
package handlers

import (
	"net/http"

	"github.com/JeanGrijp/alerting-system/internal/adapters/http/respond"
)

const submitSuccessMessage = "Request successful"

// SubmitHandler responde às submissões que passaram pelo limiter e pelo token.
func SubmitHandler(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, respond.MessageBody{Message: submitSuccessMessage})
}
