package services

import (
	"crypto/subtle"

	"github.com/JeanGrijp/alerting-system/internal/core/ports"
)

// AccessValidator compara o token enviado com o segredo configurado.
// Token ausente e token errado são tratados igualmente; segredo vazio rejeita tudo.
type AccessValidator struct {
	secret []byte
}

var _ ports.AccessValidator = (*AccessValidator)(nil)

func NewAccessValidator(secret string) *AccessValidator {
	return &AccessValidator{secret: []byte(secret)}
}

func (v *AccessValidator) Validate(token string) bool {
	if len(v.secret) == 0 || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), v.secret) == 1
}
