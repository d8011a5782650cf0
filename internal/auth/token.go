package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims são as reivindicações validadas do token de acesso
type Claims struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// TokenVerifier valida tokens de acesso emitidos pelo fornecedor.
// Os tokens são assinados com HS256 e o segredo partilhado do projeto.
type TokenVerifier struct {
	secret []byte
	now    func() time.Time
}

// NewTokenVerifier cria um verificador com o segredo JWT do fornecedor
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Verify valida a assinatura e a expiração do token e devolve as
// reivindicações da sessão
func (v *TokenVerifier) Verify(token string) (*Claims, error) {
	if token == "" {
		return nil, fmt.Errorf("token de acesso em falta")
	}

	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithTimeFunc(v.now))
	if err != nil {
		return nil, fmt.Errorf("token de acesso inválido: %w", err)
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("token de acesso inválido")
	}

	result := &Claims{
		UserID: claims.Subject,
		Email:  claims.Email,
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}

	return result, nil
}
