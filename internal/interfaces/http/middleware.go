package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sedrac-slc/escutivel/internal/auth"
)

// AuthCookieName é o cookie que transporta o token de acesso da sessão
const AuthCookieName = "auth_token"

// localsClaimsKey guarda as reivindicações da sessão no pedido
const localsClaimsKey = "session_claims"

// RequestLogger atribui um ID a cada pedido e regista o resultado
func RequestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := uuid.NewString()
		c.Locals("request_id", requestID)
		c.Set("X-Request-ID", requestID)

		start := time.Now()
		err := c.Next()

		logger.Info("pedido",
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
		)
		return err
	}
}

// RequireAuth valida o token de acesso do cookie de sessão ou do
// cabeçalho Authorization e coloca as reivindicações no pedido
func RequireAuth(verifier *auth.TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(AuthCookieName)
		if token == "" {
			header := c.Get(fiber.HeaderAuthorization)
			if strings.HasPrefix(header, "Bearer ") {
				token = strings.TrimPrefix(header, "Bearer ")
			}
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Sessão inválida ou expirada",
			})
		}

		c.Locals(localsClaimsKey, claims)
		return c.Next()
	}
}

// SessionClaims devolve as reivindicações colocadas pelo RequireAuth
func SessionClaims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(localsClaimsKey).(*auth.Claims)
	return claims
}
