package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sedrac-slc/escutivel/internal/auth"
)

type AuthHandler struct {
	provider   *auth.Provider
	production bool
}

// NewAuthHandler cria uma nova instância do handler de autenticação
func NewAuthHandler(provider *auth.Provider, production bool) *AuthHandler {
	return &AuthHandler{
		provider:   provider,
		production: production,
	}
}

// Login autentica por email e senha junto do fornecedor e persiste o
// token de acesso num cookie com validade de um dia
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	type Request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo do pedido inválido"})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email e senha são obrigatórios",
		})
	}

	session, err := h.provider.SignInWithPassword(c.Context(), req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	c.Cookie(&fiber.Cookie{
		Name:     AuthCookieName,
		Value:    session.AccessToken,
		Expires:  time.Now().Add(24 * time.Hour),
		Secure:   h.production,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	return c.JSON(fiber.Map{
		"session": session,
		"user":    session.User,
	})
}

// Logout remove o cookie de sessão
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		Secure:   h.production,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.JSON(fiber.Map{"message": "Sessão terminada"})
}
