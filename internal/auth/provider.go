package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// User identifica o utilizador autenticado junto do fornecedor
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session é a sessão devolvida pelo fornecedor de autenticação alojado
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// Provider fala com o serviço de autenticação alojado. As credenciais de
// acesso às tabelas são emitidas por ele; esta aplicação nunca guarda
// senhas.
type Provider struct {
	client *resty.Client
	apiKey string
	logger *zap.Logger
}

// NewProvider cria o cliente do fornecedor de autenticação
func NewProvider(baseURL, apiKey string, logger *zap.Logger) *Provider {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &Provider{
		client: client,
		apiKey: apiKey,
		logger: logger,
	}
}

type passwordGrantRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type providerError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Message          string `json:"msg"`
}

// SignInWithPassword autentica por email e senha e devolve a sessão com o
// token de acesso. Qualquer falha é registada e devolvida como um erro
// genérico, sem expor o detalhe do fornecedor.
func (p *Provider) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	var provErr providerError

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("apikey", p.apiKey).
		SetQueryParam("grant_type", "password").
		SetBody(passwordGrantRequest{Email: email, Password: password}).
		SetResult(&session).
		SetError(&provErr).
		Post("/auth/v1/token")
	if err != nil {
		p.logger.Error("Erro ao contactar o fornecedor de autenticação", zap.Error(err))
		return nil, fmt.Errorf("Não foi possível fazer a autenticação")
	}

	if resp.IsError() {
		p.logger.Warn("Autenticação rejeitada pelo fornecedor",
			zap.Int("status", resp.StatusCode()),
			zap.String("error", provErr.Error),
			zap.String("description", provErr.ErrorDescription),
		)
		return nil, fmt.Errorf("Credenciais inválidas")
	}

	if session.AccessToken == "" {
		p.logger.Error("Resposta do fornecedor sem token de acesso")
		return nil, fmt.Errorf("Não foi possível fazer a autenticação")
	}

	return &session, nil
}
