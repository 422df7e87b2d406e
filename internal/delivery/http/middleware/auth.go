package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"planboard/internal/pkg/token"
)

// AuthMiddleware optionally ties a caller to the owner email they claim.
// Historically any caller could read or write any user's records by naming
// their email; with AUTH_REQUIRED=true resource routes demand a valid bearer
// token and reject requests whose :email path parameter belongs to someone
// else.
type AuthMiddleware struct {
	tokens   *token.Service
	required bool
}

func NewAuthMiddleware(tokens *token.Service, required bool) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, required: required}
}

func (m *AuthMiddleware) Enabled() bool {
	return m != nil && m.required
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if !m.Enabled() {
			return c.Next()
		}

		tok, ok := bearerFromAuthorizationHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Missing bearer token.", nil)
		}

		claims, err := m.tokens.Validate(tok)
		if err != nil {
			return NewAppError(fiber.StatusUnauthorized, "Invalid bearer token.", err)
		}

		if email := c.Params("email"); email != "" {
			if !strings.EqualFold(strings.TrimSpace(email), claims.Email) {
				return NewAppError(fiber.StatusForbidden, "Forbidden.", nil)
			}
		}

		return c.Next()
	}
}

func bearerFromAuthorizationHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	tok := strings.TrimSpace(parts[1])
	if tok == "" {
		return "", false
	}
	return tok, true
}
