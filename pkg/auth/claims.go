package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/enums"
)

// TokenType discriminates access tokens from refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims represents the typed JWT issued to clients. Refresh tokens carry no role.
type Claims struct {
	Role enums.Role `json:"role,omitempty"`
	Type TokenType  `json:"type"`
	jwt.RegisteredClaims
}

// IsAccess reports whether the claims belong to an access token.
func (c *Claims) IsAccess() bool {
	return c != nil && c.Type == TokenTypeAccess
}

// IsRefresh reports whether the claims belong to a refresh token.
func (c *Claims) IsRefresh() bool {
	return c != nil && c.Type == TokenTypeRefresh
}
