package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/config"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/enums"
)

// ErrInvalidToken is the single outcome for any token that fails to decode: bad signature,
// expiry, wrong algorithm and malformed payloads are indistinguishable to callers.
var ErrInvalidToken = errors.New("invalid token")

// TokenService issues and decodes HMAC-signed access and refresh tokens.
type TokenService struct {
	secret     []byte
	method     jwt.SigningMethod
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenService(cfg config.JWTConfig) (*TokenService, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	alg := strings.ToUpper(strings.TrimSpace(cfg.Algorithm))
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.Algorithm)
	}
	return &TokenService{
		secret:     []byte(cfg.Secret),
		method:     method,
		issuer:     strings.TrimSpace(cfg.Issuer),
		accessTTL:  cfg.AccessTokenTTL(),
		refreshTTL: cfg.RefreshTokenTTL(),
		now:        time.Now,
	}, nil
}

// WithClock returns a copy of the service that reads the current time from now.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	clone := *s
	clone.now = now
	return &clone
}

func (s *TokenService) AccessTTL() time.Duration {
	return s.accessTTL
}

func (s *TokenService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

// IssueAccess mints a short-lived token carrying the subject and role.
func (s *TokenService) IssueAccess(subject string, role enums.Role) (string, error) {
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role %q", role)
	}
	return s.sign(subject, role, TokenTypeAccess, s.accessTTL)
}

// IssueRefresh mints a long-lived token carrying only the subject.
func (s *TokenService) IssueRefresh(subject string) (string, error) {
	return s.sign(subject, "", TokenTypeRefresh, s.refreshTTL)
}

func (s *TokenService) sign(subject string, role enums.Role, typ TokenType, ttl time.Duration) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", fmt.Errorf("token subject is required")
	}
	now := s.now()
	claims := Claims{
		Role: role,
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// Decode verifies signature and expiry and returns the claims. Every failure yields ErrInvalidToken.
func (s *TokenService) Decode(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		strings.TrimSpace(tokenString),
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method.Alg() != s.method.Alg() {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return s.secret, nil
		},
		opts...,
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
