package middleware

import (
	"net/http"
	"strings"

	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/api/responses"
	pkgauth "github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/auth"
	pkgerrors "github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/errors"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/logger"
)

const (
	msgNotAuthenticated = "Not authenticated"
	msgInvalidToken     = "Invalid or expired token"
	msgInvalidTokenType = "Invalid token type"
)

// TokenDecoder is the subset of the token service the guard needs.
type TokenDecoder interface {
	Decode(token string) (*pkgauth.Claims, error)
}

// Authenticate validates a bearer access token and seeds the request context with its claims.
// Refresh tokens never authenticate a request.
func Authenticate(tokens TokenDecoder, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, msgNotAuthenticated))
				return
			}

			claims, err := tokens.Decode(token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, msgInvalidToken))
				return
			}
			if !claims.IsAccess() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, msgInvalidTokenType))
				return
			}

			ctx := WithClaims(r.Context(), claims)
			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.Subject)
				ctx = logg.WithActorRole(ctx, claims.Role.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	raw := strings.TrimSpace(header)
	scheme, token, found := strings.Cut(raw, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
