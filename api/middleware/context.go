package middleware

import (
	"context"
	"sync"

	"github.com/google/uuid"

	pkgauth "github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/auth"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/enums"
)

type contextKey string

const (
	ctxClaims contextKey = "claims"
	ctxUserID contextKey = "user_id"
	ctxRole   contextKey = "actor_role"
	ctxScope  contextKey = "request_scope"
)

// requestScope is installed by the outermost middleware and filled in once the caller
// is authenticated, so wrappers that run before Authenticate can still see who it was.
type requestScope struct {
	mu     sync.Mutex
	userID string
	role   enums.Role
}

func withRequestScope(ctx context.Context) (context.Context, *requestScope) {
	if scope, ok := ctx.Value(ctxScope).(*requestScope); ok {
		return ctx, scope
	}
	scope := &requestScope{}
	return context.WithValue(ctx, ctxScope, scope), scope
}

func (s *requestScope) identity() (string, enums.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID, s.role
}

func (s *requestScope) record(userID string, role enums.Role) {
	s.mu.Lock()
	s.userID, s.role = userID, role
	s.mu.Unlock()
}

// ClaimsFromContext returns the decoded access token claims set by Authenticate.
func ClaimsFromContext(ctx context.Context) *pkgauth.Claims {
	if ctx == nil {
		return nil
	}
	claims, _ := ctx.Value(ctxClaims).(*pkgauth.Claims)
	return claims
}

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

// SubjectUUID parses the authenticated subject. It reports false when the context carries
// no identity or the subject is not a UUID.
func SubjectUUID(ctx context.Context) (uuid.UUID, bool) {
	raw := UserIDFromContext(ctx)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func RoleFromContext(ctx context.Context) enums.Role {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(enums.Role); ok {
		return v
	}
	return ""
}

// WithClaims seeds ctx the same way Authenticate does.
func WithClaims(ctx context.Context, claims *pkgauth.Claims) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if claims == nil {
		return ctx
	}
	if scope, ok := ctx.Value(ctxScope).(*requestScope); ok {
		scope.record(claims.Subject, claims.Role)
	}
	ctx = context.WithValue(ctx, ctxClaims, claims)
	ctx = context.WithValue(ctx, ctxUserID, claims.Subject)
	return context.WithValue(ctx, ctxRole, claims.Role)
}
