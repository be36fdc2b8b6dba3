package middleware

import (
	"fmt"
	"net/http"

	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/api/responses"
	pkgerrors "github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/errors"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/logger"
)

// Recoverer answers a handler panic with a bare 500 and logs it with the matched route
// and, when the request got past Authenticate, the caller's id and role.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, scope := withRequestScope(r.Context())
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				err := fmt.Errorf("panic: %v", rec)
				if logg != nil {
					fields := map[string]any{
						"panic":  rec,
						"method": r.Method,
						"route":  routePattern(r),
					}
					if userID, role := scope.identity(); userID != "" {
						fields["user_id"] = userID
						fields["actor_role"] = role.String()
					}
					logg.Error(logg.WithFields(ctx, fields), "panic.recovered", err)
				}
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "panic"))
			}()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
