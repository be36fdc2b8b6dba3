package middleware

import (
	"net/http"

	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/api/responses"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/enums"
	pkgerrors "github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/errors"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/logger"
)

const msgAdminRequired = "Admin access required"

// RequireAdmin must run after Authenticate.
func RequireAdmin(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) != enums.RoleAdmin {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, msgAdminRequired))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
