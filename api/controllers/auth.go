package controllers

import (
	"net/http"

	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/api/responses"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/api/validators"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/internal/auth"
	pkgerrors "github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/errors"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/logger"
)

const msgLogoutSuccessful = "Logout successful"

// RefreshCookie sets, reads and clears the refresh-token cookie.
type RefreshCookie interface {
	Set(w http.ResponseWriter, token string)
	Clear(w http.ResponseWriter)
	Read(r *http.Request) (string, bool)
}

// AuthLogin verifies credentials, sets the refresh cookie and returns the access token.
func AuthLogin(svc auth.Service, cookies RefreshCookie, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pair, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cookies.Set(w, pair.RefreshToken)
		responses.WriteSuccess(w, auth.NewAccessTokenResponse(pair))
	}
}

// AuthRefresh rotates the refresh cookie and issues a new access token.
func AuthRefresh(svc auth.Service, cookies RefreshCookie, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		token, ok := cookies.Read(r)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, auth.MsgInvalidToken))
			return
		}

		pair, err := svc.Refresh(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cookies.Set(w, pair.RefreshToken)
		responses.WriteSuccess(w, auth.NewAccessTokenResponse(pair))
	}
}

// AuthLogout clears the refresh cookie. It needs no credentials and always succeeds.
func AuthLogout(cookies RefreshCookie, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookies.Clear(w)
		if logg != nil {
			logg.Info(r.Context(), "auth.logout")
		}
		responses.WriteMessage(w, msgLogoutSuccessful)
	}
}
