package controllers

import (
	"net/http"

	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/api/responses"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/api/validators"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/internal/settings"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/logger"
)

func BusinessSettingsGet(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.Get(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

func BusinessSettingsPut(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body settings.UpsertRequest
		if err := validators.DecodeJSON(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		normalizeSettings(&body)
		if err := validators.Struct(&body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out, err := svc.Upsert(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// normalizeSettings trims the body before validation so padded values are judged on
// their trimmed form. Length caps are left to the validator.
func normalizeSettings(body *settings.UpsertRequest) {
	body.BusinessName = validators.SanitizeString(body.BusinessName, 0)
	body.BusinessAddress = validators.SanitizeString(body.BusinessAddress, 0)
	body.BusinessPhoneNumber = validators.SanitizeString(body.BusinessPhoneNumber, 0)
	body.BusinessEmail = validators.SanitizeOptional(body.BusinessEmail, 0)
	body.GSTNumber = validators.SanitizeOptional(body.GSTNumber, 0)
	body.UPIID = validators.SanitizeString(body.UPIID, 0)
	body.UPIQRImage = validators.SanitizeString(body.UPIQRImage, 0)
}
