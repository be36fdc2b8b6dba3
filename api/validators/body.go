package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	pkgerrors "github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/errors"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return v
}

// DecodeJSONBody decodes a JSON request body into dest and runs struct validation.
// Any failure is reported as an unprocessable entity with per-field messages.
func DecodeJSONBody(r *http.Request, dest any) error {
	if err := DecodeJSON(r, dest); err != nil {
		return err
	}
	return Struct(dest)
}

// DecodeJSON decodes a JSON request body into dest without validating it, for handlers
// that normalise input before calling Struct.
func DecodeJSON(r *http.Request, dest any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return pkgerrors.New(pkgerrors.CodeUnprocessable, "request body is required")
		}
		return pkgerrors.Wrap(pkgerrors.CodeUnprocessable, err, "invalid request body").WithDetails(map[string]any{"body": err.Error()})
	}
	return nil
}

// Struct validates an already decoded value.
func Struct(dest any) error {
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		details := map[string]string{}
		message := "validation failed"
		for _, fieldErr := range errs {
			msg := validationMessage(fieldErr)
			details[fieldErr.Field()] = msg
			if fieldErr.Tag() == "eqfield" {
				message = msg
			}
		}
		return pkgerrors.New(pkgerrors.CodeUnprocessable, message).WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeUnprocessable, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "eqfield":
		return "New password and confirm new password must match"
	case "url":
		return "must be a valid url"
	}
	return "is invalid"
}
