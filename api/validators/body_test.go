package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passwordBody struct {
	NewPassword        string `json:"new_password" validate:"required,min=6"`
	ConfirmNewPassword string `json:"confirm_new_password" validate:"required,min=6,eqfield=NewPassword"`
}

type createBody struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
	Role string `json:"role" validate:"omitempty,oneof=admin user"`
}

func TestDecodeJSONBodyAcceptsValidPayload(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Alice","role":"user"}`))

	var body createBody
	require.NoError(t, DecodeJSONBody(req, &body))
	assert.Equal(t, "Alice", body.Name)
}

func TestDecodeJSONBodyReportsFieldErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"A","role":"owner"}`))

	var body createBody
	err := DecodeJSONBody(req, &body)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnprocessable, typed.Code())

	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be at least 2 characters", details["name"])
	assert.Equal(t, "must be one of: admin, user", details["role"])
}

func TestDecodeJSONBodyPasswordMismatch(t *testing.T) {
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"new_password":"secret1","confirm_new_password":"secret2"}`))

	var body passwordBody
	err := DecodeJSONBody(req, &body)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnprocessable, typed.Code())
	assert.Equal(t, "New password and confirm new password must match", typed.Message())
}

func TestDecodeJSONBodyRejectsUnknownFieldsAndEmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Alice","nickname":"al"}`))
	var body createBody
	assert.True(t, pkgerrors.IsCode(DecodeJSONBody(req, &body), pkgerrors.CodeUnprocessable))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	err := DecodeJSONBody(req, &body)
	require.Error(t, err)
	assert.Equal(t, "request body is required", pkgerrors.As(err).Message())
}

func TestParseUUIDParam(t *testing.T) {
	id := uuid.New()
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", id.String())
	got, err := ParseUUIDParam(req, "id")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	req = withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "not-a-uuid")
	_, err = ParseUUIDParam(req, "id")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestSanitizeHelpers(t *testing.T) {
	assert.Equal(t, "abc", SanitizeString("  abcdef ", 3))
	assert.Equal(t, "héllo", SanitizeString(" héllo ", 0))

	blank := "   "
	assert.Nil(t, SanitizeOptional(&blank, 10))
	assert.Nil(t, SanitizeOptional(nil, 10))

	value := " a@b.co "
	got := SanitizeOptional(&value, 10)
	require.NotNil(t, got)
	assert.Equal(t, "a@b.co", *got)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
