package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/config"
)

func policyConfig(env string) config.Config {
	return config.Config{
		App:    config.AppConfig{Env: env},
		JWT:    config.JWTConfig{RefreshTokenExpireDays: 30},
		Cookie: config.CookieConfig{Path: "/"},
	}
}

func TestSetWritesHardenedCookie(t *testing.T) {
	policy := NewCookiePolicy(policyConfig(config.AppEnvProd))
	rec := httptest.NewRecorder()

	policy.Set(rec, "refresh-token-value")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, RefreshCookieName, c.Name)
	assert.Equal(t, "refresh-token-value", c.Value)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, 30*24*60*60, c.MaxAge)
	assert.Equal(t, "/", c.Path)
}

func TestSecureFlagFollowsEnvironment(t *testing.T) {
	dev := NewCookiePolicy(policyConfig(config.AppEnvDev))
	assert.False(t, dev.Secure())

	staging := NewCookiePolicy(policyConfig(config.AppEnvStaging))
	assert.True(t, staging.Secure())

	forced := policyConfig(config.AppEnvDev)
	on := true
	forced.Cookie.Secure = &on
	assert.True(t, NewCookiePolicy(forced).Secure())
}

func TestClearExpiresCookieWithMatchingAttributes(t *testing.T) {
	cfg := policyConfig(config.AppEnvProd)
	cfg.Cookie.Domain = "oms.example.com"
	policy := NewCookiePolicy(cfg)
	rec := httptest.NewRecorder()

	policy.Clear(rec)

	header := rec.Header().Get("Set-Cookie")
	assert.Contains(t, header, RefreshCookieName+"=;")
	assert.Contains(t, header, "Max-Age=0")
	assert.Contains(t, header, "HttpOnly")
	assert.Contains(t, header, "Secure")
	assert.Contains(t, header, "SameSite=Lax")
	assert.Contains(t, header, "Domain=oms.example.com")
}

func TestRead(t *testing.T) {
	policy := NewCookiePolicy(policyConfig(config.AppEnvDev))

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	_, ok := policy.Read(req)
	assert.False(t, ok)

	req.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: "abc"})
	value, ok := policy.Read(req)
	assert.True(t, ok)
	assert.Equal(t, "abc", value)
}
