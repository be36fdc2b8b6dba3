package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/config"
)

// RefreshCookieName is the cookie that carries the refresh token.
const RefreshCookieName = "refresh_token"

// CookiePolicy writes and clears the refresh-token cookie. The token never appears in a response body.
type CookiePolicy struct {
	secure bool
	domain string
	path   string
	ttl    time.Duration
	now    func() time.Time
}

func NewCookiePolicy(cfg config.Config) *CookiePolicy {
	path := strings.TrimSpace(cfg.Cookie.Path)
	if path == "" {
		path = "/"
	}
	return &CookiePolicy{
		secure: cfg.Cookie.SecureFor(cfg.App),
		domain: strings.TrimSpace(cfg.Cookie.Domain),
		path:   path,
		ttl:    cfg.JWT.RefreshTokenTTL(),
		now:    time.Now,
	}
}

func (p *CookiePolicy) Secure() bool {
	return p.secure
}

// Set attaches the refresh token with HttpOnly, SameSite=Lax and a max-age equal to the refresh TTL.
func (p *CookiePolicy) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, p.cookie(token, int(p.ttl.Seconds()), p.now().Add(p.ttl)))
}

// Clear expires the refresh cookie using the same attributes it was set with.
func (p *CookiePolicy) Clear(w http.ResponseWriter) {
	http.SetCookie(w, p.cookie("", -1, time.Unix(0, 0)))
}

// Read returns the refresh token sent by the client, if any.
func (p *CookiePolicy) Read(r *http.Request) (string, bool) {
	c, err := r.Cookie(RefreshCookieName)
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(c.Value)
	return value, value != ""
}

func (p *CookiePolicy) cookie(value string, maxAge int, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     RefreshCookieName,
		Value:    value,
		Path:     p.path,
		Domain:   p.domain,
		MaxAge:   maxAge,
		Expires:  expires.UTC(),
		HttpOnly: true,
		Secure:   p.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
