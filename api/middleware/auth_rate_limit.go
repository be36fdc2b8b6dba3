package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/api/responses"
	pkgerrors "github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/errors"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/metrics"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/logger"
)

const (
	msgTooManyLogins  = "Too many login attempts"
	maxLoginBodyBytes = 1 << 16
)

// RateLimitStore counts attempts in a fixed window keyed by scope.
type RateLimitStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

type rateLimitRecorder interface {
	IncLogin(outcome string)
}

// LoginRateLimitPolicy defines the throttling parameters for the login surface.
type LoginRateLimitPolicy struct {
	name       string
	window     time.Duration
	ipLimit    int
	phoneLimit int
	trusted    []netip.Prefix
}

func NewLoginRateLimitPolicy(name string, window time.Duration, ipLimit, phoneLimit int) LoginRateLimitPolicy {
	return LoginRateLimitPolicy{
		name:       strings.ToLower(strings.TrimSpace(name)),
		window:     window,
		ipLimit:    ipLimit,
		phoneLimit: phoneLimit,
	}
}

// WithTrustedProxies returns a copy of p that honours X-Forwarded-For and X-Real-IP only
// when the TCP peer falls inside one of prefixes.
func (p LoginRateLimitPolicy) WithTrustedProxies(prefixes []netip.Prefix) LoginRateLimitPolicy {
	p.trusted = append([]netip.Prefix(nil), prefixes...)
	return p
}

func (p LoginRateLimitPolicy) trusts(addr netip.Addr) bool {
	for _, prefix := range p.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func (p LoginRateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.phoneLimit > 0)
}

func (p LoginRateLimitPolicy) normalizedName() string {
	if p.name == "" {
		return "login"
	}
	return p.name
}

func (p LoginRateLimitPolicy) ipScope(ip string) string {
	if ip == "" {
		return ""
	}
	return fmt.Sprintf("ip:%s:%s", p.normalizedName(), ip)
}

func (p LoginRateLimitPolicy) phoneScope(hash string) string {
	if hash == "" {
		return ""
	}
	return fmt.Sprintf("phone:%s:%s", p.normalizedName(), hash)
}

// LoginRateLimit enforces per-IP and per-phone counters. A nil store disables limiting.
func LoginRateLimit(policy LoginRateLimitPolicy, store RateLimitStore, recorder rateLimitRecorder, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			ip := policy.clientIP(r)
			if policy.ipLimit > 0 {
				if scope := policy.ipScope(ip); scope != "" {
					allowed, count, err := store.FixedWindowAllow(ctx, scope, int64(policy.ipLimit), policy.window)
					if err != nil {
						responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
						return
					}
					if !allowed {
						respondRateLimited(ctx, logg, recorder, w, policy, "ip", ip, "", count, policy.ipLimit)
						return
					}
				}
			}

			if policy.phoneLimit > 0 {
				body, err := io.ReadAll(io.LimitReader(r.Body, maxLoginBodyBytes))
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request"))
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))

				if phone := normalizePhone(extractPhone(body)); phone != "" {
					hash := hashValue(phone)
					allowed, count, err := store.FixedWindowAllow(ctx, policy.phoneScope(hash), int64(policy.phoneLimit), policy.window)
					if err != nil {
						responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
						return
					}
					if !allowed {
						respondRateLimited(ctx, logg, recorder, w, policy, "phone", "", hash, count, policy.phoneLimit)
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func respondRateLimited(ctx context.Context, logg *logger.Logger, recorder rateLimitRecorder, w http.ResponseWriter, policy LoginRateLimitPolicy, scope, ip, phoneHash string, count int64, limit int) {
	if recorder != nil {
		recorder.IncLogin(metrics.LoginRateLimited)
	}
	if logg != nil {
		fields := map[string]any{
			"scope":          scope,
			"policy":         policy.normalizedName(),
			"attempts":       count,
			"limit":          limit,
			"window_seconds": int(policy.window.Seconds()),
		}
		if ip != "" {
			fields["ip"] = ip
		}
		if phoneHash != "" {
			fields["phone_hash"] = phoneHash
		}
		logg.Warn(logg.WithFields(ctx, fields), "auth.rate_limit.blocked")
	}
	w.Header().Set("Retry-After", fmt.Sprintf("%d", int(policy.window.Seconds())))
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, msgTooManyLogins))
}

// clientIP returns the TCP peer unless it is a trusted proxy. Behind a trusted proxy the
// forwarding chain is walked right to left and the first untrusted hop wins.
func (p LoginRateLimitPolicy) clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	peer, ok := parseIP(r.RemoteAddr)
	if !ok {
		return r.RemoteAddr
	}
	if !p.trusts(peer) {
		return peer.String()
	}

	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		hops := strings.Split(header, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop, ok := parseIP(hops[i])
			if !ok {
				break
			}
			if !p.trusts(hop) {
				return hop.String()
			}
		}
	}
	if realIP, ok := parseIP(r.Header.Get("X-Real-IP")); ok {
		return realIP.String()
	}
	return peer.String()
}

func parseIP(raw string) (netip.Addr, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return netip.Addr{}, false
	}
	if host, _, err := net.SplitHostPort(raw); err == nil {
		raw = host
	}
	addr, err := netip.ParseAddr(raw)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}

func extractPhone(payload []byte) string {
	var body struct {
		PhoneNumber string `json:"phone_number"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return body.PhoneNumber
}

func normalizePhone(value string) string {
	return strings.ReplaceAll(strings.TrimSpace(value), " ", "")
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
