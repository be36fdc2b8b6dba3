package metrics

import "github.com/prometheus/client_golang/prometheus"

// Login outcomes recorded by AuthMetrics.
const (
	LoginSuccess     = "success"
	LoginNotFound    = "not_found"
	LoginInactive    = "inactive"
	LoginBadPassword = "bad_password"
	LoginRateLimited = "rate_limited"
)

// AuthMetrics counts login attempts by outcome.
type AuthMetrics struct {
	logins *prometheus.CounterVec
}

// NewAuthMetrics registers the auth metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewAuthMetrics(reg prometheus.Registerer) *AuthMetrics {
	if reg == nil {
		return &AuthMetrics{}
	}
	logins := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "oms_auth_login_total",
		Help: "Login attempts partitioned by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(logins)
	return &AuthMetrics{logins: logins}
}

// IncLogin increments the login counter for the outcome.
func (a *AuthMetrics) IncLogin(outcome string) {
	if a == nil || a.logins == nil {
		return
	}
	a.logins.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
