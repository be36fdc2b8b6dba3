package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type httpObserver interface {
	Observe(method, route string, status int, elapsed time.Duration)
}

// Metrics records every request against its chi route pattern so ids never become labels.
func Metrics(observer httpObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if observer == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(rec, r)

			observer.Observe(r.Method, routePattern(r), rec.Status(), time.Since(start))
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
