package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"

	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/config"
)

var defaultCORSOrigins = []string{"http://localhost:3000"}

// CORS allows the configured frontend origins to call the API with credentials so the
// refresh cookie travels on /auth/refresh.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	origins := make([]string, 0, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		origins = defaultCORSOrigins
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
