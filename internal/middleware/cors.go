package middleware

import (
	"net/http"
	"slices"

	"github.com/rs/cors"
)

// Cors allows the given origins; "*" or an empty list allows any. The
// Authorization header must pass for board tokens to work cross-origin.
func Cors(origins []string) Middleware {
	options := cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		options.AllowOriginFunc = func(origin string) bool {
			return true
		}
	} else {
		options.AllowedOrigins = origins
	}
	return cors.New(options).Handler
}
