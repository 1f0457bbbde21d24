package middleware

import (
	"net/http"
)

// JSONAPIHeaders sets the response headers of a JSON-only API.
// isHTTPS: if true, adds Strict-Transport-Security header
func JSONAPIHeaders(isHTTPS bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := w.Header()

			headers.Set("X-Content-Type-Options", "nosniff")
			headers.Set("X-Frame-Options", "DENY")
			// no scripts, styles or frames
			headers.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
			// responses are generated per request
			headers.Set("Cache-Control", "no-store")

			if isHTTPS {
				headers.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}
