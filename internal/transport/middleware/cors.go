package middleware

import (
	"net/http"
)

// CORS allows cross-origin requests; the allowed origin list comes from
// server config via SetAllowedOrigins at startup.
var allowedOrigins = "*"

func SetAllowedOrigins(origins string) {
	if origins != "" {
		allowedOrigins = origins
	}
}

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, X-Trace-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
