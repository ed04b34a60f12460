package mw

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// maxJSONBody caps request bodies on JSON endpoints.
const maxJSONBody = 64 << 10

// JSONBody rejects non-JSON bodies with 415 and caps the body size.
func JSONBody(next http.Handler) http.Handler {
	limited := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
		next.ServeHTTP(w, r)
	})
	return middleware.AllowContentType("application/json")(limited)
}
