package middleware

import "net/http"

// SecurityHeaders sets a small fixed set of hardening headers on every
// response. The API serves only JSON, so the set is deliberately short:
// no CSP or HSTS, which belong on whatever terminates TLS in front of us.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}
