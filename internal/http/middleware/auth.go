package middlewarex

import (
	"crypto/subtle"
	"net/http"
)

const tokenHeader = "X-Webhook-Token"

// TokenAuth accepts requests carrying token in the X-Webhook-Token header or
// the token query parameter. SalesDrive webhook URLs can only carry the
// latter. An empty token disables the check.
func TokenAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(tokenHeader)
			if got == "" {
				got = r.URL.Query().Get("token")
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
