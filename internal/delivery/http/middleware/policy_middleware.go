package middleware

import (
	"net/http"

	"his-backend/internal/policy"
	"his-backend/pkg/response"
)

// Require runs a policy check against the AuthContext left by Authenticate.
// A missing context is a 401; a failing check is a 403.
func Require(check policy.Check) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth, ok := GetAuthContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}

			if err := check(*auth); err != nil {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
