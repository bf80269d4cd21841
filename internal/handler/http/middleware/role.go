package middleware

import (
	"net/http"

	"github.com/workzen/hrms-backend-go/internal/handler/http/response"
	"github.com/workzen/hrms-backend-go/internal/pkg/jwt"
)

// RequireRole admits callers whose role claim is one of roles.
func RequireRole(roles ...jwt.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := jwt.ClaimsFromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, "Unauthorized")
				return
			}

			if !claims.IsAny(roles...) {
				response.Forbidden(w, "Insufficient role for this action")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
