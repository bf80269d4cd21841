package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/workzen/hrms-backend-go/internal/handler/http/response"
	"github.com/workzen/hrms-backend-go/internal/pkg/jwt"
)

// AuthRequired rejects requests without a verified access token carrying user_id and role.
// It must run after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}
		if token == nil {
			response.Unauthorized(w, "Missing access token")
			return
		}

		tokenType, ok := claims["type"].(string)
		if !ok || tokenType != "access" {
			response.Unauthorized(w, "Invalid token type")
			return
		}

		if _, err := jwt.ClaimsFromContext(r.Context()); err != nil {
			response.Unauthorized(w, "Invalid token claims")
			return
		}

		next.ServeHTTP(w, r)
	})
}
