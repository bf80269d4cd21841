package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/workzen/hrms-backend-go/internal/handler/http/response"
	"github.com/workzen/hrms-backend-go/internal/pkg/jwt"
	"github.com/workzen/hrms-backend-go/internal/pkg/utils"
)

// queryInt reads a positive integer query parameter. Missing or malformed values yield fallback.
func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// queryDate reads a YYYY-MM-DD query parameter. ok is false when the value is present but malformed.
func queryDate(r *http.Request, key string, fallback time.Time) (date time.Time, ok bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback, true
	}
	d, err := utils.ParseDate(v)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// callerClaims writes 401 and returns false when the request carries no usable identity.
func callerClaims(w http.ResponseWriter, r *http.Request) (jwt.Claims, bool) {
	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return jwt.Claims{}, false
	}
	return claims, true
}

// targetEmployee resolves the employee a read is about: the employee_id query parameter
// when the caller is an admin or HR officer, otherwise the caller. Writes 403 when an
// ordinary employee asks for someone else.
func targetEmployee(w http.ResponseWriter, r *http.Request, claims jwt.Claims) (string, bool) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" || employeeID == claims.UserID {
		return claims.UserID, true
	}
	if !claims.IsAny(jwt.RoleAdmin, jwt.RoleHROfficer) {
		response.Forbidden(w, "You can only view your own records")
		return "", false
	}
	return employeeID, true
}
