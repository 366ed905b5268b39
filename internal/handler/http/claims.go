package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/jwtauth/v5"
	"github.com/mesaitak/mesaitak-backend-go/internal/handler/http/response"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/jwt"
)

// claimString returns a string claim of the verified token, or "".
func claimString(r *http.Request, key string) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	value, _ := claims[key].(string)
	return value
}

// scopedCompanyID pins non-admin callers to the company in their token. Admins may pick any
// company, or none for all.
func scopedCompanyID(r *http.Request, requested string) string {
	caller, ok := jwt.CallerFromContext(r.Context())
	if !ok {
		return requested
	}
	return caller.ScopedCompanyID(requested)
}

// decodeJSON decodes the request body into dst and writes a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}
