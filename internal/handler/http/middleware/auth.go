package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/mesaitak/mesaitak-backend-go/internal/handler/http/response"
)

// AuthRequired accepts only verified access tokens. SSE tokens are rejected here.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.Unauthorized(w, "Invalid token")
			return
		}

		tokenType, ok := claims["type"].(string)
		if tokenType != "access" || !ok {
			response.Unauthorized(w, "Invalid token")
			return
		}

		next.ServeHTTP(w, r)
	})
}
