package middleware

import (
	"net/http"

	"github.com/profitpulse/profitpulse-api/internal/domain/auth"
	"github.com/profitpulse/profitpulse-api/internal/domain/rbac"
	"github.com/profitpulse/profitpulse-api/internal/handler/http/response"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := rbac.PrincipalFromContext(r.Context())
		if !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if !principal.IsAdmin() {
			response.HandleError(w, rbac.ErrPermissionDenied)
			return
		}

		next.ServeHTTP(w, r)
	})
}
