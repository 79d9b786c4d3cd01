package middleware

import (
	"log/slog"
	"net/http"

	"github.com/profitpulse/profitpulse-api/internal/domain/auth"
	"github.com/profitpulse/profitpulse-api/internal/domain/rbac"
	"github.com/profitpulse/profitpulse-api/internal/handler/http/response"
)

// RequireScope lets the request through only when the caller's role holds scope.
func RequireScope(evaluator rbac.Evaluator, scope rbac.Scope) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := rbac.PrincipalFromContext(r.Context())
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if !evaluator.HasScope(r.Context(), principal.Role, scope) {
				slog.Debug("Scope check failed", "user_id", principal.UserID, "role", principal.Role, "scope", scope)
				response.HandleError(w, rbac.ErrPermissionDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
