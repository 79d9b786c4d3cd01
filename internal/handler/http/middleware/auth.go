package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/profitpulse/profitpulse-api/internal/domain/auth"
	"github.com/profitpulse/profitpulse-api/internal/domain/rbac"
	"github.com/profitpulse/profitpulse-api/internal/handler/http/response"
	"github.com/profitpulse/profitpulse-api/internal/pkg/jwt"
)

// AuthRequired rejects requests without a valid access token and stores the caller's
// principal in the request context. It must run after jwtauth.Verifier.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if jwtService.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			principal, err := jwt.PrincipalFromClaims(claims)
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(rbac.WithPrincipal(r.Context(), principal)))
		}
		return http.HandlerFunc(hfn)
	}
}
