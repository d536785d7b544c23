package middleware

import (
	"net/http"

	"github.com/lovelys-studio/backoffice/internal/domain/auth"
	"github.com/lovelys-studio/backoffice/internal/handler/http/response"
)

// RequireStaff lets admins and managers through; model accounts are refused.
func RequireStaff(next http.Handler) http.Handler {
	return RequirePrivilege(auth.Actor.CanEditBasic)(next)
}

// RequirePrivilege refuses the request unless allowed accepts the request's actor.
func RequirePrivilege(allowed func(auth.Actor) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := auth.ActorFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if !allowed(actor) {
				response.HandleError(w, auth.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
