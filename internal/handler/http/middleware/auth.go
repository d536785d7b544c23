package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lovelys-studio/backoffice/internal/domain/auth"
	"github.com/lovelys-studio/backoffice/internal/handler/http/response"
	"github.com/lovelys-studio/backoffice/internal/pkg/jwt"
)

// AuthRequired accepts only verified access tokens and stores the resolved
// actor on the request context. It runs after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())

		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		tokenType, ok := claims["type"].(string)
		if tokenType != jwt.TokenTypeAccess || !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		actor, err := auth.ActorFromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.NewContext(r.Context(), actor)))
	}
	return http.HandlerFunc(hfn)
}
