package middleware

import (
	"net/http"

	"github.com/lovelys-studio/backoffice/internal/domain/auth"
)

// AdminOnly must run after AuthRequired.
func AdminOnly(next http.Handler) http.Handler {
	return RequirePrivilege(auth.Actor.IsAdmin)(next)
}
