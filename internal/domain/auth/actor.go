package auth

import (
	"context"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lovelys-studio/backoffice/internal/domain/studio"
)

// Actor is the resolved (role, room) pair every mutator and read path is gated on.
type Actor struct {
	UserID   string
	Username string
	Role     studio.Role
	RoomID   *int
}

// CanEditBasic covers logs, snacks, sex-shop records and platforms.
func (a Actor) CanEditBasic() bool {
	return a.Role == studio.RoleAdmin || a.Role == studio.RoleManager
}

// CanEditFinances covers billing fields, advances and staff rosters.
func (a Actor) CanEditFinances() bool {
	return a.Role == studio.RoleAdmin
}

func (a Actor) IsAdmin() bool {
	return a.Role == studio.RoleAdmin
}

// CanViewRoom reports whether the actor may read the given room. Model accounts are bound to one room.
func (a Actor) CanViewRoom(roomID int) bool {
	switch a.Role {
	case studio.RoleAdmin, studio.RoleManager:
		return true
	case studio.RoleModel:
		return a.RoomID != nil && *a.RoomID == roomID
	}
	return false
}

// ActorFromContext returns the actor stored by NewContext, or builds it from the verified JWT claims.
func ActorFromContext(ctx context.Context) (Actor, error) {
	if actor, ok := ctx.Value(actorCtxKey{}).(Actor); ok {
		return actor, nil
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Actor{}, ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || !studio.Role(role).IsValid() {
		return Actor{}, ErrInvalidToken
	}

	actor := Actor{UserID: userID, Role: studio.Role(role)}
	actor.Username, _ = claims["username"].(string)

	// Numeric claims decode as float64.
	switch v := claims["room_id"].(type) {
	case float64:
		id := int(v)
		actor.RoomID = &id
	case int:
		id := v
		actor.RoomID = &id
	case int64:
		id := int(v)
		actor.RoomID = &id
	}
	return actor, nil
}

type actorCtxKey struct{}

// NewContext stores a resolved actor so downstream services skip claim parsing.
func NewContext(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, actor)
}
