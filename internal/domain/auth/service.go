package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Me(ctx context.Context) (MeResponse, error)
	SSEToken(ctx context.Context) (SSETokenResponse, error)
	// StreamActor resolves the account behind an SSE token to the actor its event stream is scoped to.
	StreamActor(ctx context.Context, sseToken string) (Actor, error)
}
