package auth

import "context"

// RefreshTokenRepository persists issued refresh tokens so that logout survives a restart.
type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64) error
	// IsRefreshTokenRevoked reports whether the token was revoked or has expired.
	IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error)
	RevokeRefreshToken(ctx context.Context, token string) error
	// DeleteExpiredRefreshTokens removes tokens past their expiry and returns how many were dropped.
	DeleteExpiredRefreshTokens(ctx context.Context) (int64, error)
}
