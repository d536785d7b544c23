package auth

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/lovelys-studio/backoffice/internal/domain/auth"
	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	"github.com/lovelys-studio/backoffice/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	store studio.StateStore
	jwt.Service
	// refreshTokens is nil when the state lives in a file; revocation then stays in memory.
	refreshTokens auth.RefreshTokenRepository
}

func NewAuthService(store studio.StateStore, jwtService jwt.Service, refreshTokens auth.RefreshTokenRepository) auth.AuthService {
	return &AuthServiceImpl{
		store:         store,
		Service:       jwtService,
		refreshTokens: refreshTokens,
	}
}

func (a *AuthServiceImpl) accountByID(id string) (studio.Account, bool) {
	accounts := a.store.Snapshot().Rules.Accounts
	idx := slices.IndexFunc(accounts, func(acc studio.Account) bool { return acc.ID == id })
	if idx < 0 {
		return studio.Account{}, false
	}
	return accounts[idx], true
}

func (a *AuthServiceImpl) accountByUsername(username string) (studio.Account, bool) {
	username = studio.NormalizeUsername(username)
	accounts := a.store.Snapshot().Rules.Accounts
	idx := slices.IndexFunc(accounts, func(acc studio.Account) bool {
		return studio.NormalizeUsername(acc.Username) == username
	})
	if idx < 0 {
		return studio.Account{}, false
	}
	return accounts[idx], true
}

// Login implements auth.AuthService. Unknown users and wrong passwords fail the same way.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse

	account, ok := a.accountByUsername(loginReq.Username)
	if !ok || account.PasswordHash == "" {
		return auth.TokenResponse{}, auth.ErrAccessDenied
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrAccessDenied
	}

	var err error
	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(account)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(account.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	if a.refreshTokens != nil {
		if err := a.refreshTokens.CreateRefreshToken(ctx, account.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn); err != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to save refresh token to database: %w", err)
		}
	}

	slog.Info("User logged in", "user_id", account.ID, "role", account.Role)
	return tokenResponse, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	a.Service.RevokeToken(token)

	if a.refreshTokens != nil {
		if err := a.refreshTokens.RevokeRefreshToken(ctx, token); err != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}
	}
	return nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	var accessTokenResponse auth.AccessTokenResponse

	userID, err := a.Service.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	if a.Service.IsTokenRevoked(req.RefreshToken) {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}
	if a.refreshTokens != nil {
		isRevoked, err := a.refreshTokens.IsRefreshTokenRevoked(ctx, req.RefreshToken)
		if err != nil {
			return auth.AccessTokenResponse{}, auth.ErrInvalidToken
		}
		if isRevoked {
			return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
		}
	}

	// The account may have been removed since the token was issued.
	account, ok := a.accountByID(userID)
	if !ok {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	accessTokenResponse.AccessToken, accessTokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(account)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessTokenResponse, nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context) (auth.MeResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return auth.MeResponse{}, err
	}

	account, ok := a.accountByID(actor.UserID)
	if !ok {
		return auth.MeResponse{}, auth.ErrInvalidToken
	}

	return auth.MeResponse{
		UserID:   account.ID,
		Username: account.Username,
		Name:     account.Name,
		Role:     account.Role,
		RoomID:   account.RoomID,
	}, nil
}

// SSEToken implements auth.AuthService.
func (a *AuthServiceImpl) SSEToken(ctx context.Context) (auth.SSETokenResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return auth.SSETokenResponse{}, err
	}

	token, expiresIn, err := a.Service.GenerateSSEToken(actor.UserID)
	if err != nil {
		return auth.SSETokenResponse{}, fmt.Errorf("failed to generate sse token: %w", err)
	}
	return auth.SSETokenResponse{Token: token, ExpiresIn: expiresIn}, nil
}

// StreamActor implements auth.AuthService.
func (a *AuthServiceImpl) StreamActor(ctx context.Context, sseToken string) (auth.Actor, error) {
	userID, err := a.Service.ValidateSSEToken(sseToken)
	if err != nil {
		return auth.Actor{}, auth.ErrInvalidToken
	}

	account, ok := a.accountByID(userID)
	if !ok {
		return auth.Actor{}, auth.ErrInvalidToken
	}
	return auth.Actor{
		UserID:   account.ID,
		Username: account.Username,
		Role:     account.Role,
		RoomID:   account.RoomID,
	}, nil
}
