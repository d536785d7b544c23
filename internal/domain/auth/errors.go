package auth

import "errors"

var (
	// ErrAccessDenied covers both unknown users and wrong passwords.
	ErrAccessDenied        = errors.New("access denied, check credentials")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrForbidden           = errors.New("insufficient privileges for this action")
	ErrRoomAccessDenied    = errors.New("account is not allowed to view this room")
)
