package auth

import "errors"

var (
	// ErrInvalidToken indicates a malformed token or a failed signature check.
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrExpiredToken indicates a well-formed token whose expiry has passed.
	ErrExpiredToken = errors.New("auth: token expired")
	// ErrInvalidRefreshToken covers every refresh verification failure; callers
	// are not told whether the token was malformed, tampered with or expired.
	ErrInvalidRefreshToken = errors.New("auth: refresh token invalid or expired")
	// ErrInvalidCredentials is returned for unknown emails and wrong passwords
	// alike, so login failures do not reveal which accounts exist.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrUnauthorized is the boundary error surfaced to HTTP callers.
	ErrUnauthorized = errors.New("auth: unauthorized")
	// ErrForbidden indicates a valid identity lacking the required role.
	ErrForbidden = errors.New("auth: forbidden")
)
