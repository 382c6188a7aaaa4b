package auth

import "errors"

var (
	// ErrTokenExpired reports a well-formed token whose expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid reports any other malformed or mis-signed token.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrMissingToken reports an absent or malformed Authorization header.
	ErrMissingToken = errors.New("bearer token missing")
	// ErrSessionNotFound reports a refresh token absent from the session
	// store: revoked, already rotated, or never issued.
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidCredentials reports a sign-in with a bad identity or secret.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
