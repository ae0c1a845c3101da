package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists with this email")
	ErrPostNotFound       = errors.New("post not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAvatarNotFound     = errors.New("avatar not found")
	ErrInvalidAvatar      = errors.New("invalid avatar upload")
	ErrTokenConsumed      = errors.New("verification token already used")
)
