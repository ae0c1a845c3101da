package ports

import (
	"context"

	"github.com/inkpress/blog-system/internal/core/domain"
)

// RegisterInput carries the sanitized registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Age      *int
}

// AuthResult pairs the stored account with a freshly issued bearer token.
type AuthResult struct {
	User  *domain.User
	Token string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// VerifyEmail consumes a one-time verification link token and flips the
	// account's verified flag.
	VerifyEmail(ctx context.Context, linkToken string) error
}
