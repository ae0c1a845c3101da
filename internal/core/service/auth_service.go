package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkpress/blog-system/internal/api/metrics"
	"github.com/inkpress/blog-system/internal/core/domain"
	"github.com/inkpress/blog-system/internal/core/ports"
	"github.com/inkpress/blog-system/internal/token"
)

// bcryptCost matches the 10-round cost the original deployment used.
const bcryptCost = 10

// AuthService implements registration, login, and email verification.
type AuthService struct {
	users  ports.UserRepository
	tokens *token.Service
	mail   ports.VerificationSender
	links  ports.VerificationStore
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens *token.Service, mail ports.VerificationSender, links ports.VerificationStore, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, mail: mail, links: links, log: log}
}

// Register creates an account, issues a bearer token, and queues the
// verification email. The duplicate-email race between the pre-check and the
// insert is closed by the repository's unique index, not here.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if existing, err := s.users.FindByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, domain.ErrUserExists
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := hashPassword(in.Password, bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		Age:          in.Age,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	bearer, err := s.tokens.Issue(created.ID)
	if err != nil {
		return nil, err
	}

	s.queueVerification(created)
	metrics.RegistrationsTotal.Inc()

	return &ports.AuthResult{User: created, Token: bearer}, nil
}

// Login verifies credentials and issues a fresh bearer token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !verifyPassword(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	bearer, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.Inc()
	return &ports.AuthResult{User: user, Token: bearer}, nil
}

// VerifyEmail redeems a verification link token. The token must carry the
// email-verify purpose, must not be expired, and is consumed on first use.
func (s *AuthService) VerifyEmail(ctx context.Context, linkToken string) error {
	subjectID, err := s.tokens.VerifyFor(linkToken, token.PurposeEmailVerify)
	if err != nil {
		return err
	}

	// The flag flips before the one-time marker is consumed: a transient
	// update failure leaves the token redeemable for a retry. Marking is
	// idempotent, so a replay only changes the reported outcome.
	if err := s.users.MarkEmailVerified(ctx, subjectID); err != nil {
		return err
	}

	fresh, err := s.links.Consume(ctx, linkToken)
	if err != nil {
		return err
	}
	if !fresh {
		return domain.ErrTokenConsumed
	}
	return nil
}

// queueVerification issues the link token and enqueues the email. Delivery is
// asynchronous; a failure here must not fail the registration.
func (s *AuthService) queueVerification(user *domain.User) {
	linkToken, err := s.tokens.IssueFor(user.ID, token.PurposeEmailVerify)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("issue verification token")
		return
	}
	s.mail.Enqueue(ports.VerificationEmail{To: user.Email, Name: user.Name, Token: linkToken})
}
