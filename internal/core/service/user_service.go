package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkpress/blog-system/internal/core/domain"
	"github.com/inkpress/blog-system/internal/core/ports"
	"github.com/inkpress/blog-system/internal/token"
)

// UserService implements profile and avatar operations.
type UserService struct {
	users   ports.UserRepository
	posts   ports.PostRepository
	avatars ports.AvatarStore
	tokens  *token.Service
	mail    ports.VerificationSender
	log     zerolog.Logger
}

func NewUserService(users ports.UserRepository, posts ports.PostRepository, avatars ports.AvatarStore, tokens *token.Service, mail ports.VerificationSender, log zerolog.Logger) *UserService {
	return &UserService{users: users, posts: posts, avatars: avatars, tokens: tokens, mail: mail, log: log}
}

// List returns every account reduced to its public projection, newest first.
func (s *UserService) List(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out, nil
}

// Get returns one account's public projection.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.PublicUser, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	pub := user.Public()
	return &pub, nil
}

// GetMe returns the caller's full profile.
func (s *UserService) GetMe(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// UpdateMe applies the mutable profile fields. Changing the email resets the
// verified flag and queues a fresh verification email.
func (s *UserService) UpdateMe(ctx context.Context, id int64, in ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Age != nil {
		user.Age = in.Age
	}
	emailChanged := in.Email != nil && *in.Email != user.Email
	if emailChanged {
		user.Email = *in.Email
		user.IsEmailVerified = false
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	if emailChanged {
		s.queueVerification(updated)
	}
	return updated, nil
}

// DeleteMe removes the account, every post it owns, and its avatar file.
// Post and avatar cleanup run after the account row is gone; a failure there
// is logged, not surfaced, since the account deletion already committed.
func (s *UserService) DeleteMe(ctx context.Context, id int64) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.posts.DeleteByAuthor(ctx, id); err != nil {
		s.log.Error().Err(err).Int64("user_id", id).Msg("cascade post delete")
	}
	if user.AvatarPath != "" {
		if err := s.avatars.Remove(user.AvatarPath); err != nil {
			s.log.Error().Err(err).Int64("user_id", id).Msg("remove avatar")
		}
	}
	return nil
}

// SaveAvatar stores the uploaded image and records its path on the account.
func (s *UserService) SaveAvatar(ctx context.Context, id int64, upload ports.AvatarUpload) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}

	path, err := s.avatars.Save(id, upload.Reader, upload.Size)
	if err != nil {
		return err
	}
	return s.users.SetAvatarPath(ctx, id, path)
}

// OpenAvatar opens the stored avatar for streaming.
func (s *UserService) OpenAvatar(ctx context.Context, id int64) (*ports.AvatarFile, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.AvatarPath == "" {
		return nil, domain.ErrAvatarNotFound
	}

	content, contentType, err := s.avatars.Open(user.AvatarPath)
	if err != nil {
		return nil, domain.ErrAvatarNotFound
	}
	return &ports.AvatarFile{Content: content, ContentType: contentType}, nil
}

func (s *UserService) queueVerification(user *domain.User) {
	linkToken, err := s.tokens.IssueFor(user.ID, token.PurposeEmailVerify)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("issue verification token")
		return
	}
	s.mail.Enqueue(ports.VerificationEmail{To: user.Email, Name: user.Name, Token: linkToken})
}
