package ports

import (
	"context"
	"io"

	"github.com/inkpress/blog-system/internal/core/domain"
)

// UpdateProfileInput carries the mutable profile fields. Nil pointers mean
// "leave unchanged".
type UpdateProfileInput struct {
	Name  *string
	Email *string
	Age   *int
}

// AvatarUpload is a validated-size multipart upload handed to the service.
// ContentType is the client-declared MIME type; the store re-sniffs it.
type AvatarUpload struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

// AvatarFile is an open avatar ready to stream to the client.
type AvatarFile struct {
	Content     io.ReadCloser
	ContentType string
}

type UserService interface {
	List(ctx context.Context) ([]domain.PublicUser, error)
	Get(ctx context.Context, id int64) (*domain.PublicUser, error)
	GetMe(ctx context.Context, id int64) (*domain.User, error)
	UpdateMe(ctx context.Context, id int64, in UpdateProfileInput) (*domain.User, error)
	// DeleteMe removes the account, its posts, and its avatar file.
	DeleteMe(ctx context.Context, id int64) error
	SaveAvatar(ctx context.Context, id int64, upload AvatarUpload) error
	OpenAvatar(ctx context.Context, id int64) (*AvatarFile, error)
}
