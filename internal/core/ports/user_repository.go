package ports

import (
	"context"

	"github.com/inkpress/blog-system/internal/core/domain"
)

// UserRepository defines the persistence interface for user accounts.
// Create must enforce email uniqueness and return domain.ErrUserExists on a
// duplicate; the service-level existence pre-check alone cannot close the
// concurrent-registration race.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	MarkEmailVerified(ctx context.Context, id int64) error
	SetAvatarPath(ctx context.Context, id int64, path string) error
}
