package ports

import (
	"context"

	"github.com/inkpress/blog-system/internal/core/domain"
)

// CreatePostInput carries a sanitized post payload plus the author resolved
// from the bearer token.
type CreatePostInput struct {
	Title    string
	Content  string
	AuthorID int64
}

// UpdatePostInput carries a sanitized post update. SubjectID is the caller's
// identity; the service enforces the ownership check.
type UpdatePostInput struct {
	PostID    int64
	SubjectID int64
	Title     string
	Content   string
}

// AuthorPosts bundles a user's public projection with their posts.
type AuthorPosts struct {
	User  domain.PublicUser
	Posts []domain.Post
}

type PostService interface {
	Create(ctx context.Context, in CreatePostInput) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	Get(ctx context.Context, id int64) (*domain.Post, error)
	ListByAuthor(ctx context.Context, authorID int64) (*AuthorPosts, error)
	Update(ctx context.Context, in UpdatePostInput) (*domain.Post, error)
	Delete(ctx context.Context, postID, subjectID int64) error
}
