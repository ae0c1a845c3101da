package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkpress/blog-system/internal/api/metrics"
	"github.com/inkpress/blog-system/internal/core/domain"
	"github.com/inkpress/blog-system/internal/core/ports"
)

// PostService implements post CRUD with ownership enforcement.
type PostService struct {
	posts ports.PostRepository
	users ports.UserRepository
	log   zerolog.Logger
}

func NewPostService(posts ports.PostRepository, users ports.UserRepository, log zerolog.Logger) *PostService {
	return &PostService{posts: posts, users: users, log: log}
}

func (s *PostService) Create(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
	now := time.Now().UTC()
	created, err := s.posts.Create(ctx, &domain.Post{
		Title:     in.Title,
		Content:   in.Content,
		AuthorID:  in.AuthorID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	metrics.PostsCreatedTotal.Inc()
	return s.withAuthor(ctx, created), nil
}

func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.attachAuthors(ctx, posts), nil
}

func (s *PostService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withAuthor(ctx, post), nil
}

// ListByAuthor returns a user's posts. The author must exist; a missing
// author is a 404 on the user, not an empty list.
func (s *PostService) ListByAuthor(ctx context.Context, authorID int64) (*ports.AuthorPosts, error) {
	user, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	author := &domain.Author{ID: user.ID, Name: user.Name}
	for i := range posts {
		posts[i].Author = author
	}
	return &ports.AuthorPosts{User: user.Public(), Posts: posts}, nil
}

// Update replaces title and content of the caller's own post. Existence is
// checked before ownership, so a missing post is 404 even for non-owners.
func (s *PostService) Update(ctx context.Context, in ports.UpdatePostInput) (*domain.Post, error) {
	existing, err := s.posts.FindByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if existing.AuthorID != in.SubjectID {
		return nil, domain.ErrForbidden
	}

	existing.Title = in.Title
	existing.Content = in.Content
	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.posts.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	return s.withAuthor(ctx, updated), nil
}

// Delete removes the caller's own post, existence checked before ownership.
func (s *PostService) Delete(ctx context.Context, postID, subjectID int64) error {
	existing, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if existing.AuthorID != subjectID {
		return domain.ErrForbidden
	}
	return s.posts.Delete(ctx, postID)
}

// withAuthor decorates a single post with its author reference. A lookup
// failure leaves Author nil rather than failing the whole request.
func (s *PostService) withAuthor(ctx context.Context, post *domain.Post) *domain.Post {
	user, err := s.users.FindByID(ctx, post.AuthorID)
	if err != nil {
		s.log.Warn().Err(err).Int64("author_id", post.AuthorID).Msg("author lookup")
		return post
	}
	post.Author = &domain.Author{ID: user.ID, Name: user.Name}
	return post
}

// attachAuthors resolves author references for a list with one lookup per
// distinct author.
func (s *PostService) attachAuthors(ctx context.Context, posts []domain.Post) []domain.Post {
	authors := make(map[int64]*domain.Author)
	for i := range posts {
		id := posts[i].AuthorID
		author, ok := authors[id]
		if !ok {
			if user, err := s.users.FindByID(ctx, id); err == nil {
				author = &domain.Author{ID: user.ID, Name: user.Name}
			}
			authors[id] = author
		}
		posts[i].Author = author
	}
	return posts
}
