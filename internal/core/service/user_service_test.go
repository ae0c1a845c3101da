package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkpress/blog-system/internal/core/domain"
	"github.com/inkpress/blog-system/internal/core/ports"
	"github.com/inkpress/blog-system/internal/token"
)

type stubAvatarStore struct {
	files   map[string][]byte
	saveErr error
}

func newStubAvatarStore() *stubAvatarStore {
	return &stubAvatarStore{files: make(map[string][]byte)}
}

func (s *stubAvatarStore) Save(userID int64, r io.Reader, _ int64) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	path := fmt.Sprintf("avatars/user_%d.png", userID)
	s.files[path] = data
	return path, nil
}

func (s *stubAvatarStore) Open(path string) (io.ReadCloser, string, error) {
	data, ok := s.files[path]
	if !ok {
		return nil, "", domain.ErrAvatarNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), "image/png", nil
}

func (s *stubAvatarStore) Remove(path string) error {
	delete(s.files, path)
	return nil
}

func newUserService(users *stubUserRepo, posts *stubPostRepo, avatars *stubAvatarStore, sender *stubSender) *UserService {
	tokens := token.New("secret", time.Hour)
	return NewUserService(users, posts, avatars, tokens, sender, zerolog.Nop())
}

func TestUserService_List_PublicProjection(t *testing.T) {
	users := newStubUserRepo()
	svc := newUserService(users, newStubPostRepo(), newStubAvatarStore(), &stubSender{})

	seedUser(users, "Ann", "ann@x.com")
	seedUser(users, "Bob", "bob@x.com")

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 users, got %d", len(list))
	}
	for _, u := range list {
		if u.ID == 0 || u.Name == "" || u.CreatedAt.IsZero() {
			t.Fatalf("public projection incomplete: %+v", u)
		}
	}
}

func TestUserService_UpdateMe_EmailChangeResetsVerification(t *testing.T) {
	users := newStubUserRepo()
	sender := &stubSender{}
	svc := newUserService(users, newStubPostRepo(), newStubAvatarStore(), sender)

	u := seedUser(users, "Ann", "ann@x.com")
	users.users[u.ID].IsEmailVerified = true

	newEmail := "ann@new.com"
	updated, err := svc.UpdateMe(context.Background(), u.ID, ports.UpdateProfileInput{Email: &newEmail})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Email != newEmail {
		t.Fatalf("email not updated: %q", updated.Email)
	}
	if updated.IsEmailVerified {
		t.Fatalf("email change must reset the verified flag")
	}
	msgs := sender.messages()
	if len(msgs) != 1 || msgs[0].To != newEmail {
		t.Fatalf("expected a fresh verification email to %s, got %+v", newEmail, msgs)
	}
}

func TestUserService_UpdateMe_NameOnlyKeepsVerification(t *testing.T) {
	users := newStubUserRepo()
	sender := &stubSender{}
	svc := newUserService(users, newStubPostRepo(), newStubAvatarStore(), sender)

	u := seedUser(users, "Ann", "ann@x.com")
	users.users[u.ID].IsEmailVerified = true

	name := "Anne"
	updated, err := svc.UpdateMe(context.Background(), u.ID, ports.UpdateProfileInput{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Anne" {
		t.Fatalf("name not updated: %q", updated.Name)
	}
	if !updated.IsEmailVerified {
		t.Fatalf("name change must not reset the verified flag")
	}
	if len(sender.messages()) != 0 {
		t.Fatalf("name change must not queue mail")
	}
}

func TestUserService_DeleteMe_Cascades(t *testing.T) {
	users := newStubUserRepo()
	posts := newStubPostRepo()
	avatars := newStubAvatarStore()
	svc := newUserService(users, posts, avatars, &stubSender{})

	u := seedUser(users, "Ann", "ann@x.com")
	other := seedUser(users, "Bob", "bob@x.com")

	if err := svc.SaveAvatar(context.Background(), u.ID, ports.AvatarUpload{Reader: bytes.NewReader([]byte("png")), Size: 3}); err != nil {
		t.Fatalf("save avatar: %v", err)
	}

	postSvc := NewPostService(posts, users, zerolog.Nop())
	mine, err := postSvc.Create(context.Background(), ports.CreatePostInput{Title: "aa", Content: "b", AuthorID: u.ID})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	theirs, err := postSvc.Create(context.Background(), ports.CreatePostInput{Title: "cc", Content: "d", AuthorID: other.ID})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	if err := svc.DeleteMe(context.Background(), u.ID); err != nil {
		t.Fatalf("delete me: %v", err)
	}

	if _, err := svc.Get(context.Background(), u.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("account still present")
	}
	if _, ok := posts.posts[mine.ID]; ok {
		t.Fatalf("owned post survived the cascade")
	}
	if _, ok := posts.posts[theirs.ID]; !ok {
		t.Fatalf("another user's post was deleted")
	}
	if len(avatars.files) != 0 {
		t.Fatalf("avatar file survived the cascade")
	}
}

func TestUserService_Avatar_Roundtrip(t *testing.T) {
	users := newStubUserRepo()
	svc := newUserService(users, newStubPostRepo(), newStubAvatarStore(), &stubSender{})

	u := seedUser(users, "Ann", "ann@x.com")

	if _, err := svc.OpenAvatar(context.Background(), u.ID); !errors.Is(err, domain.ErrAvatarNotFound) {
		t.Fatalf("expected ErrAvatarNotFound before upload, got %v", err)
	}

	payload := []byte("fake-image-bytes")
	if err := svc.SaveAvatar(context.Background(), u.ID, ports.AvatarUpload{Reader: bytes.NewReader(payload), Size: int64(len(payload))}); err != nil {
		t.Fatalf("save avatar: %v", err)
	}

	avatar, err := svc.OpenAvatar(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("open avatar: %v", err)
	}
	defer avatar.Content.Close()

	data, err := io.ReadAll(avatar.Content)
	if err != nil {
		t.Fatalf("read avatar: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Fatalf("avatar content mismatch")
	}
	if avatar.ContentType != "image/png" {
		t.Fatalf("unexpected content type %q", avatar.ContentType)
	}
}

func TestUserService_SaveAvatar_UnknownUser(t *testing.T) {
	svc := newUserService(newStubUserRepo(), newStubPostRepo(), newStubAvatarStore(), &stubSender{})

	err := svc.SaveAvatar(context.Background(), 42, ports.AvatarUpload{Reader: bytes.NewReader([]byte("x")), Size: 1})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
