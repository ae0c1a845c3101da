// Package storage keeps avatar binaries on local disk, one file per user.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/inkpress/blog-system/internal/core/domain"
)

// maxAvatarBytes is the hard size cap enforced again at the store, behind
// the handler's multipart size check.
const maxAvatarBytes = 5 << 20

// AvatarStore writes avatars under a single directory with fixed names
// (user_<id>_avatar.<ext>), so a re-upload replaces the previous file.
type AvatarStore struct {
	dir string
}

// NewAvatarStore creates the backing directory if needed.
func NewAvatarStore(dir string) (*AvatarStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create avatar dir: %w", err)
	}
	return &AvatarStore{dir: dir}, nil
}

// Save sniffs the leading bytes to validate the actual content; the
// client-declared Content-Type is not trusted. Only JPEG and PNG pass,
// anything else is domain.ErrInvalidAvatar.
func (s *AvatarStore) Save(userID int64, r io.Reader, size int64) (string, error) {
	if size <= 0 || size > maxAvatarBytes {
		return "", domain.ErrInvalidAvatar
	}

	data, err := io.ReadAll(io.LimitReader(r, maxAvatarBytes+1))
	if err != nil {
		return "", fmt.Errorf("read avatar: %w", err)
	}
	if len(data) > maxAvatarBytes {
		return "", domain.ErrInvalidAvatar
	}

	mtype := mimetype.Detect(data)
	ext := ""
	switch {
	case mtype.Is("image/jpeg"):
		ext = ".jpg"
	case mtype.Is("image/png"):
		ext = ".png"
	default:
		return "", domain.ErrInvalidAvatar
	}

	// Drop a leftover with the other extension before writing the new file.
	s.removeVariants(userID)

	name := fmt.Sprintf("user_%d_avatar%s", userID, ext)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write avatar: %w", err)
	}
	return path, nil
}

// Open returns the stored avatar and its sniffed content type.
func (s *AvatarStore) Open(path string) (io.ReadCloser, string, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, "", domain.ErrAvatarNotFound
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", domain.ErrAvatarNotFound
	}
	return f, mtype.String(), nil
}

// Remove deletes a stored avatar. A missing file is not an error.
func (s *AvatarStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove avatar: %w", err)
	}
	return nil
}

func (s *AvatarStore) removeVariants(userID int64) {
	for _, ext := range []string{".jpg", ".png"} {
		_ = os.Remove(filepath.Join(s.dir, fmt.Sprintf("user_%d_avatar%s", userID, ext)))
	}
}
