package ports

import "io"

// AvatarStore persists avatar binaries outside the database. Save validates
// the actual content (MIME sniffing, size cap) and returns the stored path;
// it replaces any previous avatar for the same user.
type AvatarStore interface {
	Save(userID int64, r io.Reader, size int64) (path string, err error)
	Open(path string) (io.ReadCloser, string, error)
	Remove(path string) error
}
