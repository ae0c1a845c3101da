package storage

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inkpress/blog-system/internal/core/domain"
)

// Minimal valid file headers. mimetype only needs the magic bytes.
var (
	pngHeader  = []byte("\x89PNG\r\n\x1a\n" + strings.Repeat("\x00", 16))
	jpegHeader = []byte("\xff\xd8\xff\xe0\x00\x10JFIF" + strings.Repeat("\x00", 16))
)

func newStore(t *testing.T) *AvatarStore {
	t.Helper()
	store, err := NewAvatarStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestSave_PNG(t *testing.T) {
	store := newStore(t)

	path, err := store.Save(1, bytes.NewReader(pngHeader), int64(len(pngHeader)))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(path) != "user_1_avatar.png" {
		t.Fatalf("unexpected file name: %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file not on disk: %v", err)
	}
}

func TestSave_JPEG(t *testing.T) {
	store := newStore(t)

	path, err := store.Save(2, bytes.NewReader(jpegHeader), int64(len(jpegHeader)))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(path) != "user_2_avatar.jpg" {
		t.Fatalf("unexpected file name: %s", path)
	}
}

func TestSave_RejectsNonImage(t *testing.T) {
	store := newStore(t)

	content := []byte("<html><body>not an image</body></html>")
	_, err := store.Save(3, bytes.NewReader(content), int64(len(content)))
	if !errors.Is(err, domain.ErrInvalidAvatar) {
		t.Fatalf("expected ErrInvalidAvatar, got %v", err)
	}
}

func TestSave_RejectsDeclaredSizeOutOfRange(t *testing.T) {
	store := newStore(t)

	if _, err := store.Save(4, bytes.NewReader(pngHeader), 0); !errors.Is(err, domain.ErrInvalidAvatar) {
		t.Fatalf("zero size: expected ErrInvalidAvatar, got %v", err)
	}
	if _, err := store.Save(4, bytes.NewReader(pngHeader), maxAvatarBytes+1); !errors.Is(err, domain.ErrInvalidAvatar) {
		t.Fatalf("oversize: expected ErrInvalidAvatar, got %v", err)
	}
}

func TestSave_ReplacementDropsOldExtension(t *testing.T) {
	store := newStore(t)

	jpgPath, err := store.Save(5, bytes.NewReader(jpegHeader), int64(len(jpegHeader)))
	if err != nil {
		t.Fatalf("save jpeg: %v", err)
	}

	pngPath, err := store.Save(5, bytes.NewReader(pngHeader), int64(len(pngHeader)))
	if err != nil {
		t.Fatalf("save png: %v", err)
	}

	if _, err := os.Stat(jpgPath); !os.IsNotExist(err) {
		t.Fatalf("old jpeg variant must be gone: %v", err)
	}
	if _, err := os.Stat(pngPath); err != nil {
		t.Fatalf("new png variant missing: %v", err)
	}
}

func TestOpen_Roundtrip(t *testing.T) {
	store := newStore(t)

	path, err := store.Save(6, bytes.NewReader(pngHeader), int64(len(pngHeader)))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	rc, contentType, err := store.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()

	if contentType != "image/png" {
		t.Fatalf("expected image/png, got %q", contentType)
	}
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(data, pngHeader) {
		t.Fatalf("content mismatch")
	}
}

func TestOpen_Missing(t *testing.T) {
	store := newStore(t)

	_, _, err := store.Open(filepath.Join(t.TempDir(), "nope.png"))
	if !errors.Is(err, domain.ErrAvatarNotFound) {
		t.Fatalf("expected ErrAvatarNotFound, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	store := newStore(t)

	path, err := store.Save(7, bytes.NewReader(pngHeader), int64(len(pngHeader)))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("file should be gone: %v", err)
	}

	// Removing twice is not an error.
	if err := store.Remove(path); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}
