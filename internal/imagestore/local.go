package imagestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStore keeps images on disk under dir; the HTTP layer serves dir at
// UploadsPath. Without a public base URL it can only produce bare paths.
type LocalStore struct {
	dir           string
	publicBaseURL string
}

func NewLocal(dir string, publicBaseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("imagestore: ensure upload dir: %w", err)
	}

	return &LocalStore{
		dir:           dir,
		publicBaseURL: publicBaseURL,
	}, nil
}

func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) Ingest(ctx context.Context, file *multipart.FileHeader) (string, error) {
	ext, err := validate(file)
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("imagestore: open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + ext
	dstPath := filepath.Join(s.dir, name)
	dst, err := os.OpenFile(dstPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("imagestore: create %s: %w", name, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dstPath)
		return "", fmt.Errorf("imagestore: write %s: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("imagestore: close %s: %w", name, err)
	}

	return s.publicBaseURL + UploadsPath + "/" + name, nil
}

func (s *LocalStore) Discard(ctx context.Context, ref string) error {
	name, ok := localName(ref)
	if !ok {
		return nil
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("imagestore: remove %s: %w", name, err)
	}
	return nil
}

// localName extracts the file name from a reference produced by Ingest.
func localName(ref string) (string, bool) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", false
	}

	dir, name := path.Split(u.Path)
	if dir != UploadsPath+"/" || name == "" || name == "." || name == ".." {
		return "", false
	}
	return name, true
}
