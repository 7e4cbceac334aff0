package imagestore

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/Rasika1975/socialapp/internal/config"
)

const (
	MaxImageSize = 5 << 20
	UploadsPath  = "/uploads"
)

var (
	ErrTooLarge          = errors.New("imagestore: image exceeds 5MB")
	ErrUnsupportedFormat = errors.New("imagestore: unsupported image format")
	ErrMisconfigured     = errors.New("imagestore: backend is misconfigured")
)

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// Store turns an uploaded file into a reference clients can fetch. Callers
// must treat any result that is not an absolute URL as a misconfiguration.
type Store interface {
	Ingest(ctx context.Context, file *multipart.FileHeader) (string, error)
	// Discard removes an image previously returned by Ingest. Unknown
	// references are ignored.
	Discard(ctx context.Context, ref string) error
}

func NewFromConfig(cfg config.Images) (Store, error) {
	switch cfg.Backend {
	case "local":
		return NewLocal(cfg.Dir, cfg.PublicBaseURL)
	case "cloudinary":
		if cfg.CloudinaryURL == "" {
			return nil, fmt.Errorf("%w: CLOUDINARY_URL is not set", ErrMisconfigured)
		}
		return NewCloudinary(cfg.CloudinaryURL)
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrMisconfigured, cfg.Backend)
	}
}

func validate(file *multipart.FileHeader) (string, error) {
	if file.Size > MaxImageSize {
		return "", ErrTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", ErrUnsupportedFormat
	}

	return ext, nil
}
