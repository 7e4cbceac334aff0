package imagestore

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const cloudinaryFolder = "minisocial_posts"

type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(cloudinaryURL string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMisconfigured, err.Error())
	}

	return &CloudinaryStore{
		cld: cld,
	}, nil
}

func (s *CloudinaryStore) Ingest(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if _, err := validate(file); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("imagestore: open upload: %w", err)
	}
	defer src.Close()

	resp, err := s.cld.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder:         cloudinaryFolder,
		ResourceType:   "auto",
		AllowedFormats: api.CldAPIArray{"jpg", "png", "jpeg"},
	})
	if err != nil {
		return "", fmt.Errorf("imagestore: cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return "", uploadError(resp.Error.Message)
	}

	// An empty SecureURL is passed through; the caller rejects it.
	return resp.SecureURL, nil
}

func (s *CloudinaryStore) Discard(ctx context.Context, ref string) error {
	publicID, ok := cloudinaryPublicID(ref)
	if !ok {
		return nil
	}

	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("imagestore: cloudinary destroy(%s): %w", publicID, err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("imagestore: cloudinary destroy(%s): %s", publicID, resp.Error.Message)
	}
	return nil
}

// Cloudinary reports rejected credentials and account problems only through
// the message text.
var credentialMessages = []string{
	"api_key",
	"api key",
	"api_secret",
	"signature",
	"cloud_name",
	"cloud name",
	"account",
}

func uploadError(message string) error {
	lower := strings.ToLower(message)
	for _, marker := range credentialMessages {
		if strings.Contains(lower, marker) {
			return fmt.Errorf("%w: cloudinary: %s", ErrMisconfigured, message)
		}
	}
	return fmt.Errorf("imagestore: cloudinary upload: %s", message)
}

var versionSegment = regexp.MustCompile(`^v[0-9]+$`)

// cloudinaryPublicID recovers the public id from a delivery URL such as
// https://res.cloudinary.com/<cloud>/image/upload/v17/minisocial_posts/<id>.jpg.
// Only ids inside the posts folder are returned.
func cloudinaryPublicID(ref string) (string, bool) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", false
	}

	_, rest, found := strings.Cut(u.Path, "/upload/")
	if !found {
		return "", false
	}

	segments := strings.Split(rest, "/")
	if len(segments) > 0 && versionSegment.MatchString(segments[0]) {
		segments = segments[1:]
	}
	if len(segments) != 2 || segments[0] != cloudinaryFolder || segments[1] == "" {
		return "", false
	}

	id := path.Join(segments...)
	return strings.TrimSuffix(id, path.Ext(id)), true
}
