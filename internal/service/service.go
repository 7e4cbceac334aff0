package service

import (
	"context"
	"mime/multipart"
	"net/url"

	"github.com/Rasika1975/socialapp/internal/config"
	"github.com/Rasika1975/socialapp/internal/dto"
	"github.com/Rasika1975/socialapp/internal/imagestore"
	"github.com/Rasika1975/socialapp/internal/model"
	"github.com/Rasika1975/socialapp/internal/repository"
	"go.uber.org/zap"
)

// Publisher delivers an encoded event to a named queue.
type Publisher interface {
	Publish(ctx context.Context, queue string, body []byte) error
}

type Auth interface {
	SignUp(ctx context.Context, input dto.SignUpRequest) (*dto.AuthResponse, error)
	SignIn(ctx context.Context, input dto.SignInRequest) (*dto.AuthResponse, error)
	ParseToken(token string) (*model.Identity, error)
}

// Post methods take the serving origin so image references can be
// normalized for the client that is reading them.
type Post interface {
	Create(ctx context.Context, identity model.Identity, text string, image *multipart.FileHeader, origin *url.URL) (*model.Post, error)
	List(ctx context.Context, page string, limit string, origin *url.URL) (*dto.PostsPage, error)
	ToggleLike(ctx context.Context, postID string, identity model.Identity, origin *url.URL) (*dto.LikeResponse, error)
	AddComment(ctx context.Context, postID string, identity model.Identity, text string, origin *url.URL) (*model.Post, error)
	Delete(ctx context.Context, postID string, identity model.Identity) error
}

type Service struct {
	Auth
	Post
}

func New(logger *zap.Logger, repo *repository.Repository, images imagestore.Store, publisher Publisher, jwtConfig config.JWT) *Service {
	return &Service{
		Auth: newAuthService(logger, repo, publisher, jwtConfig),
		Post: newPostService(logger, repo, images, publisher),
	}
}
