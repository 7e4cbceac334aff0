package repository

import (
	"context"
	"errors"

	"github.com/Rasika1975/socialapp/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("repository: not found")
	ErrDuplicate = errors.New("repository: duplicate key")
)

// User is the credential store.
type User interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// Post is the post store. The like and comment mutations are single
// conditional updates on one document; ErrNotFound means the condition did
// not match (post absent, or the like state was not the expected one).
type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	FindPage(ctx context.Context, skip int64, limit int64) ([]*model.Post, error)
	Count(ctx context.Context) (int64, error)
	PullLike(ctx context.Context, id primitive.ObjectID, userID string) (*model.Post, error)
	PushLike(ctx context.Context, id primitive.ObjectID, like model.Like) (*model.Post, error)
	PushComment(ctx context.Context, id primitive.ObjectID, comment model.Comment) (*model.Post, error)
	DeleteOwned(ctx context.Context, id primitive.ObjectID, userID string) (bool, error)
}

type Repository struct {
	Users User
	Posts Post
}

func New(users User, posts Post) *Repository {
	return &Repository{
		Users: users,
		Posts: posts,
	}
}
