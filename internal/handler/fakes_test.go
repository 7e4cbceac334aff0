package handler

import (
	"context"
	"io"
	"mime/multipart"
	"net/url"
	"sync"

	"github.com/Rasika1975/socialapp/internal/dto"
	"github.com/Rasika1975/socialapp/internal/model"
	"github.com/Rasika1975/socialapp/internal/service"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const validToken = "valid-token"

var alice = model.Identity{ID: "u-alice", Username: "alice"}

type fakeAuth struct {
	signUpInput dto.SignUpRequest
	signInInput dto.SignInRequest
	err         error
}

func (f *fakeAuth) SignUp(_ context.Context, input dto.SignUpRequest) (*dto.AuthResponse, error) {
	f.signUpInput = input
	if f.err != nil {
		return nil, f.err
	}
	return &dto.AuthResponse{ID: "u-1", Username: input.Username, Email: input.Email, Token: "t"}, nil
}

func (f *fakeAuth) SignIn(_ context.Context, input dto.SignInRequest) (*dto.AuthResponse, error) {
	f.signInInput = input
	if f.err != nil {
		return nil, f.err
	}
	return &dto.AuthResponse{ID: "u-1", Username: "alice", Email: input.Email, Token: "t"}, nil
}

func (f *fakeAuth) ParseToken(token string) (*model.Identity, error) {
	if token != validToken {
		return nil, service.ErrUnauthorized
	}
	identity := alice
	return &identity, nil
}

// fakePosts records the arguments of the last call.
type fakePosts struct {
	mu sync.Mutex

	identity  model.Identity
	text      string
	imageName string
	imageBody string
	page      string
	limit     string
	postID    string
	origin    *url.URL

	err error
}

func (f *fakePosts) record(identity model.Identity, postID string, origin *url.URL) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.identity = identity
	f.postID = postID
	f.origin = origin
}

func (f *fakePosts) Create(_ context.Context, identity model.Identity, text string, image *multipart.FileHeader, origin *url.URL) (*model.Post, error) {
	f.record(identity, "", origin)
	f.text = text
	if image != nil {
		f.imageName = image.Filename
		file, err := image.Open()
		if err != nil {
			return nil, err
		}
		defer file.Close()
		body, err := io.ReadAll(file)
		if err != nil {
			return nil, err
		}
		f.imageBody = string(body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &model.Post{ID: primitive.NewObjectID(), UserID: identity.ID, Username: identity.Username, Text: text}, nil
}

func (f *fakePosts) List(_ context.Context, page string, limit string, origin *url.URL) (*dto.PostsPage, error) {
	f.record(model.Identity{}, "", origin)
	f.page = page
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	return &dto.PostsPage{Posts: []*model.Post{}, CurrentPage: 1}, nil
}

func (f *fakePosts) ToggleLike(_ context.Context, postID string, identity model.Identity, origin *url.URL) (*dto.LikeResponse, error) {
	f.record(identity, postID, origin)
	if f.err != nil {
		return nil, f.err
	}
	post := &model.Post{Likes: []model.Like{{UserID: identity.ID, Username: identity.Username}}}
	return &dto.LikeResponse{Post: post, Liked: true, LikeCount: 1}, nil
}

func (f *fakePosts) AddComment(_ context.Context, postID string, identity model.Identity, text string, origin *url.URL) (*model.Post, error) {
	f.record(identity, postID, origin)
	f.text = text
	if f.err != nil {
		return nil, f.err
	}
	return &model.Post{Comments: []model.Comment{{UserID: identity.ID, Username: identity.Username, Text: text}}}, nil
}

func (f *fakePosts) Delete(_ context.Context, postID string, identity model.Identity) error {
	f.record(identity, postID, nil)
	return f.err
}

func newTestRouter(auth *fakeAuth, posts *fakePosts, options Options) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := New(zap.NewNop(), &service.Service{Auth: auth, Post: posts}, options)
	return h.InitRoutes()
}
