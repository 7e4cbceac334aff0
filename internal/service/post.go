package service

import (
	"context"
	"errors"
	"math"
	"mime/multipart"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Rasika1975/socialapp/internal/dto"
	"github.com/Rasika1975/socialapp/internal/imagestore"
	"github.com/Rasika1975/socialapp/internal/model"
	"github.com/Rasika1975/socialapp/internal/rabbitmq"
	"github.com/Rasika1975/socialapp/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	DEFAULT_PAGE  = 1
	DEFAULT_LIMIT = 10

	maxToggleAttempts = 3
)

type postService struct {
	logger    *zap.Logger
	repo      *repository.Repository
	images    imagestore.Store
	publisher Publisher
	now       func() time.Time
}

func newPostService(logger *zap.Logger, repo *repository.Repository, images imagestore.Store, publisher Publisher) *postService {
	return &postService{
		logger:    logger,
		repo:      repo,
		images:    images,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *postService) Create(ctx context.Context, identity model.Identity, text string, image *multipart.FileHeader, origin *url.URL) (*model.Post, error) {
	var imageRef *string
	if image != nil {
		ref, err := s.ingest(ctx, image)
		if err != nil {
			return nil, err
		}
		imageRef = &ref
	}

	text = strings.TrimSpace(text)
	if text == "" && imageRef == nil {
		return nil, ErrEmptyPost
	}

	post, err := s.repo.Posts.Create(ctx, model.Post{
		UserID:    identity.ID,
		Username:  identity.Username,
		Text:      text,
		Image:     imageRef,
		Likes:     []model.Like{},
		Comments:  []model.Comment{},
		CreatedAt: s.now(),
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to create post for user(%s): %s", identity.ID, err.Error())
		if imageRef != nil {
			s.discard(ctx, *imageRef)
		}
		return nil, ErrInternal
	}

	s.publishActivity(ctx, dto.PostCreated, post.ID, identity)

	return present(post, origin), nil
}

// ingest never lets a reference that clients cannot resolve reach the store.
func (s *postService) ingest(ctx context.Context, image *multipart.FileHeader) (string, error) {
	if s.images == nil {
		s.logger.Error("image uploaded but no image store is configured")
		return "", ErrImageStorageMisconfigured
	}

	ref, err := s.images.Ingest(ctx, image)
	switch {
	case errors.Is(err, imagestore.ErrTooLarge):
		return "", ErrImageTooLarge
	case errors.Is(err, imagestore.ErrUnsupportedFormat):
		return "", ErrImageFormat
	case errors.Is(err, imagestore.ErrMisconfigured):
		s.logger.Sugar().Errorf("image store is misconfigured: %s", err.Error())
		return "", ErrImageStorageMisconfigured
	case err != nil:
		s.logger.Sugar().Errorf("failed to ingest image: %s", err.Error())
		return "", ErrInternal
	}

	if !isAbsoluteURL(ref) {
		s.logger.Sugar().Errorf("image store returned a non-URL reference %q", ref)
		return "", ErrImageStorageMisconfigured
	}

	return ref, nil
}

// discard removes an ingested image that no post ended up referencing.
func (s *postService) discard(ctx context.Context, ref string) {
	if err := s.images.Discard(ctx, ref); err != nil {
		s.logger.Sugar().Errorf("failed to discard orphaned image %q: %s", ref, err.Error())
	}
}

func (s *postService) List(ctx context.Context, page string, limit string, origin *url.URL) (*dto.PostsPage, error) {
	pageNum := parsePositive(page, DEFAULT_PAGE)
	limitNum := parsePositive(limit, DEFAULT_LIMIT)

	totalPosts, err := s.repo.Posts.Count(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count posts: %s", err.Error())
		return nil, ErrInternal
	}

	posts := []*model.Post{}
	// Pages past the addressable range are simply empty.
	if int64(pageNum-1) <= math.MaxInt64/int64(limitNum) {
		skip := int64(pageNum-1) * int64(limitNum)
		posts, err = s.repo.Posts.FindPage(ctx, skip, int64(limitNum))
		if err != nil {
			s.logger.Sugar().Errorf("failed to find posts(page: %d, limit: %d): %s", pageNum, limitNum, err.Error())
			return nil, ErrInternal
		}
	}

	for i, post := range posts {
		posts[i] = present(post, origin)
	}

	return &dto.PostsPage{
		Posts:       posts,
		CurrentPage: pageNum,
		TotalPages:  totalPages(totalPosts, limitNum),
		TotalPosts:  totalPosts,
	}, nil
}

// ToggleLike flips the caller's like with conditional single-document
// updates, so concurrent toggles by different users never overwrite each
// other. When neither update matches, the post is gone or the caller's own
// state changed in between; the latter is retried.
func (s *postService) ToggleLike(ctx context.Context, postID string, identity model.Identity, origin *url.URL) (*dto.LikeResponse, error) {
	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrPostNotFound
	}

	for attempt := 0; attempt < maxToggleAttempts; attempt++ {
		post, err := s.repo.Posts.PullLike(ctx, id, identity.ID)
		if err == nil {
			s.publishActivity(ctx, dto.PostUnliked, id, identity)
			return likeResponse(post, false, origin), nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Sugar().Errorf("failed to unlike post(%s): %s", postID, err.Error())
			return nil, ErrInternal
		}

		post, err = s.repo.Posts.PushLike(ctx, id, model.Like{UserID: identity.ID, Username: identity.Username})
		if err == nil {
			s.publishActivity(ctx, dto.PostLiked, id, identity)
			return likeResponse(post, true, origin), nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Sugar().Errorf("failed to like post(%s): %s", postID, err.Error())
			return nil, ErrInternal
		}

		if _, err := s.repo.Posts.FindByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrPostNotFound
			}
			s.logger.Sugar().Errorf("failed to find post(%s): %s", postID, err.Error())
			return nil, ErrInternal
		}
	}

	s.logger.Sugar().Errorf("like toggle on post(%s) by user(%s) did not settle after %d attempts", postID, identity.ID, maxToggleAttempts)
	return nil, ErrInternal
}

func (s *postService) AddComment(ctx context.Context, postID string, identity model.Identity, text string, origin *url.URL) (*model.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}

	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrPostNotFound
	}

	post, err := s.repo.Posts.PushComment(ctx, id, model.Comment{
		ID:        primitive.NewObjectID(),
		UserID:    identity.ID,
		Username:  identity.Username,
		Text:      text,
		CreatedAt: s.now(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to comment on post(%s): %s", postID, err.Error())
		return nil, ErrInternal
	}

	s.publishActivity(ctx, dto.PostCommented, id, identity)

	return present(post, origin), nil
}

func (s *postService) Delete(ctx context.Context, postID string, identity model.Identity) error {
	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return ErrPostNotFound
	}

	post, err := s.repo.Posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%s): %s", postID, err.Error())
		return ErrInternal
	}

	if post.UserID != identity.ID {
		return ErrNotPostOwner
	}

	deleted, err := s.repo.Posts.DeleteOwned(ctx, id, identity.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%s): %s", postID, err.Error())
		return ErrInternal
	}
	if !deleted {
		return ErrPostNotFound
	}

	s.publishActivity(ctx, dto.PostDeleted, id, identity)

	return nil
}

func (s *postService) publishActivity(ctx context.Context, eventType string, postID primitive.ObjectID, identity model.Identity) {
	publishJSON(ctx, s.logger, s.publisher, rabbitmq.POST_ACTIVITY_QUEUE, dto.PostActivityEvent{
		Type:     eventType,
		PostID:   postID.Hex(),
		UserID:   identity.ID,
		Username: identity.Username,
		At:       s.now(),
	})
}

func parsePositive(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func totalPages(total int64, limit int) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func present(post *model.Post, origin *url.URL) *model.Post {
	post.Image = NormalizeImage(post.Image, origin)
	if post.Likes == nil {
		post.Likes = []model.Like{}
	}
	if post.Comments == nil {
		post.Comments = []model.Comment{}
	}
	return post
}

func likeResponse(post *model.Post, liked bool, origin *url.URL) *dto.LikeResponse {
	return &dto.LikeResponse{
		Post:      present(post, origin),
		Liked:     liked,
		LikeCount: len(post.Likes),
	}
}
