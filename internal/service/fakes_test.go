package service

import (
	"context"
	"mime/multipart"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/Rasika1975/socialapp/internal/model"
	"github.com/Rasika1975/socialapp/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]model.User
	next  int
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[string]model.User{}}
}

func (r *memoryUsers) Create(ctx context.Context, user model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Email]; ok {
		return nil, repository.ErrDuplicate
	}
	r.next++
	user.ID = "user-" + strconv.Itoa(r.next)
	user.CreatedAt = time.Now().UTC()
	r.users[user.Email] = user
	return &user, nil
}

func (r *memoryUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

// memoryPosts mirrors the conditional update semantics of the Mongo store.
type memoryPosts struct {
	mu        sync.Mutex
	posts     map[primitive.ObjectID]*model.Post
	createErr error
}

func newMemoryPosts() *memoryPosts {
	return &memoryPosts{posts: map[primitive.ObjectID]*model.Post{}}
}

func clonePost(p *model.Post) *model.Post {
	c := *p
	c.Likes = append([]model.Like{}, p.Likes...)
	c.Comments = append([]model.Comment{}, p.Comments...)
	if p.Image != nil {
		image := *p.Image
		c.Image = &image
	}
	return &c
}

func (r *memoryPosts) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	post.ID = primitive.NewObjectID()
	r.posts[post.ID] = clonePost(&post)
	return clonePost(&post), nil
}

func (r *memoryPosts) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clonePost(post), nil
}

func (r *memoryPosts) FindPage(ctx context.Context, skip int64, limit int64) ([]*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*model.Post, 0, len(r.posts))
	for _, post := range r.posts {
		all = append(all, clonePost(post))
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID.Hex() > all[j].ID.Hex()
	})
	if skip >= int64(len(all)) {
		return []*model.Post{}, nil
	}
	end := skip + limit
	if end > int64(len(all)) {
		end = int64(len(all))
	}
	return all[skip:end], nil
}

func (r *memoryPosts) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.posts)), nil
}

func (r *memoryPosts) PullLike(ctx context.Context, id primitive.ObjectID, userID string) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok || !post.LikedBy(userID) {
		return nil, repository.ErrNotFound
	}
	likes := post.Likes[:0]
	for _, like := range post.Likes {
		if like.UserID != userID {
			likes = append(likes, like)
		}
	}
	post.Likes = likes
	return clonePost(post), nil
}

func (r *memoryPosts) PushLike(ctx context.Context, id primitive.ObjectID, like model.Like) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok || post.LikedBy(like.UserID) {
		return nil, repository.ErrNotFound
	}
	post.Likes = append(post.Likes, like)
	return clonePost(post), nil
}

func (r *memoryPosts) PushComment(ctx context.Context, id primitive.ObjectID, comment model.Comment) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	post.Comments = append(post.Comments, comment)
	return clonePost(post), nil
}

func (r *memoryPosts) DeleteOwned(ctx context.Context, id primitive.ObjectID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok || post.UserID != userID {
		return false, nil
	}
	delete(r.posts, id)
	return true, nil
}

type stubImages struct {
	ref       string
	err       error
	discarded *[]string
}

func (s stubImages) Ingest(ctx context.Context, file *multipart.FileHeader) (string, error) {
	return s.ref, s.err
}

func (s stubImages) Discard(ctx context.Context, ref string) error {
	if s.discarded != nil {
		*s.discarded = append(*s.discarded, ref)
	}
	return nil
}

type publishedMessage struct {
	queue string
	body  string
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages []publishedMessage
	err      error
}

func (p *recordingPublisher) Publish(ctx context.Context, queue string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, publishedMessage{queue: queue, body: string(body)})
	return p.err
}

func (p *recordingPublisher) count(queue string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, m := range p.messages {
		if m.queue == queue {
			n++
		}
	}
	return n
}
