package redisrepo

import (
	"context"
	"time"

	"github.com/Rasika1975/socialapp/internal/model"
	"github.com/Rasika1975/socialapp/internal/repository"
	"go.uber.org/zap"
)

// cachedUserRepo is a read-through cache in front of the credential store,
// keyed by email. Cache failures fall back to the store.
type cachedUserRepo struct {
	logger *zap.Logger
	next   repository.User
	cache  Default
	ttl    time.Duration
}

func NewCachedUserRepo(logger *zap.Logger, next repository.User, cache Default, ttl time.Duration) repository.User {
	return &cachedUserRepo{
		logger: logger,
		next:   next,
		cache:  cache,
		ttl:    ttl,
	}
}

func (r *cachedUserRepo) Create(ctx context.Context, user model.User) (*model.User, error) {
	created, err := r.next.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	r.store(ctx, created)
	return created, nil
}

func (r *cachedUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	key := UserEmailKey(email)
	cached, found, err := Get[model.User](ctx, r.cache, key)
	if err != nil {
		r.logger.Sugar().Errorf("failed to get user(%s) from redis: %s", email, err.Error())
	}
	if found {
		return cached, nil
	}

	user, err := r.next.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	r.store(ctx, user)
	return user, nil
}

func (r *cachedUserRepo) store(ctx context.Context, user *model.User) {
	if err := r.cache.SetJSON(ctx, UserEmailKey(user.Email), user, r.ttl); err != nil {
		r.logger.Sugar().Errorf("failed to set user(%s) in redis: %s", user.ID, err.Error())
	}
}
