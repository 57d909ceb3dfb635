package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"library-catalog/internal/domains/user"
	"library-catalog/pkg/cache"
)

const userCacheKeyPrefix = "user:"

// cachedUser is what goes into the cache; the password hash stays out
type cachedUser struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	FavoriteGenre string    `json:"favorite_genre"`
	CreatedAt     time.Time `json:"created_at"`
}

// cachedRepository decorates a user.Repository with cache-aside reads by id.
// Users are immutable, so entries are never invalidated, only expired.
// Users served from the cache carry no PasswordHash; FindByUsername always
// reads through, so login is unaffected.
type cachedRepository struct {
	next  user.Repository
	cache cache.Cache
	ttl   time.Duration
	group singleflight.Group
}

func NewCachedRepository(next user.Repository, c cache.Cache, ttl time.Duration) user.Repository {
	return &cachedRepository{
		next:  next,
		cache: c,
		ttl:   ttl,
	}
}

func (r *cachedRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	return r.next.Create(ctx, u)
}

func (r *cachedRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.next.FindByUsername(ctx, username)
}

func (r *cachedRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	key := userCacheKeyPrefix + id.String()

	var hit cachedUser
	found, err := r.cache.Get(ctx, key, &hit)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("user cache read failed")
	}
	if found {
		return &user.User{
			ID:            hit.ID,
			Username:      hit.Username,
			FavoriteGenre: hit.FavoriteGenre,
			CreatedAt:     hit.CreatedAt,
		}, nil
	}

	// Concurrent misses for the same id share one store read
	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		u, err := r.next.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		entry := cachedUser{
			ID:            u.ID,
			Username:      u.Username,
			FavoriteGenre: u.FavoriteGenre,
			CreatedAt:     u.CreatedAt,
		}
		if err := r.cache.Set(ctx, key, entry, r.ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("user cache write failed")
		}
		return u, nil
	})
	if err != nil {
		return nil, err
	}

	u, ok := v.(*user.User)
	if !ok {
		return nil, fmt.Errorf("unexpected cached value type %T", v)
	}
	copied := *u
	return &copied, nil
}
