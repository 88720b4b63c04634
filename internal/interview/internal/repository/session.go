package repository

import (
	"context"

	"github.com/ecodeclub/mockly/internal/interview/internal/domain"
	"github.com/ecodeclub/mockly/internal/interview/internal/repository/cache"
)

var ErrSessionNotFound = cache.ErrSessionNotFound

//go:generate mockgen -source=./session.go -package=repomocks -destination=mocks/session.mock.go SessionRepository
type SessionRepository interface {
	Save(ctx context.Context, sess domain.Session) error
	Get(ctx context.Context, sid string) (domain.Session, error)
	Delete(ctx context.Context, sid string) error
	Lock(ctx context.Context, sid string) (bool, error)
	Unlock(ctx context.Context, sid string) error
}

// 进行中的会话只存 Redis，结束就删，没有落库的必要
type sessionRepository struct {
	cache cache.SessionCache
}

func NewSessionRepository(c cache.SessionCache) SessionRepository {
	return &sessionRepository{cache: c}
}

func (r *sessionRepository) Save(ctx context.Context, sess domain.Session) error {
	return r.cache.Save(ctx, sess)
}

func (r *sessionRepository) Get(ctx context.Context, sid string) (domain.Session, error) {
	return r.cache.Get(ctx, sid)
}

func (r *sessionRepository) Delete(ctx context.Context, sid string) error {
	return r.cache.Delete(ctx, sid)
}

func (r *sessionRepository) Lock(ctx context.Context, sid string) (bool, error) {
	return r.cache.Lock(ctx, sid)
}

func (r *sessionRepository) Unlock(ctx context.Context, sid string) error {
	return r.cache.Unlock(ctx, sid)
}
