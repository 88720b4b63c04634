package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/mockly/internal/interview/internal/domain"
	"github.com/pkg/errors"
)

var ErrSessionNotFound = errors.New("会话不存在")

//go:generate mockgen -source=./session.go -package=cachemocks -destination=mocks/session.mock.go SessionCache
type SessionCache interface {
	Save(ctx context.Context, sess domain.Session) error
	Get(ctx context.Context, sid string) (domain.Session, error)
	Delete(ctx context.Context, sid string) error
	// Lock 抢占一个会话的处理权，防止同一会话并发提交两个回答。
	// 返回 false 表示已经有一个回答在处理中
	Lock(ctx context.Context, sid string) (bool, error)
	Unlock(ctx context.Context, sid string) error
}

type SessionECache struct {
	cache ecache.Cache
	// 会话本身的过期时间
	expiration time.Duration
	// 处理锁的过期时间，防止崩溃之后永久锁死
	lockExpiration time.Duration
}

// NewSessionECache 注意缓存前缀
func NewSessionECache(c ecache.Cache) SessionCache {
	return &SessionECache{
		cache: &ecache.NamespaceCache{
			Namespace: "interview:",
			C:         c,
		},
		expiration:     time.Hour * 2,
		lockExpiration: time.Second * 30,
	}
}

func (c *SessionECache) Save(ctx context.Context, sess domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "序列化会话失败")
	}
	return errors.Wrap(c.cache.Set(ctx, c.key(sess.Sid), data, c.expiration), "保存会话失败")
}

func (c *SessionECache) Get(ctx context.Context, sid string) (domain.Session, error) {
	var sess domain.Session
	val := c.cache.Get(ctx, c.key(sid))
	if val.KeyNotFound() {
		return domain.Session{}, ErrSessionNotFound
	}
	err := val.JSONScan(&sess)
	return sess, errors.Wrap(err, "解析会话失败")
}

func (c *SessionECache) Delete(ctx context.Context, sid string) error {
	_, err := c.cache.Delete(ctx, c.key(sid))
	return err
}

func (c *SessionECache) Lock(ctx context.Context, sid string) (bool, error) {
	return c.cache.SetNX(ctx, c.lockKey(sid), 1, c.lockExpiration)
}

func (c *SessionECache) Unlock(ctx context.Context, sid string) error {
	_, err := c.cache.Delete(ctx, c.lockKey(sid))
	return err
}

func (c *SessionECache) key(sid string) string {
	return fmt.Sprintf("session:%s", sid)
}

func (c *SessionECache) lockKey(sid string) string {
	return fmt.Sprintf("session:lock:%s", sid)
}
