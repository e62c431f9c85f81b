// Package repository 提供了数据访问层的实现。
package repository

import (
	"ta-chat-go/internal/model"
	"time"

	"github.com/patrickmn/go-cache"
)

// SessionRepository 定义了活动会话的存取接口。
// 会话只保存在内存中，空闲超时或显式结束后即被丢弃。
type SessionRepository interface {
	Save(id string, session *model.Session)
	Get(id string) (*model.Session, bool)
	Delete(id string)
	Count() int
}

type memorySessionRepository struct {
	cache *cache.Cache
}

// NewSessionRepository 创建一个基于 go-cache 的会话仓库。
// idle 为会话空闲多久后过期，cleanup 为清理过期会话的周期。
func NewSessionRepository(idle, cleanup time.Duration) SessionRepository {
	return &memorySessionRepository{cache: cache.New(idle, cleanup)}
}

// Save 保存会话并重置其过期时间。
func (r *memorySessionRepository) Save(id string, session *model.Session) {
	r.cache.Set(id, session, cache.DefaultExpiration)
}

// Get 取出会话，命中时顺带刷新过期时间。
func (r *memorySessionRepository) Get(id string) (*model.Session, bool) {
	x, found := r.cache.Get(id)
	if !found {
		return nil, false
	}
	session := x.(*model.Session)
	r.cache.Set(id, session, cache.DefaultExpiration)
	return session, true
}

// Delete 删除会话。
func (r *memorySessionRepository) Delete(id string) {
	r.cache.Delete(id)
}

// Count 返回当前活动会话数（可能包含尚未清理的过期项）。
func (r *memorySessionRepository) Count() int {
	return r.cache.ItemCount()
}
